package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
)

type categoriesRepo struct {
	q querier
}

func (r *categoriesRepo) GetByID(ctx context.Context, id string) (domain.Category, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM categories WHERE id = ?`, id)

	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		return domain.Category{}, mapErr(err)
	}
	return c, nil
}

func (r *categoriesRepo) Create(ctx context.Context, c domain.Category) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO categories (id, name, created_at) VALUES (?, ?, ?)`,
		c.ID, c.Name, time.Now().UTC())
	return mapErr(err)
}

func (r *categoriesRepo) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, mapErr(err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

type productsRepo struct {
	q querier
}

const productColumns = `id, category_id, name, description, price_cents, discount_price_cents, created_at, updated_at`

func (r *productsRepo) GetByID(ctx context.Context, id string) (domain.Product, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	return scanProduct(row)
}

func (r *productsRepo) Create(ctx context.Context, p domain.Product) error {
	now := time.Now().UTC()
	var discount sql.NullInt64
	if p.DiscountPriceCents != nil {
		discount = sql.NullInt64{Int64: *p.DiscountPriceCents, Valid: true}
	}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO products (id, category_id, name, description, price_cents, discount_price_cents, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CategoryID, p.Name, p.Description, p.PriceCents, discount, now, now)
	return mapErr(err)
}

func (r *productsRepo) List(ctx context.Context, categoryID string, limit, offset int) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	if categoryID != "" {
		query += ` WHERE category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productsRepo) Count(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	var err error
	if categoryID == "" {
		err = r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	} else {
		err = r.q.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM products WHERE category_id = ?`, categoryID).Scan(&n)
	}
	return n, mapErr(err)
}

func scanProduct(s scanner) (domain.Product, error) {
	var p domain.Product
	var discount sql.NullInt64
	err := s.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description,
		&p.PriceCents, &discount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, mapErr(err)
	}
	if discount.Valid {
		p.DiscountPriceCents = &discount.Int64
	}
	return p, nil
}
