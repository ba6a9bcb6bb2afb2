package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/abuRizq/vegetable-shop/internal/auth/store"

	_ "modernc.org/sqlite"
)

// Store is the sqlite-backed implementation of store.Store.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// NewStore opens the sqlite database at the given DSN. Callers should pass
// _busy_timeout and WAL options in the DSN, e.g.
// "file:auth.db?_busy_timeout=5000&_journal_mode=WAL".
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// sqlite tolerates a single writer; more connections just contend.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Users() store.Users                 { return &usersRepo{q: s.db} }
func (s *Store) RefreshTokens() store.RefreshTokens { return &refreshTokensRepo{q: s.db} }
func (s *Store) ResetTokens() store.ResetTokens     { return &resetTokensRepo{q: s.db} }
func (s *Store) Categories() store.Categories       { return &categoriesRepo{q: s.db} }
func (s *Store) Products() store.Products           { return &productsRepo{q: s.db} }

// WithTx runs fn inside a transaction, committing on nil and rolling back on
// error or panic.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&tx{q: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("sqlite: rollback: %w", rbErr))
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// tx is a transaction-scoped view over the same repositories.
type tx struct {
	q *sql.Tx
}

func (t *tx) Users() store.Users                 { return &usersRepo{q: t.q} }
func (t *tx) RefreshTokens() store.RefreshTokens { return &refreshTokensRepo{q: t.q} }
func (t *tx) ResetTokens() store.ResetTokens     { return &resetTokensRepo{q: t.q} }
func (t *tx) Categories() store.Categories       { return &categoriesRepo{q: t.q} }
func (t *tx) Products() store.Products           { return &productsRepo{q: t.q} }

// querier is satisfied by both *sql.DB and *sql.Tx so repositories work
// inside and outside transactions.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// mapErr converts driver errors to the store's sentinel errors.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrNotFound
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return store.ErrAlreadyExists
	default:
		return err
	}
}
