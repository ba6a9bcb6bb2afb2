package service

import (
	"context"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
	"github.com/abuRizq/vegetable-shop/internal/auth/store"
)

type UserService struct {
	Store store.Store
}

// GetByID fetches a user by id.
func (s *UserService) GetByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetByID(ctx, userID)
}

// List returns a page of users (newest first) plus the total count.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.Store.Users().List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Store.Users().Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
