package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"tripmate/internal/domain"
)

type TripRepository struct {
	mock.Mock
}

func (m *TripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *TripRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Trip, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *TripRepository) UpdateInviteExpiration(ctx context.Context, id int64, expiresAt *time.Time) error {
	args := m.Called(ctx, id, expiresAt)
	return args.Error(0)
}

func (m *TripRepository) UpdateInviteCode(ctx context.Context, id int64, code string, expiresAt *time.Time) error {
	args := m.Called(ctx, id, code, expiresAt)
	return args.Error(0)
}
