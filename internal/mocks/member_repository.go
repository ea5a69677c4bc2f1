package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripmate/internal/domain"
)

type MemberRepository struct {
	mock.Mock
}

func (m *MemberRepository) Get(ctx context.Context, tripID, userID int64) (*domain.TripMember, error) {
	args := m.Called(ctx, tripID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripMember), args.Error(1)
}

func (m *MemberRepository) ListByTrip(ctx context.Context, tripID int64) ([]domain.TripMember, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TripMember), args.Error(1)
}

func (m *MemberRepository) Add(ctx context.Context, member *domain.TripMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
