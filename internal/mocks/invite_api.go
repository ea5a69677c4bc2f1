package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"tripmate/internal/domain"
)

type InviteAPI struct {
	mock.Mock
}

func (m *InviteAPI) UpdateInviteExpiration(ctx context.Context, tripID int64, minutes *int) (*time.Time, error) {
	args := m.Called(ctx, tripID, minutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *InviteAPI) RegenerateInvite(ctx context.Context, tripID int64, minutes *int) (*domain.RegenerateInviteResponse, error) {
	args := m.Called(ctx, tripID, minutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegenerateInviteResponse), args.Error(1)
}

func (m *InviteAPI) InvalidateTrip(tripID int64) {
	m.Called(tripID)
}
