package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"tripmate/internal/domain"
)

type TripService struct {
	mock.Mock
}

func (m *TripService) Get(ctx context.Context, tripID, userID int64) (*domain.Trip, error) {
	args := m.Called(ctx, tripID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *TripService) UpdateInviteExpiration(ctx context.Context, tripID, userID int64, minutes *int) (*time.Time, error) {
	args := m.Called(ctx, tripID, userID, minutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *TripService) RegenerateInvite(ctx context.Context, tripID, userID int64, minutes *int) (*domain.RegenerateInviteResponse, error) {
	args := m.Called(ctx, tripID, userID, minutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegenerateInviteResponse), args.Error(1)
}

func (m *TripService) JoinByCode(ctx context.Context, userID int64, input domain.JoinTripInput) (*domain.Trip, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *TripService) SendInviteEmail(ctx context.Context, tripID, userID int64, toEmail string) error {
	args := m.Called(ctx, tripID, userID, toEmail)
	return args.Error(0)
}

func (m *TripService) Activity(ctx context.Context, tripID, userID int64, input domain.ActivityInput) error {
	args := m.Called(ctx, tripID, userID, input)
	return args.Error(0)
}
