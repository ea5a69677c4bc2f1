package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripmate/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) NotifyTrip(ctx context.Context, tripID, actorID int64, notif domain.Notification) error {
	args := m.Called(ctx, tripID, actorID, notif)
	return args.Error(0)
}

func (m *NotificationService) MemberJoined(ctx context.Context, trip *domain.Trip, member *domain.TripMember) error {
	args := m.Called(ctx, trip, member)
	return args.Error(0)
}

func (m *NotificationService) InviteChanged(ctx context.Context, trip *domain.Trip, actorID int64, regenerated bool) error {
	args := m.Called(ctx, trip, actorID, regenerated)
	return args.Error(0)
}
