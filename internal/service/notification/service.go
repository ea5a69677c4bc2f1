package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tripmate/internal/domain"
	"tripmate/internal/repository"
)

var ErrInvalidNotificationType = errors.New("invalid notification type")

// Deliverer pushes an envelope to every socket a user has open.
type Deliverer interface {
	Deliver(ctx context.Context, userID int64, env domain.Envelope) error
}

type Service interface {
	// NotifyTrip sends notif to every member of tripID, the actor included.
	NotifyTrip(ctx context.Context, tripID, actorID int64, notif domain.Notification) error
	MemberJoined(ctx context.Context, trip *domain.Trip, member *domain.TripMember) error
	InviteChanged(ctx context.Context, trip *domain.Trip, actorID int64, regenerated bool) error
}

type service struct {
	memberRepo repository.MemberRepository
	deliverer  Deliverer
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(memberRepo repository.MemberRepository, deliverer Deliverer, logger *zap.Logger) Service {
	return &service{
		memberRepo: memberRepo,
		deliverer:  deliverer,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *service) NotifyTrip(ctx context.Context, tripID, actorID int64, notif domain.Notification) error {
	if !notif.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidNotificationType, notif.Type)
	}

	notif.ID = ""
	notif.Read = false
	notif.TripID = tripID
	notif.UserID = actorID
	notif.Timestamp = s.now().UTC().Format(time.RFC3339)

	env, err := domain.NewEnvelope(domain.EventNotification, notif)
	if err != nil {
		return err
	}

	members, err := s.memberRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return fmt.Errorf("list trip members: %w", err)
	}

	var errs []error
	for _, m := range members {
		if err := s.deliverer.Deliver(ctx, m.UserID, env); err != nil {
			s.logger.Warn("notification delivery failed",
				zap.Int64("trip_id", tripID),
				zap.Int64("user_id", m.UserID),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *service) MemberJoined(ctx context.Context, trip *domain.Trip, member *domain.TripMember) error {
	return s.NotifyTrip(ctx, trip.ID, member.UserID, domain.Notification{
		Type:     domain.NotifMemberJoined,
		Title:    "New trip member",
		Message:  fmt.Sprintf("%s joined %s", member.UserName, trip.Name),
		UserName: member.UserName,
	})
}

func (s *service) InviteChanged(ctx context.Context, trip *domain.Trip, actorID int64, regenerated bool) error {
	msg := fmt.Sprintf("Invite expiration for %s was updated", trip.Name)
	if regenerated {
		msg = fmt.Sprintf("A new invite code was generated for %s", trip.Name)
	}

	return s.NotifyTrip(ctx, trip.ID, actorID, domain.Notification{
		Type:    domain.NotifTripUpdate,
		Title:   "Trip invite updated",
		Message: msg,
	})
}
