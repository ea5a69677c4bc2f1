package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tripmate/internal/domain"
	"tripmate/internal/repository"
	"tripmate/internal/service/email"
	"tripmate/internal/service/notification"
)

var (
	ErrTripNotFound      = errors.New("trip not found")
	ErrNotMember         = errors.New("not a member of this trip")
	ErrNotAdmin          = errors.New("only trip admins can manage invites")
	ErrInviteExpired     = errors.New("invite code has expired")
	ErrInvalidExpiration = fmt.Errorf("expiration must be empty or between 1 and %d minutes", domain.MaxExpirationMinutes)
)

// codeAttempts bounds regeneration retries when a fresh code collides.
const codeAttempts = 5

type Service interface {
	Get(ctx context.Context, tripID, userID int64) (*domain.Trip, error)
	UpdateInviteExpiration(ctx context.Context, tripID, userID int64, minutes *int) (*time.Time, error)
	RegenerateInvite(ctx context.Context, tripID, userID int64, minutes *int) (*domain.RegenerateInviteResponse, error)
	JoinByCode(ctx context.Context, userID int64, input domain.JoinTripInput) (*domain.Trip, error)
	SendInviteEmail(ctx context.Context, tripID, userID int64, toEmail string) error
	Activity(ctx context.Context, tripID, userID int64, input domain.ActivityInput) error
}

type service struct {
	tripRepo   repository.TripRepository
	memberRepo repository.MemberRepository
	redis      *redis.Client
	cacheTTL   time.Duration
	notifSvc   notification.Service
	emailSvc   email.Service
	logger     *zap.Logger
	now        func() time.Time
	newCode    func() (string, error)
}

func NewService(
	tripRepo repository.TripRepository,
	memberRepo repository.MemberRepository,
	redis *redis.Client,
	cacheTTL time.Duration,
	notifSvc notification.Service,
	emailSvc email.Service,
	logger *zap.Logger,
) Service {
	return &service{
		tripRepo:   tripRepo,
		memberRepo: memberRepo,
		redis:      redis,
		cacheTTL:   cacheTTL,
		notifSvc:   notifSvc,
		emailSvc:   emailSvc,
		logger:     logger,
		now:        time.Now,
		newCode:    GenerateInviteCode,
	}
}

func cacheKey(tripID int64) string {
	return fmt.Sprintf("trip:%d", tripID)
}

func (s *service) loadTrip(ctx context.Context, tripID int64) (*domain.Trip, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey(tripID)).Result(); err == nil {
			var trip domain.Trip
			if json.Unmarshal([]byte(cached), &trip) == nil {
				return &trip, nil
			}
		}
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	if s.redis != nil {
		if data, err := json.Marshal(trip); err == nil {
			_ = s.redis.Set(ctx, cacheKey(tripID), data, s.cacheTTL).Err()
		}
	}

	return trip, nil
}

func (s *service) invalidate(ctx context.Context, tripID int64) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, cacheKey(tripID)).Err(); err != nil {
		s.logger.Warn("trip cache invalidation failed", zap.Int64("trip_id", tripID), zap.Error(err))
	}
}

func (s *service) member(ctx context.Context, tripID, userID int64) (*domain.TripMember, error) {
	member, err := s.memberRepo.Get(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}
	return member, nil
}

func (s *service) admin(ctx context.Context, tripID, userID int64) error {
	member, err := s.member(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if !member.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

// expiresAt turns a minutes value into an absolute expiry. nil never expires.
func (s *service) expiresAt(minutes *int) (*time.Time, error) {
	if minutes == nil {
		return nil, nil
	}
	if *minutes < 1 || *minutes > domain.MaxExpirationMinutes {
		return nil, ErrInvalidExpiration
	}

	t := s.now().UTC().Add(time.Duration(*minutes) * time.Minute).Truncate(time.Second)
	return &t, nil
}

func (s *service) notifyInviteChanged(ctx context.Context, trip *domain.Trip, userID int64, regenerated bool) {
	if s.notifSvc == nil {
		return
	}
	if err := s.notifSvc.InviteChanged(ctx, trip, userID, regenerated); err != nil {
		s.logger.Warn("invite change notification failed", zap.Int64("trip_id", trip.ID), zap.Error(err))
	}
}

func (s *service) Get(ctx context.Context, tripID, userID int64) (*domain.Trip, error) {
	if _, err := s.member(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.loadTrip(ctx, tripID)
}

func (s *service) UpdateInviteExpiration(ctx context.Context, tripID, userID int64, minutes *int) (*time.Time, error) {
	expiresAt, err := s.expiresAt(minutes)
	if err != nil {
		return nil, err
	}

	if err := s.admin(ctx, tripID, userID); err != nil {
		return nil, err
	}

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err := s.tripRepo.UpdateInviteExpiration(ctx, tripID, expiresAt); err != nil {
		return nil, fmt.Errorf("update invite expiration: %w", err)
	}
	s.invalidate(ctx, tripID)

	trip.InviteCodeExpiresAt = expiresAt
	s.notifyInviteChanged(ctx, trip, userID, false)

	return expiresAt, nil
}

func (s *service) RegenerateInvite(ctx context.Context, tripID, userID int64, minutes *int) (*domain.RegenerateInviteResponse, error) {
	expiresAt, err := s.expiresAt(minutes)
	if err != nil {
		return nil, err
	}

	if err := s.admin(ctx, tripID, userID); err != nil {
		return nil, err
	}

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	var code string
	for attempt := 0; ; attempt++ {
		code, err = s.newCode()
		if err != nil {
			return nil, err
		}

		err = s.tripRepo.UpdateInviteCode(ctx, tripID, code, expiresAt)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrInviteCodeTaken) || attempt+1 >= codeAttempts {
			return nil, fmt.Errorf("update invite code: %w", err)
		}
	}
	s.invalidate(ctx, tripID)

	trip.InviteCode = code
	trip.InviteCodeExpiresAt = expiresAt
	s.notifyInviteChanged(ctx, trip, userID, true)

	return &domain.RegenerateInviteResponse{NewInviteCode: code, ExpiresAt: expiresAt}, nil
}

func (s *service) JoinByCode(ctx context.Context, userID int64, input domain.JoinTripInput) (*domain.Trip, error) {
	code := strings.ToUpper(strings.TrimSpace(input.InviteCode))
	if code == "" {
		return nil, ErrTripNotFound
	}

	trip, err := s.tripRepo.GetByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	if trip.InviteExpired(s.now()) {
		return nil, ErrInviteExpired
	}

	existing, err := s.memberRepo.Get(ctx, trip.ID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return trip, nil
	}

	member := &domain.TripMember{
		TripID:   trip.ID,
		UserID:   userID,
		UserName: strings.TrimSpace(input.UserName),
		Role:     domain.RoleMember,
	}
	if err := s.memberRepo.Add(ctx, member); err != nil {
		return nil, fmt.Errorf("add trip member: %w", err)
	}

	if s.notifSvc != nil {
		if err := s.notifSvc.MemberJoined(ctx, trip, member); err != nil {
			s.logger.Warn("member joined notification failed", zap.Int64("trip_id", trip.ID), zap.Error(err))
		}
	}

	return trip, nil
}

func (s *service) SendInviteEmail(ctx context.Context, tripID, userID int64, toEmail string) error {
	member, err := s.member(ctx, tripID, userID)
	if err != nil {
		return err
	}

	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.InviteExpired(s.now()) {
		return ErrInviteExpired
	}

	return s.emailSvc.SendInviteEmail(ctx, toEmail, email.Invite{
		TripName:    trip.Name,
		InviterName: member.UserName,
		Code:        trip.InviteCode,
		ExpiresAt:   trip.InviteCodeExpiresAt,
	})
}

// Activity fans out a notification reported by another trip component.
func (s *service) Activity(ctx context.Context, tripID, userID int64, input domain.ActivityInput) error {
	member, err := s.member(ctx, tripID, userID)
	if err != nil {
		return err
	}

	if s.notifSvc == nil {
		return nil
	}

	userName := input.UserName
	if userName == "" {
		userName = member.UserName
	}

	return s.notifSvc.NotifyTrip(ctx, tripID, userID, domain.Notification{
		Type:     input.Type,
		Title:    input.Title,
		Message:  input.Message,
		ItemName: input.ItemName,
		UserName: userName,
	})
}
