package invite

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tripmate/internal/domain"
	"tripmate/internal/notify"
	"tripmate/internal/pkg/i18n"
)

// API is the subset of the trip endpoints the helper calls.
type API interface {
	UpdateInviteExpiration(ctx context.Context, tripID int64, minutes *int) (*time.Time, error)
	RegenerateInvite(ctx context.Context, tripID int64, minutes *int) (*domain.RegenerateInviteResponse, error)
	InvalidateTrip(tripID int64)
}

// State is what the dialog currently displays.
type State struct {
	Code      string
	ExpiresAt *time.Time
}

// Helper backs both the manage and the share dialogs of one trip. Calls are
// not de-duplicated: when requests overlap the last one to finish wins.
type Helper struct {
	api     API
	toaster notify.Toaster
	logger  *zap.Logger
	locale  string
	tripID  int64

	mu    sync.Mutex
	state State
}

func NewHelper(api API, toaster notify.Toaster, logger *zap.Logger, locale string, trip *domain.Trip) *Helper {
	return &Helper{
		api:     api,
		toaster: toaster,
		logger:  logger,
		locale:  locale,
		tripID:  trip.ID,
		state:   State{Code: trip.InviteCode, ExpiresAt: trip.InviteCodeExpiresAt},
	}
}

func (h *Helper) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Helper) Status(now time.Time) Status {
	return Describe(h.State().ExpiresAt, now, h.locale)
}

// UpdateExpiration changes when the current code expires. The code itself is
// left untouched.
func (h *Helper) UpdateExpiration(ctx context.Context, opt Option, custom string) (State, error) {
	minutes, err := h.resolve(opt, custom)
	if err != nil {
		return h.State(), err
	}

	expiresAt, err := h.api.UpdateInviteExpiration(ctx, h.tripID, minutes)
	if err != nil {
		h.fail("INVITE_UPDATE_FAILED", err)
		return h.State(), fmt.Errorf("failed to update invite expiration: %w", err)
	}

	h.mu.Lock()
	h.state.ExpiresAt = expiresAt
	st := h.state
	h.mu.Unlock()

	h.toaster.Show(notify.Toast{
		Title:   i18n.Translate(h.locale, "INVITE_UPDATED_TITLE"),
		Message: Describe(expiresAt, time.Now(), h.locale).Text,
	})

	return st, nil
}

// Regenerate rotates the code and sets its expiration in one call, then
// invalidates the cached trip so other views refetch it.
func (h *Helper) Regenerate(ctx context.Context, opt Option, custom string) (State, error) {
	minutes, err := h.resolve(opt, custom)
	if err != nil {
		return h.State(), err
	}

	res, err := h.api.RegenerateInvite(ctx, h.tripID, minutes)
	if err != nil {
		h.fail("INVITE_REGENERATE_FAILED", err)
		return h.State(), fmt.Errorf("failed to regenerate invite: %w", err)
	}

	h.mu.Lock()
	h.state = State{Code: res.NewInviteCode, ExpiresAt: res.ExpiresAt}
	st := h.state
	h.mu.Unlock()

	h.api.InvalidateTrip(h.tripID)

	h.toaster.Show(notify.Toast{
		Title:   i18n.Translate(h.locale, "INVITE_REGENERATED_TITLE"),
		Message: res.NewInviteCode,
	})

	return st, nil
}

func (h *Helper) resolve(opt Option, custom string) (*int, error) {
	minutes, err := Resolve(opt, custom)
	if err != nil {
		h.toaster.Show(notify.Toast{
			Title:   i18n.Translate(h.locale, "INVALID_DURATION_TITLE"),
			Message: i18n.Translate(h.locale, "INVALID_DURATION_MESSAGE"),
			Variant: notify.VariantDestructive,
		})
		return nil, err
	}
	return minutes, nil
}

func (h *Helper) fail(key string, err error) {
	h.logger.Error("invite call failed", zap.Int64("trip_id", h.tripID), zap.Error(err))
	h.toaster.Show(notify.Toast{
		Title:   i18n.Translate(h.locale, "INVITE_ERROR_TITLE"),
		Message: i18n.Translate(h.locale, key),
		Variant: notify.VariantDestructive,
	})
}
