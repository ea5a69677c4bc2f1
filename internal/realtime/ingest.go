package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripmate/internal/domain"
	"tripmate/internal/notify"
)

// Ingestor normalizes notification envelopes into a Store and raises a toast
// for each one. Notifications about the user's own actions are delivered too.
type Ingestor struct {
	store   *notify.Store
	toaster notify.Toaster
	logger  *zap.Logger
	newID   func() string
}

func NewIngestor(store *notify.Store, toaster notify.Toaster, logger *zap.Logger) *Ingestor {
	return &Ingestor{
		store:   store,
		toaster: toaster,
		logger:  logger,
		newID:   NewNotificationID,
	}
}

// Start announces userID on ch and subscribes to notification events.
// The returned function deregisters the handler; extra calls are no-ops.
func (i *Ingestor) Start(ctx context.Context, ch Channel, userID int64) (func(), error) {
	auth, err := domain.NewEnvelope(domain.EventAuth, domain.AuthPayload{UserID: userID})
	if err != nil {
		return nil, err
	}

	// subscribe before announcing so nothing sent in reply is missed
	off := ch.On(domain.EventNotification, i.Handle)
	if err := ch.Send(ctx, auth); err != nil {
		off()
		return nil, fmt.Errorf("failed to send auth: %w", err)
	}
	i.logger.Debug("notification channel registered", zap.Int64("user_id", userID))

	var once sync.Once
	return func() {
		once.Do(func() {
			off()
			i.logger.Debug("notification channel released", zap.Int64("user_id", userID))
		})
	}, nil
}

// Handle processes one envelope. Envelopes without a usable payload are
// logged and dropped.
func (i *Ingestor) Handle(env domain.Envelope) {
	if !env.HasPayload() {
		i.logger.Warn("dropping notification without payload", zap.String("type", env.Type))
		return
	}

	var n domain.Notification
	if err := json.Unmarshal(env.Payload, &n); err != nil {
		i.logger.Warn("dropping malformed notification", zap.Error(err))
		return
	}

	n.ID = i.newID()
	n.Read = false

	i.store.Add(n)
	if i.toaster != nil {
		i.toaster.Show(notify.ToastFor(n))
	}
}

// NewNotificationID returns "<unix millis>-<random suffix>".
func NewNotificationID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}
