// Package session scopes the notification state to one signed-in user.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"tripmate/internal/notify"
	"tripmate/internal/realtime"
)

var ErrNoUser = errors.New("session requires a user id")

// Dialer opens the realtime channel for a session.
type Dialer func(ctx context.Context) (realtime.Channel, error)

// WebSocketDialer dials url with the bearer token, if any.
func WebSocketDialer(url, token string, logger *zap.Logger) Dialer {
	return func(ctx context.Context) (realtime.Channel, error) {
		header := http.Header{}
		if token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
		return realtime.Dial(ctx, url, header, logger)
	}
}

// Session owns the notification store and the channel registration for one
// login. It is created when the user id becomes known and closed on logout.
type Session struct {
	UserID int64
	Store  *notify.Store

	channel realtime.Channel
	stop    func()
	logger  *zap.Logger

	closeOnce sync.Once
}

func Open(ctx context.Context, userID int64, dial Dialer, toaster notify.Toaster, logger *zap.Logger) (*Session, error) {
	if userID <= 0 {
		return nil, ErrNoUser
	}

	ch, err := dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open notification channel: %w", err)
	}

	logger = logger.With(zap.Int64("user_id", userID))
	store := notify.NewStore()

	stop, err := realtime.NewIngestor(store, toaster, logger).Start(ctx, ch, userID)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}

	logger.Info("session opened")

	return &Session{
		UserID:  userID,
		Store:   store,
		channel: ch,
		stop:    stop,
		logger:  logger,
	}, nil
}

// Done is closed when the underlying channel stops reading. It is nil, and
// so never ready, for channels that cannot report that.
func (s *Session) Done() <-chan struct{} {
	if d, ok := s.channel.(interface{ Done() <-chan struct{} }); ok {
		return d.Done()
	}
	return nil
}

// Close deregisters the handler, releases the channel and drops the
// session's notifications. Safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.stop()
		err = s.channel.Close()
		s.Store.Clear()
		s.logger.Info("session closed")
	})
	return err
}
