// Package realtime bridges the push channel to the session's notification store.
package realtime

import (
	"context"

	"tripmate/internal/domain"
)

// Handler receives one envelope. Handlers for a channel never run concurrently.
type Handler func(env domain.Envelope)

type Channel interface {
	Send(ctx context.Context, env domain.Envelope) error
	// On subscribes h to envelopes of the given type and returns a function
	// that removes the subscription.
	On(event string, h Handler) func()
	Close() error
}
