// Package hub keeps the WebSocket registrations of signed-in users and
// delivers notification envelopes to them.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tripmate/internal/domain"
)

const DefaultChannel = "tripmate:notifications"

type message struct {
	Origin   string          `json:"origin"`
	UserID   int64           `json:"user_id"`
	Envelope domain.Envelope `json:"envelope"`
}

type Hub struct {
	id      string
	logger  *zap.Logger
	redis   *redis.Client
	channel string

	mu    sync.RWMutex
	conns map[int64]map[*Conn]struct{}
}

// New creates a hub. Deliveries always reach local sockets directly. With a
// redis client they are also published on the channel, and every other
// instance subscribed through Run forwards them to its own sockets.
func New(logger *zap.Logger, rdb *redis.Client) *Hub {
	return &Hub{
		id:      uuid.NewString(),
		logger:  logger,
		redis:   rdb,
		channel: DefaultChannel,
		conns:   make(map[int64]map[*Conn]struct{}),
	}
}

func (h *Hub) register(userID int64, c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*Conn]struct{})
	}
	h.conns[userID][c] = struct{}{}

	h.logger.Debug("socket registered", zap.Int64("user_id", userID))
}

func (h *Hub) unregister(userID int64, c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.conns[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}

	h.logger.Debug("socket unregistered", zap.Int64("user_id", userID))
}

// Connections returns how many sockets are registered for userID.
func (h *Hub) Connections(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// Deliver sends env to every socket of userID. Users without a socket miss
// the envelope; nothing is buffered. Local sockets are served even when the
// publish fails; the returned error then only concerns other instances.
func (h *Hub) Deliver(ctx context.Context, userID int64, env domain.Envelope) error {
	h.deliverLocal(userID, env)

	if h.redis == nil {
		return nil
	}

	data, err := json.Marshal(message{Origin: h.id, UserID: userID, Envelope: env})
	if err != nil {
		return err
	}

	if err := h.redis.Publish(ctx, h.channel, data).Err(); err != nil {
		return fmt.Errorf("publish delivery: %w", err)
	}
	return nil
}

func (h *Hub) deliverLocal(userID int64, env domain.Envelope) int {
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.conns[userID]))
	for c := range h.conns[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		if c.Send(env) {
			sent++
		}
	}
	return sent
}

// Run forwards deliveries published by other instances to local sockets
// until ctx is done. It returns immediately when the hub has no redis client.
func (h *Hub) Run(ctx context.Context) {
	if h.redis == nil {
		return
	}

	sub := h.redis.Subscribe(ctx, h.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var m message
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				h.logger.Warn("bad hub message", zap.Error(err))
				continue
			}
			if m.Origin == h.id {
				continue
			}
			h.deliverLocal(m.UserID, m.Envelope)
		}
	}
}

// Serve runs one client connection until it closes.
func (h *Hub) Serve(ws wsConn, name string) {
	c := newConn(h, ws, h.logger.With(zap.String("client", name)))
	c.Listen()
}

// Handler is the fiber endpoint for client sockets.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(ws *websocket.Conn) {
		name := uuid.NewString()

		h.logger.Debug("ws listener connected", zap.String("client", name))
		h.Serve(ws, name)
		h.logger.Debug("ws listener disconnected", zap.String("client", name))
	})
}
