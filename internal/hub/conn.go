package hub

import (
	"encoding/json"
	"sync/atomic"

	"go.uber.org/zap"

	"tripmate/internal/domain"
)

// wsConn is the part of a WebSocket connection the hub uses.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v any) error
	Close() error
}

// Conn is one client socket. Outbound envelopes go through a buffered channel
// drained by a writer goroutine; a full buffer drops the envelope.
type Conn struct {
	hub    *Hub
	ws     wsConn
	logger *zap.Logger
	ch     chan domain.Envelope
	active int32
	userID int64
}

func newConn(h *Hub, ws wsConn, logger *zap.Logger) *Conn {
	return &Conn{
		hub:    h,
		ws:     ws,
		logger: logger,
		ch:     make(chan domain.Envelope, 16),
		active: 1,
	}
}

func (c *Conn) IsActive() bool {
	return c != nil && atomic.LoadInt32(&c.active) == 1
}

func (c *Conn) stop() {
	if atomic.CompareAndSwapInt32(&c.active, 1, 0) {
		close(c.ch)
		_ = c.ws.Close()
	}
}

// Send queues env for delivery. It reports false when the connection is gone.
func (c *Conn) Send(env domain.Envelope) (sent bool) {
	if !c.IsActive() {
		return false
	}

	// stop may close ch between the check above and the send
	defer func() {
		if recover() != nil {
			sent = false
		}
	}()

	select {
	case c.ch <- env:
	default:
		c.logger.Warn("outbound buffer full, dropping envelope", zap.String("type", env.Type))
	}

	return true
}

// writer drains ch until the connection stops. done is closed once the
// writer no longer touches ws.
func (c *Conn) writer(done chan<- struct{}) {
	defer close(done)

	for env := range c.ch {
		if !c.IsActive() {
			return
		}
		if err := c.ws.WriteJSON(env); err != nil {
			c.logger.Debug("write failed", zap.Error(err))
			c.stop()
			return
		}
	}
}

func (c *Conn) reader() {
	defer c.stop()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.logger.Debug("read stopped", zap.Error(err))
			return
		}

		var env domain.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.logger.Warn("ignoring undecodable message", zap.Error(err))
			continue
		}

		if env.Type != domain.EventAuth {
			continue
		}

		var auth domain.AuthPayload
		if !env.HasPayload() || json.Unmarshal(env.Payload, &auth) != nil || auth.UserID <= 0 {
			c.logger.Warn("ignoring auth without user id")
			continue
		}

		if c.userID != 0 {
			c.hub.unregister(c.userID, c)
		}
		c.userID = auth.UserID
		c.hub.register(auth.UserID, c)
	}
}

// Listen serves the connection until the peer goes away. It returns only
// after the writer has exited, so ws may be released by the caller.
func (c *Conn) Listen() {
	done := make(chan struct{})
	go c.writer(done)
	c.reader()
	<-done

	if c.userID != 0 {
		c.hub.unregister(c.userID, c)
	}
}
