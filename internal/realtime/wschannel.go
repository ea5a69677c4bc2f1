package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tripmate/internal/domain"
)

var ErrChannelClosed = errors.New("channel closed")

const writeWait = 10 * time.Second

// WSChannel is a Channel over a client WebSocket connection.
type WSChannel struct {
	conn   *websocket.Conn
	logger *zap.Logger

	writeMu sync.Mutex

	mu       sync.RWMutex
	handlers map[string]map[int]Handler
	nextID   int

	done      chan struct{}
	closeOnce sync.Once
}

func Dial(ctx context.Context, url string, header http.Header, logger *zap.Logger) (*WSChannel, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}

	return NewWSChannel(conn, logger), nil
}

// NewWSChannel wraps an established connection and starts reading from it.
func NewWSChannel(conn *websocket.Conn, logger *zap.Logger) *WSChannel {
	c := &WSChannel{
		conn:     conn,
		logger:   logger,
		handlers: make(map[string]map[int]Handler),
		done:     make(chan struct{}),
	}
	go c.reader()

	return c
}

func (c *WSChannel) Send(ctx context.Context, env domain.Envelope) error {
	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = c.conn.SetWriteDeadline(deadline)

	return c.conn.WriteJSON(env)
}

func (c *WSChannel) On(event string, h Handler) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	if c.handlers[event] == nil {
		c.handlers[event] = make(map[int]Handler)
	}
	c.handlers[event][id] = h
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.handlers[event], id)
			c.mu.Unlock()
		})
	}
}

// Done is closed once the reader stops, either by Close or by a read error.
func (c *WSChannel) Done() <-chan struct{} {
	return c.done
}

func (c *WSChannel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		c.writeMu.Unlock()
		err = c.conn.Close()
	})
	return err
}

func (c *WSChannel) reader() {
	defer close(c.done)
	defer c.Close()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("channel closed by peer")
			} else {
				c.logger.Debug("channel read stopped", zap.Error(err))
			}
			return
		}

		var env domain.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.logger.Warn("dropping undecodable message", zap.Error(err))
			continue
		}

		c.dispatch(env)
	}
}

func (c *WSChannel) dispatch(env domain.Envelope) {
	c.mu.RLock()
	hs := make([]Handler, 0, len(c.handlers[env.Type]))
	for _, h := range c.handlers[env.Type] {
		hs = append(hs, h)
	}
	c.mu.RUnlock()

	if len(hs) == 0 {
		c.logger.Debug("no handler for event", zap.String("type", env.Type))
		return
	}

	for _, h := range hs {
		h(env)
	}
}
