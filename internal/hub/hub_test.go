package hub

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripmate/internal/domain"
)

func startServer(t *testing.T, h *Hub) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/ws", h.Handler())

	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "ws://" + ln.Addr().String() + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func authenticate(t *testing.T, conn *websocket.Conn, userID int64) {
	t.Helper()

	env, err := domain.NewEnvelope(domain.EventAuth, domain.AuthPayload{UserID: userID})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(env))
}

func notificationEnvelope(t *testing.T, title string) domain.Envelope {
	t.Helper()

	env, err := domain.NewEnvelope(domain.EventNotification, domain.Notification{
		Type:  domain.NotifChatMessage,
		Title: title,
	})
	require.NoError(t, err)
	return env
}

func TestHub_DeliversToAuthenticatedSocket(t *testing.T) {
	h := New(zap.NewNop(), nil)
	conn := dial(t, startServer(t, h))

	authenticate(t, conn, 5)
	require.Eventually(t, func() bool { return h.Connections(5) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, h.Deliver(context.Background(), 5, notificationEnvelope(t, "hello")))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got domain.Envelope
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, domain.EventNotification, got.Type)

	var n domain.Notification
	require.NoError(t, json.Unmarshal(got.Payload, &n))
	assert.Equal(t, "hello", n.Title)
}

func TestHub_IgnoresTrafficBeforeAuth(t *testing.T) {
	h := New(zap.NewNop(), nil)
	conn := dial(t, startServer(t, h))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteJSON(notificationEnvelope(t, "from client")))
	require.NoError(t, conn.WriteJSON(domain.Envelope{Type: domain.EventAuth}))

	authenticate(t, conn, 8)
	require.Eventually(t, func() bool { return h.Connections(8) == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_SecondAuthReRegisters(t *testing.T) {
	h := New(zap.NewNop(), nil)
	conn := dial(t, startServer(t, h))

	authenticate(t, conn, 1)
	require.Eventually(t, func() bool { return h.Connections(1) == 1 }, 2*time.Second, 10*time.Millisecond)

	authenticate(t, conn, 2)
	require.Eventually(t, func() bool { return h.Connections(2) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, h.Connections(1))
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	h := New(zap.NewNop(), nil)
	conn := dial(t, startServer(t, h))

	authenticate(t, conn, 3)
	require.Eventually(t, func() bool { return h.Connections(3) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return h.Connections(3) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_DeliverWithoutSocket(t *testing.T) {
	h := New(zap.NewNop(), nil)
	assert.NoError(t, h.Deliver(context.Background(), 99, domain.Envelope{Type: domain.EventNotification}))
}

// fakeWS feeds scripted frames to a Conn and records what it writes.
type fakeWS struct {
	mu      sync.Mutex
	frames  chan []byte
	written []domain.Envelope
	closed  bool
}

func newFakeWS() *fakeWS {
	return &fakeWS{frames: make(chan []byte, 8)}
}

func (f *fakeWS) ReadMessage() (int, []byte, error) {
	data, ok := <-f.frames
	if !ok {
		return 0, nil, errors.New("closed")
	}
	return websocket.TextMessage, data, nil
}

func (f *fakeWS) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, v.(domain.Envelope))
	return nil
}

func (f *fakeWS) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeWS) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.written)
}

// blockingWS stalls the first write until the socket is closed and counts
// writes attempted after Listen has returned.
type blockingWS struct {
	*fakeWS
	started  chan struct{}
	release  chan struct{}
	once     sync.Once
	returned atomic.Bool
	late     atomic.Int32
	calls    atomic.Int32
}

func newBlockingWS() *blockingWS {
	return &blockingWS{
		fakeWS:  newFakeWS(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (b *blockingWS) WriteJSON(v any) error {
	if b.returned.Load() {
		b.late.Add(1)
	}
	if b.calls.Add(1) == 1 {
		close(b.started)
		<-b.release
	}
	return b.fakeWS.WriteJSON(v)
}

func (b *blockingWS) Close() error {
	b.once.Do(func() { close(b.release) })
	return b.fakeWS.Close()
}

func TestConn_ListenWaitsForWriter(t *testing.T) {
	h := New(zap.NewNop(), nil)
	ws := newBlockingWS()
	c := newConn(h, ws, zap.NewNop())

	done := make(chan struct{})
	go func() {
		c.Listen()
		ws.returned.Store(true)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		require.True(t, c.Send(notificationEnvelope(t, "queued")))
	}
	select {
	case <-ws.started:
	case <-time.After(2 * time.Second):
		t.Fatal("writer never started")
	}

	close(ws.frames)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return")
	}

	assert.Equal(t, int32(1), ws.calls.Load())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), ws.late.Load())
	assert.Equal(t, int32(1), ws.calls.Load())
}

func TestConn_SendAfterStop(t *testing.T) {
	h := New(zap.NewNop(), nil)
	ws := newFakeWS()
	c := newConn(h, ws, zap.NewNop())

	c.stop()

	assert.False(t, c.IsActive())
	assert.False(t, c.Send(domain.Envelope{Type: domain.EventNotification}))
	assert.True(t, ws.closed)
}

func TestConn_FansOutToEverySocketOfUser(t *testing.T) {
	h := New(zap.NewNop(), nil)

	first, second := newFakeWS(), newFakeWS()
	done := make(chan struct{}, 2)
	for _, ws := range []*fakeWS{first, second} {
		go func(ws *fakeWS) {
			h.Serve(ws, "fake")
			done <- struct{}{}
		}(ws)
		ws.frames <- []byte(`{"type":"auth","payload":{"userId":4}}`)
	}
	require.Eventually(t, func() bool { return h.Connections(4) == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, h.Deliver(context.Background(), 4, domain.Envelope{Type: domain.EventNotification}))
	require.Eventually(t, func() bool { return first.writes() == 1 && second.writes() == 1 }, 2*time.Second, 10*time.Millisecond)

	close(first.frames)
	close(second.frames)
	<-done
	<-done
	assert.Equal(t, 0, h.Connections(4))
}
