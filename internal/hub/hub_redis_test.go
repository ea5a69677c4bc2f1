package hub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripmate/internal/domain"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), Protocol: 2, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

// serveFake registers a scripted socket for userID on h.
func serveFake(t *testing.T, h *Hub, userID int64) *fakeWS {
	t.Helper()

	ws := newFakeWS()
	done := make(chan struct{})
	go func() {
		h.Serve(ws, "fake")
		close(done)
	}()
	t.Cleanup(func() {
		close(ws.frames)
		<-done
	})

	env, err := domain.NewEnvelope(domain.EventAuth, domain.AuthPayload{UserID: userID})
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)
	ws.frames <- data

	require.Eventually(t, func() bool { return h.Connections(userID) == 1 }, 2*time.Second, 10*time.Millisecond)
	return ws
}

func runSubscribed(t *testing.T, mr *miniredis.Miniredis, h *Hub, subscribers int) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(DefaultChannel)[DefaultChannel] == subscribers
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RedisReachesSocketOnOtherInstance(t *testing.T) {
	mr, rdb := newRedis(t)
	sender := New(zap.NewNop(), rdb)
	receiver := New(zap.NewNop(), rdb)

	ws := serveFake(t, receiver, 6)
	runSubscribed(t, mr, receiver, 1)

	require.NoError(t, sender.Deliver(context.Background(), 6, notificationEnvelope(t, "across")))

	require.Eventually(t, func() bool { return ws.writes() == 1 }, 2*time.Second, 10*time.Millisecond)
	ws.mu.Lock()
	assert.Equal(t, domain.EventNotification, ws.written[0].Type)
	ws.mu.Unlock()
}

func TestHub_RedisSkipsOwnPublish(t *testing.T) {
	mr, rdb := newRedis(t)
	h := New(zap.NewNop(), rdb)
	other := New(zap.NewNop(), rdb)

	ws := serveFake(t, h, 2)
	runSubscribed(t, mr, h, 1)

	require.NoError(t, h.Deliver(context.Background(), 2, notificationEnvelope(t, "own")))
	// the other instance's message follows ours on the channel, so once it
	// arrives our echo has already been handled
	require.NoError(t, other.Deliver(context.Background(), 2, notificationEnvelope(t, "marker")))

	require.Eventually(t, func() bool { return ws.writes() == 2 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, ws.writes())
}

func TestHub_RedisDeliversLocallyBeforeSubscription(t *testing.T) {
	_, rdb := newRedis(t)
	h := New(zap.NewNop(), rdb)

	ws := serveFake(t, h, 3)

	require.NoError(t, h.Deliver(context.Background(), 3, notificationEnvelope(t, "early")))
	require.Eventually(t, func() bool { return ws.writes() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RedisDownStillDeliversLocally(t *testing.T) {
	mr, rdb := newRedis(t)
	h := New(zap.NewNop(), rdb)

	ws := serveFake(t, h, 4)
	mr.Close()

	err := h.Deliver(context.Background(), 4, notificationEnvelope(t, "offline"))
	assert.ErrorContains(t, err, "publish delivery")
	require.Eventually(t, func() bool { return ws.writes() == 1 }, 2*time.Second, 10*time.Millisecond)
}
