package notify

import "sync"

// SwipeDeleteThreshold is the horizontal drag distance beyond which a
// released swipe deletes the notification.
const SwipeDeleteThreshold = 100.0

type Deleter interface {
	Delete(id string)
}

// Gesture tracks a single swipe on one notification row.
type Gesture struct {
	id      string
	store   Deleter
	originX float64
	offset  float64
	once    sync.Once
}

func NewGesture(store Deleter, id string, originX float64) *Gesture {
	return &Gesture{id: id, store: store, originX: originX}
}

func (g *Gesture) Move(x float64) {
	g.offset = x - g.originX
}

func (g *Gesture) Offset() float64 {
	return g.offset
}

// End releases the gesture. It reports whether the notification was deleted.
// Only the first call has any effect.
func (g *Gesture) End() bool {
	deleted := false
	g.once.Do(func() {
		if g.offset > SwipeDeleteThreshold {
			g.store.Delete(g.id)
			deleted = true
		}
	})
	return deleted
}
