// Package notify holds the session-scoped notification list and the
// presentation helpers built on top of it.
package notify

import (
	"sync"

	"tripmate/internal/domain"
)

// Store is the single source of truth for one session's notifications.
// Entries keep insertion order; there is no dedup and no length cap.
type Store struct {
	mu       sync.RWMutex
	items    []domain.Notification
	watchers map[int]func()
	nextW    int
}

func NewStore() *Store {
	return &Store{watchers: make(map[int]func())}
}

// Add appends n. Used by realtime ingestion only.
func (s *Store) Add(n domain.Notification) {
	s.mu.Lock()
	s.items = append(s.items, n)
	s.mu.Unlock()

	s.notify()
}

func (s *Store) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Notification, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Recent returns up to n of the latest notifications, newest first.
func (s *Store) Recent(n int) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	if n > len(s.items) {
		n = len(s.items)
	}

	out := make([]domain.Notification, 0, n)
	for i := len(s.items) - 1; i >= len(s.items)-n; i-- {
		out = append(out, s.items[i])
	}
	return out
}

func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *Store) MarkAsRead(id string) {
	changed := false

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			if !s.items[i].Read {
				s.items[i].Read = true
				changed = true
			}
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

func (s *Store) MarkAllAsRead() {
	changed := false

	s.mu.Lock()
	for i := range s.items {
		if !s.items[i].Read {
			s.items[i].Read = true
			changed = true
		}
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Delete removes the entry with the given id. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	removed := false

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.notify()
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.notify()
}

// Watch registers fn to be called after every change. The returned function
// removes the registration.
func (s *Store) Watch(fn func()) func() {
	s.mu.Lock()
	id := s.nextW
	s.nextW++
	s.watchers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
