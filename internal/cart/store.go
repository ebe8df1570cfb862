package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store maps kiosk session ids to carts. A cart lives only as long as
// its session: it is never persisted, and idle sessions are swept so a
// kiosk left alone starts over with an empty cart.
type Store struct {
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	cart     *Cart
	lastSeen time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*session),
	}
}

// NewSession creates an empty cart under a fresh session id.
func (s *Store) NewSession() (string, *Cart) {
	id := uuid.New().String()
	c := New()

	s.mu.Lock()
	s.sessions[id] = &session{cart: c, lastSeen: time.Now()}
	s.mu.Unlock()

	return id, c
}

// Get returns the cart for id, creating one if the session is unknown
// or was swept. Each access refreshes the idle timer.
func (s *Store) Get(id string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = time.Now()
		return sess.cart
	}

	c := New()
	s.sessions[id] = &session{cart: c, lastSeen: time.Now()}
	return c
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle longer than the store TTL and returns how
// many were dropped.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions on the given interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}
