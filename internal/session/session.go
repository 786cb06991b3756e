// Package session keeps the per-login state of a storefront client: who is
// signed in, which screen they are on, and their cart.
package session

import (
	"errors"
	"sync"
	"time"

	"cartx/internal/cart"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Context is the state threaded through catalog and cart calls for one login.
type Context struct {
	ID       string
	UserID   string
	Username string
	Cart     *cart.Cart

	mu       sync.Mutex
	screen   Screen
	lastSeen time.Time
}

// DisplayName returns the name shown in the storefront header.
func (c *Context) DisplayName() string {
	if c.Username == "" {
		return "User"
	}
	return c.Username
}

// Screen returns the current screen.
func (c *Context) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Navigate applies e to the current screen.
func (c *Context) Navigate(e Event) (Screen, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := Next(c.screen, e)
	if err != nil {
		return c.screen, err
	}
	c.screen = next
	return next, nil
}

func (c *Context) touch(now time.Time) {
	c.mu.Lock()
	c.lastSeen = now
	c.mu.Unlock()
}

func (c *Context) idleSince(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return now.Sub(c.lastSeen)
}

// Store holds live sessions. A zero TTL disables expiry.
type Store struct {
	sessions map[string]*Context
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a new Store.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Context),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session on the catalog screen with an empty cart.
func (s *Store) Create(userID, username string) *Context {
	sess := &Context{
		ID:       uuid.New().String(),
		UserID:   userID,
		Username: username,
		Cart:     cart.New(),
		screen:   ScreenCatalog,
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns a live session and refreshes its idle timer.
func (s *Store) Get(id string) (*Context, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := s.now()
	if s.ttl > 0 && sess.idleSince(now) > s.ttl {
		s.Delete(id)
		return nil, ErrSessionNotFound
	}
	sess.touch(now)
	return sess, nil
}

// Delete ends a session and discards its cart. Unknown IDs are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		sess.Cart.Clear()
	}
}

// Sweep removes sessions idle longer than the TTL and returns how many went.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()

	s.mu.Lock()
	var expired []*Context
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.ttl {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Cart.Clear()
	}
	return len(expired)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
