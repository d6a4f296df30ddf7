package sessions

import (
	"sync"
	"time"

	"github.com/angelmondragon/storefront/internal/cart"
)

// Theme is the shopper's display preference.
type Theme struct {
	IsDark bool `json:"is_dark"`
}

// Session owns one cart and one theme preference for a single shopper.
type Session struct {
	ID        string
	CreatedAt time.Time

	cart *cart.Cart

	mu       sync.Mutex
	theme    Theme
	lastSeen time.Time
}

func (s *Session) Cart() *cart.Cart {
	return s.cart
}

func (s *Session) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ToggleTheme flips dark mode and returns the new preference.
func (s *Session) ToggleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme.IsDark = !s.theme.IsDark
	return s.theme
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(s.LastSeen()) > ttl
}
