// Package session holds runtime state for the active controlling browser.
package session

import (
	"sync"

	"github.com/frudas24/deskcontrol/internal/event"
)

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Authenticated bool
	InputEnabled  bool
	ScreenSize    event.Size
}

// Session holds runtime state for the active browser.
type Session struct {
	mu            sync.RWMutex
	password      string
	authenticated bool
	inputEnabled  bool
	screen        event.Size
}

// New returns an initialized session with the given password and remote screen size.
func New(password string, screen event.Size) *Session {
	return &Session{
		password:     password,
		inputEnabled: true,
		screen:       screen,
	}
}

// Authenticate validates the password and marks the session as authenticated.
func (s *Session) Authenticate(pass string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pass != "" && pass == s.password {
		s.authenticated = true
		return true
	}
	s.authenticated = false
	return false
}

// Logout clears authentication state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// IsAuthenticated reports whether the session is authenticated.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// SetInputEnabled toggles whether inputs are forwarded to the peer.
func (s *Session) SetInputEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputEnabled = enabled
}

// InputEnabled reports whether inputs are forwarded to the peer.
func (s *Session) InputEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputEnabled
}

// SetScreenSize records the remote screen size used to place pointer events.
func (s *Session) SetScreenSize(size event.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = size
}

// ScreenSize returns the remote screen size.
func (s *Session) ScreenSize() event.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Authenticated: s.authenticated,
		InputEnabled:  s.inputEnabled,
		ScreenSize:    s.screen,
	}
}
