package domain

import (
	"sync"
	"time"
)

// Session is the per-connection state. A session starts unauthenticated;
// once Authenticate runs it carries the resolved user for the rest of the
// connection's life and never changes again.
type Session struct {
	ID            string
	UserID        string
	UserName      string
	Role          string
	Authenticated bool
	CreatedAt     time.Time
	LastActiveAt  time.Time
	mu            sync.RWMutex
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// Authenticate binds the resolved user to this session.
func (s *Session) Authenticate(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UserID = user.ID
	s.UserName = user.Name
	s.Role = user.Role
	s.Authenticated = true
	s.LastActiveAt = time.Now()
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Authenticated
}

func (s *Session) GetUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.UserID
}

func (s *Session) GetUserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.UserName
}

func (s *Session) UpdateActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastActiveAt = time.Now()
}
