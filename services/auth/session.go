package auth

import (
	"fmt"
	"sync"
	"time"

	"fixora/models"
)

// Session owns the process-wide auth state. It is mutated only through
// the named methods below so the invariant "authenticated implies token
// present" stays centrally enforced. Readers get copies.
type Session struct {
	mu      sync.Mutex
	current models.AuthSession
}

func NewSession() *Session {
	return &Session{}
}

// Current returns a copy of the session state.
func (s *Session) Current() models.AuthSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetAuthenticated records a completed sign-in. The token is mandatory.
func (s *Session) SetAuthenticated(user *models.User, token string) error {
	if token == "" {
		return fmt.Errorf("cannot mark session authenticated without a token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = models.AuthSession{
		User:            user,
		Token:           token,
		IsAuthenticated: true,
		IsVerified:      user != nil && user.IsVerified,
		LastUpdatedAt:   time.Now(),
	}
	return nil
}

// SetVerificationPending records a registration that still needs code
// entry. The principal is neither authenticated nor verified yet; the
// verification token was issued at registration time.
func (s *Session) SetVerificationPending(user *models.User, verificationToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = models.AuthSession{
		User:              user,
		VerificationToken: verificationToken,
		LastUpdatedAt:     time.Now(),
	}
}

// MarkVerified upgrades the session to authenticated+verified after a
// successful code entry.
func (s *Session) MarkVerified(token string) error {
	if token == "" {
		return fmt.Errorf("cannot mark session verified without a token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Token = token
	s.current.VerificationToken = ""
	s.current.IsAuthenticated = true
	s.current.IsVerified = true
	if s.current.User != nil {
		s.current.User.IsVerified = true
	}
	s.current.LastUpdatedAt = time.Now()
	return nil
}

// Restore replays a previously persisted session state. The caller
// validates the token first; the invariant is still enforced here.
func (s *Session) Restore(state models.AuthSession) error {
	if state.IsAuthenticated && state.Token == "" {
		return fmt.Errorf("cannot restore an authenticated session without a token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = state
	return nil
}

// Clear tears the session down on logout or account deletion.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = models.AuthSession{}
}

// Token returns the current bearer token, or "" when signed out.
// Suitable as a backend.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Token
}
