package auth

import (
	"context"
	"sync"
	"time"

	"fixora/backend"
	"fixora/models"
	"fixora/storage"

	"golang.org/x/time/rate"
)

// ResumeFunc continues a suspended booking after authentication
// completes. It receives the persisted pending context.
type ResumeFunc func(ctx context.Context, pending models.PendingBooking) error

// AuthService gates flow progress on identity and drives the auth
// modal's sub-flows.
type AuthService interface {
	// CheckAndGate invokes next immediately when the session belongs to
	// an authenticated, verified customer. Otherwise it persists the
	// pending context, opens the auth modal, and returns ErrAuthRequired
	// without invoking next.
	CheckAndGate(ctx context.Context, pending models.PendingBooking, next func(context.Context) error) error

	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, req backend.RegisterRequest) error
	VerifyCode(ctx context.Context, code string) error
	ResendCode(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	Logout(ctx context.Context) error

	// OnResume registers the continuation run exactly once after each
	// successful post-suspension authentication.
	OnResume(fn ResumeFunc)
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	API     backend.API
	Store   storage.DraftStore
	Session *Session
	Modal   *ModalState
	Resend  *Countdown

	mu            sync.Mutex
	resumeArmed   bool
	onResume      ResumeFunc
	busy          map[string]bool
	resendLimiter *rate.Limiter
}

// NewAuthService wires the service with an idle modal and countdown.
func NewAuthService(api backend.API, store storage.DraftStore, resendCooldownSeconds int) *DefaultAuthService {
	return &DefaultAuthService{
		API:     api,
		Store:   store,
		Session: NewSession(),
		Modal:   NewModalState(),
		Resend:  NewCountdown(resendCooldownSeconds, SystemClock),
		busy:    make(map[string]bool),
		// Backstop under the cooldown: absorbs rapid repeat clicks that
		// race the countdown arming.
		resendLimiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// OnResume registers the booking continuation.
func (s *DefaultAuthService) OnResume(fn ResumeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResume = fn
}

// beginAction marks an action in flight, refusing re-entrant calls for
// the same action while a prior one is outstanding.
func (s *DefaultAuthService) beginAction(action string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[action] {
		return false
	}
	s.busy[action] = true
	return true
}

func (s *DefaultAuthService) endAction(action string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, action)
}
