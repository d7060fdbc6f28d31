package account

import (
	"context"
	"sync"

	"fixora/backend"
	"fixora/models"
	"fixora/utils"
)

// AccountService covers the signed-in account surface: profile,
// password change, account deletion, and subscription details.
type AccountService interface {
	Profile(ctx context.Context, mount *utils.Mount) (*models.User, error)
	ChangePassword(ctx context.Context, current, next string) error
	DeleteAccount(ctx context.Context) error
	SubscriptionDetails(ctx context.Context, mount *utils.Mount, subID, timezone string) (*backend.SubscriptionDetails, error)
}

// DefaultAccountService is the production implementation.
type DefaultAccountService struct {
	API backend.API

	mu   sync.Mutex
	busy map[string]bool
}

func NewAccountService(api backend.API) *DefaultAccountService {
	return &DefaultAccountService{API: api, busy: make(map[string]bool)}
}

func (s *DefaultAccountService) begin(action string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy == nil {
		s.busy = make(map[string]bool)
	}
	if s.busy[action] {
		return false
	}
	s.busy[action] = true
	return true
}

func (s *DefaultAccountService) end(action string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, action)
}

// Profile fetches the signed-in user. A late response after the owning
// view unmounted is dropped instead of mutating dead state.
func (s *DefaultAccountService) Profile(ctx context.Context, mount *utils.Mount) (*models.User, error) {
	user, err := s.API.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if mount != nil && !mount.Alive() {
		return nil, nil
	}
	return user, nil
}

// ChangePassword validates locally, then submits. Validation errors
// never reach the backend.
func (s *DefaultAccountService) ChangePassword(ctx context.Context, current, next string) error {
	if !s.begin("changePassword") {
		return nil
	}
	defer s.end("changePassword")

	if current == "" || next == "" {
		return utils.NewValidationError("password", "current and new password are required")
	}
	if len(next) < 8 {
		return utils.NewValidationError("password", "new password must be at least 8 characters")
	}
	_, err := s.API.ChangePassword(ctx, current, next)
	return err
}

// DeleteAccount is destructive: on failure no partial local state
// change is applied; the caller shows the error in a blocking dialog.
func (s *DefaultAccountService) DeleteAccount(ctx context.Context) error {
	if !s.begin("deleteAccount") {
		return nil
	}
	defer s.end("deleteAccount")

	_, err := s.API.DeleteAccount(ctx)
	return err
}

// SubscriptionDetails fetches the subscription and its invoices,
// mounted-guarded like Profile.
func (s *DefaultAccountService) SubscriptionDetails(ctx context.Context, mount *utils.Mount, subID, timezone string) (*backend.SubscriptionDetails, error) {
	if subID == "" {
		return nil, utils.NewValidationError("subscription", "subscription id is required")
	}
	details, err := s.API.GetSubscriptionDetails(ctx, subID, timezone)
	if err != nil {
		return nil, err
	}
	if mount != nil && !mount.Alive() {
		return nil, nil
	}
	return details, nil
}
