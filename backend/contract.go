package backend

import (
	"context"

	"fixora/models"
)

// API is the set of backend capabilities the client core consumes. The
// exact wire shapes are backend-owned; services depend on this interface
// so tests can substitute fakes.
type API interface {
	// Search and booking continuation.
	Search(ctx context.Context, q SearchQuery) (*SearchResult, error)
	StoreSessionData(ctx context.Context, partial models.SessionDraftRecord) error
	GetServiceTiers(ctx context.Context) ([]models.ServiceTier, error)
	SubmitRequest(ctx context.Context, draft models.BookingDraft) (*models.RequestItem, error)

	// Auth verbs.
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	VerifyCode(ctx context.Context, verificationToken, code string) (*AuthResponse, error)
	ResendOTP(ctx context.Context, verificationToken string) (*AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) (*AuthResponse, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) (*AuthResponse, error)
	ChangePassword(ctx context.Context, current, next string) (*AuthResponse, error)
	DeleteAccount(ctx context.Context) (*AuthResponse, error)
	Logout(ctx context.Context) error

	// Request lifecycle.
	ListRequests(ctx context.Context, filter string, timeRange TimeRange, page int) (*RequestPage, error)
	CancelRequest(ctx context.Context, requestID int) error
	ResendRequest(ctx context.Context, requestID int) error

	// Account surface.
	GetProfile(ctx context.Context) (*models.User, error)
	GetSubscriptionDetails(ctx context.Context, subID, timezone string) (*SubscriptionDetails, error)
}
