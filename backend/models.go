package backend

import (
	"time"

	"fixora/models"
)

// envelope is the common success/message wrapper on backend responses.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SearchQuery asks for eligible providers for a service in a zip code.
// Either ServiceQuery or ServiceID must be set.
type SearchQuery struct {
	ServiceQuery string        `json:"service,omitempty"`
	ServiceID    int           `json:"service_id,omitempty"`
	ZipCode      string        `json:"zip_code"`
	Timing       models.Timing `json:"timing"`
}

// SearchResult carries the ranked provider list plus the identifiers the
// booking continuation needs.
type SearchResult struct {
	Providers     []models.Provider `json:"providers"`
	CatID         int               `json:"cat_id"`
	SubcatID      int               `json:"subcat_id"`
	ServiceTierID int               `json:"service_tier_id"`
	RequestEcho   map[string]any    `json:"requestEcho,omitempty"`
}

// LoginRequest carries sign-in credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the sign-up form.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

// AuthResponse is the standard auth envelope shared by every auth verb.
type AuthResponse struct {
	Success           bool         `json:"success"`
	Message           string       `json:"message"`
	User              *models.User `json:"user,omitempty"`
	Token             string       `json:"token,omitempty"`
	VerificationToken string       `json:"verification_token,omitempty"`
	Redirect          string       `json:"redirect,omitempty"`
}

// TimeRange narrows a request listing to a creation window. Zero values
// mean unbounded.
type TimeRange struct {
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`
}

// RequestPage is one page of a customer's submitted requests. Counts
// covers all statuses regardless of the active filter.
type RequestPage struct {
	Items       []models.RequestItem `json:"items"`
	CurrentPage int                  `json:"currentPage"`
	TotalPages  int                  `json:"totalPages"`
	PerPage     int                  `json:"perPageCount"`
	Counts      map[string]int       `json:"statusCounts"`
}

// SubscriptionDetails bundles a subscription with its invoice history.
type SubscriptionDetails struct {
	Subscription models.Subscription `json:"subscription"`
	PastInvoices []models.Invoice    `json:"pastInvoices"`
}
