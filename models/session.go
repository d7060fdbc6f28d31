package models

import "time"

// User types recognised by the backend.
const (
	UserTypeCustomer = "customer"
	UserTypePartner  = "partner"
	UserTypeEmployee = "employee"
)

// User is the backend's view of the signed-in principal.
type User struct {
	ID          int    `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	UserType    string `json:"user_type"`
	IsVerified  bool   `json:"is_verified"`
	ProfileImg  string `json:"profile_img,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// AuthSession represents the progress of an authentication flow. Owned
// exclusively by the auth service; the booking flow reads it but never
// mutates it directly. Verified-but-unauthenticated and
// authenticated-but-unverified are both legal intermediate states.
type AuthSession struct {
	User              *User     `json:"user,omitempty"`
	Token             string    `json:"token,omitempty"`
	VerificationToken string    `json:"verificationToken,omitempty"`
	IsAuthenticated   bool      `json:"isAuthenticated"`
	IsVerified        bool      `json:"isVerified"`
	LastUpdatedAt     time.Time `json:"lastUpdatedAt"`
}

// IsCustomer reports whether the session belongs to a verified,
// authenticated customer — the only principal allowed past the gate.
func (s *AuthSession) IsCustomer() bool {
	return s.IsAuthenticated && s.IsVerified && s.User != nil && s.User.UserType == UserTypeCustomer
}

// SessionDraftRecord is the backend-synced subset of BookingDraft,
// mirrored via storeSessionData so a later login on another device or
// tab can resume. Written at flow checkpoints, read once at gate
// resolution. Pointer fields distinguish "unset" from zero so partial
// writes merge instead of clobbering.
type SessionDraftRecord struct {
	ServiceID           *int       `json:"service_id,omitempty"`
	ServiceTierID       *int       `json:"service_tier_id,omitempty"`
	ScheduleTime        *time.Time `json:"schedule_time,omitempty"`
	SelectedProviderID  *int       `json:"selected_provider_id,omitempty"`
	BookedServices      []int      `json:"booked_services,omitempty"`
	BookedServicesTitle []string   `json:"booked_services_title,omitempty"`
}

// IsEmpty reports whether no field has been written yet.
func (r *SessionDraftRecord) IsEmpty() bool {
	return r.ServiceID == nil && r.ServiceTierID == nil && r.ScheduleTime == nil &&
		r.SelectedProviderID == nil && len(r.BookedServices) == 0 && len(r.BookedServicesTitle) == 0
}

// Merge applies set fields of partial onto r, last writer wins per key.
func (r *SessionDraftRecord) Merge(partial SessionDraftRecord) {
	if partial.ServiceID != nil {
		r.ServiceID = partial.ServiceID
	}
	if partial.ServiceTierID != nil {
		r.ServiceTierID = partial.ServiceTierID
	}
	if partial.ScheduleTime != nil {
		r.ScheduleTime = partial.ScheduleTime
	}
	if partial.SelectedProviderID != nil {
		r.SelectedProviderID = partial.SelectedProviderID
	}
	if len(partial.BookedServices) > 0 {
		r.BookedServices = partial.BookedServices
	}
	if len(partial.BookedServicesTitle) > 0 {
		r.BookedServicesTitle = partial.BookedServicesTitle
	}
}

// RecordFromDraft projects a BookingDraft onto the backend-synced
// subset. Unset draft fields stay unset in the record so merging never
// clobbers server state.
func RecordFromDraft(d BookingDraft) SessionDraftRecord {
	var record SessionDraftRecord
	if len(d.SelectedServiceIDs) > 0 {
		record.ServiceID = &d.SelectedServiceIDs[0]
		record.BookedServices = d.SelectedServiceIDs
		record.BookedServicesTitle = d.ServiceTitles
	}
	if d.SelectedTierID != 0 {
		tierID := d.SelectedTierID
		record.ServiceTierID = &tierID
	}
	if d.ScheduleTime != nil {
		record.ScheduleTime = d.ScheduleTime
	}
	if d.SelectedProviderID != nil {
		record.SelectedProviderID = d.SelectedProviderID
	}
	return record
}

// PendingBooking is the minimal resume context persisted before the auth
// gate suspends a booking. It must be serializable: closures do not
// survive a page reload.
type PendingBooking struct {
	Draft      BookingDraft `json:"draft"`
	Step       FlowStep     `json:"step"`
	FromSearch bool         `json:"fromSearch"`
	SavedAt    time.Time    `json:"savedAt"`
}
