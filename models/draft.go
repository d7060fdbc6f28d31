package models

import "time"

// FlowStep is the booking flow's current position.
type FlowStep string

const (
	StepServiceDetails   FlowStep = "service-details"
	StepServiceTier      FlowStep = "service-tier"
	StepAddressSelection FlowStep = "address-selection"
)

// Address is the service location collected before confirmation.
// Unit is the only optional field.
type Address struct {
	Street  string  `json:"street"`
	City    string  `json:"city"`
	ZipCode string  `json:"zipCode"`
	Unit    string  `json:"unit,omitempty"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}

// Contact identifies the person the provider will reach out to.
type Contact struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Attachment is a user-supplied photo or document kept with the draft.
// PreviewRef points at an already-uploaded preview, not raw bytes.
type Attachment struct {
	Filename   string `json:"filename"`
	MimeType   string `json:"mimeType"`
	PreviewRef string `json:"previewRef"`
}

// BookingDraft is the accumulating selection for one booking attempt.
// Created empty when a subcategory route is entered, mutated step by
// step, cleared on successful submission or navigation away.
type BookingDraft struct {
	SubcategorySlug    string       `json:"subcategorySlug"`
	CategorySlug       string       `json:"categorySlug"`
	SelectedServiceIDs []int        `json:"selectedServiceIds"`
	ServiceTitles      []string     `json:"serviceTitles,omitempty"`
	SelectedTier       string       `json:"selectedTier"`
	SelectedTierID     int          `json:"selectedTierId,omitempty"`
	ScheduleTime       *time.Time   `json:"scheduleTime,omitempty"`
	SelectedProviderID *int         `json:"selectedProviderId,omitempty"`
	Address            Address      `json:"address"`
	Contact            Contact      `json:"contact"`
	Attachments        []Attachment `json:"attachments,omitempty"`
}

// HasService reports whether the given service is already selected.
func (d *BookingDraft) HasService(id int) bool {
	for _, s := range d.SelectedServiceIDs {
		if s == id {
			return true
		}
	}
	return false
}

// ToggleService adds or removes a service selection.
func (d *BookingDraft) ToggleService(id int, title string) {
	for i, s := range d.SelectedServiceIDs {
		if s == id {
			d.SelectedServiceIDs = append(d.SelectedServiceIDs[:i], d.SelectedServiceIDs[i+1:]...)
			if i < len(d.ServiceTitles) {
				d.ServiceTitles = append(d.ServiceTitles[:i], d.ServiceTitles[i+1:]...)
			}
			return
		}
	}
	d.SelectedServiceIDs = append(d.SelectedServiceIDs, id)
	d.ServiceTitles = append(d.ServiceTitles, title)
}

// FlowState is the current step pointer plus transient UI flags. Exactly
// one exists per active booking session; transitions are the only legal
// mutator of Step.
type FlowState struct {
	Step            FlowStep `json:"step"`
	Loading         bool     `json:"loading"`
	LoadingTier     bool     `json:"isLoadingTier"`
	Error           string   `json:"error,omitempty"`
	IsAuthModalOpen bool     `json:"isAuthModalOpen"`
}
