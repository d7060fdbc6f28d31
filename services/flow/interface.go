package flow

import (
	"context"
	"sync"
	"time"

	"fixora/backend"
	"fixora/models"
	"fixora/services/auth"
	"fixora/storage"
	"fixora/utils"
)

// SearchSelection is what a completed search hands to the flow when the
// user picks a provider straight from results: provider and service are
// already chosen, so the flow can skip to address collection.
type SearchSelection struct {
	Provider        models.Provider
	ServiceID       int
	ServiceTitle    string
	CategorySlug    string
	SubcategorySlug string
	TierID          int
	TierTag         string
	ScheduleTime    *time.Time
}

// BookingFlowService is the central orchestrator of a booking attempt:
// it owns the step pointer, the accumulating draft, and the transition
// rules, including the authentication branch.
type BookingFlowService interface {
	Enter(subcategorySlug, categorySlug string)
	EnterFromSearch(ctx context.Context, sel SearchSelection) error
	ResumeFrom(ctx context.Context, pending models.PendingBooking) error

	State() models.FlowState
	Draft() models.BookingDraft
	Tiers() []models.ServiceTier
	LastSubmitted() *models.RequestItem

	ToggleService(id int, title string)
	SelectTier(ctx context.Context, tier models.ServiceTier) error
	SetSchedule(t *time.Time)
	SetAddress(addr models.Address)
	SetContact(contact models.Contact)
	AddAttachment(att models.Attachment)

	HandleNext(ctx context.Context) error
	HandlePrevious() error
	Submit(ctx context.Context) (*models.RequestItem, error)

	Teardown(navigatedAway bool)
}

// DefaultBookingFlow implements BookingFlowService.
type DefaultBookingFlow struct {
	API   backend.API
	Store storage.DraftStore
	Gate  auth.AuthService

	mu            sync.Mutex
	state         models.FlowState
	draft         models.BookingDraft
	tiers         []models.ServiceTier
	fromSearch    bool
	submitting    bool
	lastSubmitted *models.RequestItem
	mount         *utils.Mount
}

// NewBookingFlow wires the flow and registers itself as the gate's
// resume continuation.
func NewBookingFlow(api backend.API, store storage.DraftStore, gate auth.AuthService) *DefaultBookingFlow {
	f := &DefaultBookingFlow{
		API:   api,
		Store: store,
		Gate:  gate,
		state: models.FlowState{Step: models.StepServiceDetails},
		mount: utils.NewMount(),
	}
	gate.OnResume(f.ResumeFrom)
	return f
}
