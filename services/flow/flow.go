package flow

import (
	"context"
	"errors"
	"time"

	"fixora/models"
	"fixora/utils"

	"go.uber.org/zap"
)

// Enter starts a fresh booking attempt for a subcategory route. The
// draft begins empty apart from the emergency-like default tier.
func (f *DefaultBookingFlow) Enter(subcategorySlug, categorySlug string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mount = utils.NewMount()
	f.draft = models.BookingDraft{
		SubcategorySlug: subcategorySlug,
		CategorySlug:    categorySlug,
		SelectedTier:    models.TierTagEmergency,
	}
	f.state = models.FlowState{Step: models.StepServiceDetails}
	f.tiers = nil
	f.fromSearch = false
	f.lastSubmitted = nil
}

// EnterFromSearch is the distinguished shortcut: provider and service
// were already chosen during search, so the flow bypasses
// service-details and service-tier and enters at address-selection —
// after passing the gate.
func (f *DefaultBookingFlow) EnterFromSearch(ctx context.Context, sel SearchSelection) error {
	providerID := sel.Provider.ID
	tierTag := sel.TierTag
	if tierTag == "" {
		tierTag = models.TierTagEmergency
	}

	f.mu.Lock()
	f.mount = utils.NewMount()
	f.draft = models.BookingDraft{
		SubcategorySlug:    sel.SubcategorySlug,
		CategorySlug:       sel.CategorySlug,
		SelectedServiceIDs: []int{sel.ServiceID},
		ServiceTitles:      []string{sel.ServiceTitle},
		SelectedTier:       tierTag,
		SelectedTierID:     sel.TierID,
		ScheduleTime:       sel.ScheduleTime,
		SelectedProviderID: &providerID,
	}
	f.state = models.FlowState{Step: models.StepServiceDetails}
	f.tiers = nil
	f.fromSearch = true
	draft := f.draft
	f.mu.Unlock()

	// Provider-selection boundary: durable checkpoint so the selection
	// survives a reload or an auth redirect.
	if err := f.Store.SaveDraft(models.RecordFromDraft(draft)); err != nil {
		utils.GetLogger().Warn("Failed to persist draft at provider selection", zap.Error(err))
	}

	pending := models.PendingBooking{
		Draft:      draft,
		Step:       models.StepAddressSelection,
		FromSearch: true,
		SavedAt:    time.Now(),
	}
	err := f.Gate.CheckAndGate(ctx, pending, f.enterAddressSelection)
	if errors.Is(err, utils.ErrAuthRequired) {
		f.setAuthModalOpen()
	}
	return err
}

// ResumeFrom re-enters a suspended flow with the persisted context. A
// fromSearch suspension lands directly on address-selection with the
// provider still attached; a service-details suspension finishes the
// interrupted transition. The gate already mirrored the pending record
// remotely, so no additional store call happens here.
func (f *DefaultBookingFlow) ResumeFrom(ctx context.Context, pending models.PendingBooking) error {
	f.mu.Lock()
	f.mount = utils.NewMount()
	f.draft = pending.Draft
	f.fromSearch = pending.FromSearch
	f.state = models.FlowState{Step: models.StepServiceDetails}
	f.tiers = nil
	f.mu.Unlock()

	if pending.FromSearch || pending.Step == models.StepAddressSelection {
		return f.enterAddressSelection(ctx)
	}
	return f.loadTiers(ctx, false)
}

// State returns a copy of the transient flow state.
func (f *DefaultBookingFlow) State() models.FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns a copy of the accumulating selection.
func (f *DefaultBookingFlow) Draft() models.BookingDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Tiers returns the tier options fetched for the tier step.
func (f *DefaultBookingFlow) Tiers() []models.ServiceTier {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ServiceTier(nil), f.tiers...)
}

// LastSubmitted returns the request created by the latest successful
// submission, if any.
func (f *DefaultBookingFlow) LastSubmitted() *models.RequestItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSubmitted
}

func (f *DefaultBookingFlow) ToggleService(id int, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.ToggleService(id, title)
}

// SelectTier records the user's tier choice and overwrites the
// optimistically pre-stored tier on the server.
func (f *DefaultBookingFlow) SelectTier(ctx context.Context, tier models.ServiceTier) error {
	f.mu.Lock()
	f.draft.SelectedTierID = tier.TierID
	f.draft.SelectedTier = tier.Tag
	f.mu.Unlock()

	tierID := tier.TierID
	if err := f.API.StoreSessionData(ctx, models.SessionDraftRecord{ServiceTierID: &tierID}); err != nil {
		f.setError(err)
		return err
	}
	return nil
}

func (f *DefaultBookingFlow) SetSchedule(t *time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.ScheduleTime = t
	if t != nil {
		f.draft.SelectedTier = models.TierTagScheduled
	}
}

func (f *DefaultBookingFlow) SetAddress(addr models.Address) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Address = addr
}

func (f *DefaultBookingFlow) SetContact(contact models.Contact) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Contact = contact
}

func (f *DefaultBookingFlow) AddAttachment(att models.Attachment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Attachments = append(f.draft.Attachments, att)
}

// HandleNext advances exactly one step. The service-details exit is
// gated on authentication before any network call; the
// address-selection exit performs the final submission.
func (f *DefaultBookingFlow) HandleNext(ctx context.Context) error {
	f.mu.Lock()
	step := f.state.Step
	draft := f.draft
	f.mu.Unlock()

	switch step {
	case models.StepServiceDetails:
		if err := validateServiceSelection(&draft); err != nil {
			return err
		}
		pending := models.PendingBooking{
			Draft:      draft,
			Step:       step,
			FromSearch: false,
			SavedAt:    time.Now(),
		}
		err := f.Gate.CheckAndGate(ctx, pending, func(ctx context.Context) error {
			return f.loadTiers(ctx, true)
		})
		if errors.Is(err, utils.ErrAuthRequired) {
			f.setAuthModalOpen()
		}
		return err

	case models.StepServiceTier:
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.draft.SelectedTier == "" && f.draft.SelectedTierID == 0 {
			return utils.NewValidationError("tier", "a service tier is required")
		}
		to, ok := nextStep(step)
		if !ok {
			return &TransitionError{From: step, Reason: "no forward transition"}
		}
		f.state.Step = to
		f.state.Error = ""
		return nil

	case models.StepAddressSelection:
		_, err := f.Submit(ctx)
		return err
	}
	return &TransitionError{From: step, Reason: "unknown step"}
}

// HandlePrevious moves exactly one step back along the same path. The
// selections made so far are retained, not cleared.
func (f *DefaultBookingFlow) HandlePrevious() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	to, ok := prevStep(f.state.Step)
	if !ok {
		return &TransitionError{From: f.state.Step, Reason: "already at the first step"}
	}
	f.state.Step = to
	f.state.Error = ""
	return nil
}

// loadTiers finishes the service-details → service-tier transition:
// the checkpoint persist must complete before the tier fetch, because
// the backend derives tier options from stored session state. When
// mirrorCheckpoint is set, the default tier is immediately persisted as
// the chosen tier; the user's later choice overwrites it. The resumed
// path skips mirroring because the gate already stored the pending
// record.
func (f *DefaultBookingFlow) loadTiers(ctx context.Context, mirrorCheckpoint bool) error {
	f.mu.Lock()
	if f.state.LoadingTier {
		f.mu.Unlock()
		return nil
	}
	f.state.LoadingTier = true
	f.state.Error = ""
	draft := f.draft
	mount := f.mount
	f.mu.Unlock()

	// Cleared on every exit path: success, failure, and unmount.
	defer func() {
		f.mu.Lock()
		f.state.LoadingTier = false
		f.state.Loading = false
		f.mu.Unlock()
	}()

	if mirrorCheckpoint {
		if err := f.API.StoreSessionData(ctx, models.RecordFromDraft(draft)); err != nil {
			f.setError(err)
			return err
		}
		if err := f.Store.SaveDraft(models.RecordFromDraft(draft)); err != nil {
			utils.GetLogger().Warn("Failed to persist draft checkpoint", zap.Error(err))
		}
	}

	tiers, err := f.API.GetServiceTiers(ctx)
	if err != nil {
		f.setError(err)
		return err
	}
	if !mount.Alive() {
		return nil
	}

	chosen := defaultTier(tiers)
	if chosen != nil && mirrorCheckpoint {
		tierID := chosen.TierID
		if err := f.API.StoreSessionData(ctx, models.SessionDraftRecord{ServiceTierID: &tierID}); err != nil {
			f.setError(err)
			return err
		}
	}

	f.mu.Lock()
	f.tiers = tiers
	if chosen != nil {
		f.draft.SelectedTierID = chosen.TierID
		f.draft.SelectedTier = chosen.Tag
	}
	f.state.Step = models.StepServiceTier
	f.mu.Unlock()
	return nil
}

// Submit validates the completed draft and creates the RequestItem. On
// success the flow clears the draft and leaves the state machine.
func (f *DefaultBookingFlow) Submit(ctx context.Context) (*models.RequestItem, error) {
	f.mu.Lock()
	if f.state.Step != models.StepAddressSelection {
		step := f.state.Step
		f.mu.Unlock()
		return nil, &TransitionError{From: step, Reason: "submission only happens from address-selection"}
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, nil
	}
	if err := validateConfirmation(&f.draft); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.submitting = true
	f.state.Loading = true
	f.state.Error = ""
	draft := f.draft
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.state.Loading = false
		f.mu.Unlock()
	}()

	item, err := f.API.SubmitRequest(ctx, draft)
	if err != nil {
		f.setError(err)
		return nil, err
	}

	// Snapshot locally so the tracker has something to show even if the
	// first post-submission listing fails.
	if cached, readErr := f.Store.CachedRequests(); readErr == nil {
		if cacheErr := f.Store.CacheRequests(append([]models.RequestItem{*item}, cached...)); cacheErr != nil {
			utils.GetLogger().Warn("Failed to cache submitted request", zap.Error(cacheErr))
		}
	}
	if err := f.Store.ClearDraft(); err != nil {
		utils.GetLogger().Warn("Failed to clear durable draft after submission", zap.Error(err))
	}

	f.mu.Lock()
	f.lastSubmitted = item
	f.draft = models.BookingDraft{SelectedTier: models.TierTagEmergency}
	f.state = models.FlowState{Step: models.StepServiceDetails}
	f.tiers = nil
	f.fromSearch = false
	f.mu.Unlock()
	return item, nil
}

// Teardown handles the booking page unmounting. Navigating away resets
// the in-memory draft and state; an auth interruption keeps them, and
// the durable SessionDraftRecord is left untouched either way — only
// explicit completion or a new search clears it.
func (f *DefaultBookingFlow) Teardown(navigatedAway bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mount.Close()
	if !navigatedAway {
		return
	}
	f.draft = models.BookingDraft{SelectedTier: models.TierTagEmergency}
	f.state = models.FlowState{Step: models.StepServiceDetails}
	f.tiers = nil
	f.fromSearch = false
}

func (f *DefaultBookingFlow) enterAddressSelection(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Step = models.StepAddressSelection
	f.state.Error = ""
	f.state.IsAuthModalOpen = false
	return nil
}

func (f *DefaultBookingFlow) setError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Error = utils.UserMessage(err)
}

func (f *DefaultBookingFlow) setAuthModalOpen() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.IsAuthModalOpen = true
}

// defaultTier picks the backend's default marker when present, else the
// first returned tier.
func defaultTier(tiers []models.ServiceTier) *models.ServiceTier {
	if len(tiers) == 0 {
		return nil
	}
	for i := range tiers {
		if tiers[i].IsDefault {
			return &tiers[i]
		}
	}
	return &tiers[0]
}
