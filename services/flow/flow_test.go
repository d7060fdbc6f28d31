package flow

import (
	"context"
	"sync"
	"testing"
	"time"

	"fixora/backend"
	"fixora/models"
	"fixora/services/auth"
	"fixora/storage"
	"fixora/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI implements the backend surface the flow exercises and counts
// calls. Unimplemented methods panic via the embedded interface.
type fakeAPI struct {
	backend.API

	mu         sync.Mutex
	storeCalls []models.SessionDraftRecord
	tierCalls  int
	tiers      []models.ServiceTier
	tierErr    error
	submitErr  error
	submitted  []models.BookingDraft

	loginRes    *backend.AuthResponse
	registerRes *backend.AuthResponse
	verifyRes   *backend.AuthResponse
}

func (f *fakeAPI) StoreSessionData(ctx context.Context, partial models.SessionDraftRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.storeCalls = append(f.storeCalls, partial)
	return nil
}

func (f *fakeAPI) GetServiceTiers(ctx context.Context) ([]models.ServiceTier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tierCalls++
	if f.tierErr != nil {
		return nil, f.tierErr
	}
	return f.tiers, nil
}

func (f *fakeAPI) SubmitRequest(ctx context.Context, draft models.BookingDraft) (*models.RequestItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = append(f.submitted, draft)
	return &models.RequestItem{
		ID:            4711,
		RequestNumber: "RQ-4711",
		Status:        models.StatusPending,
		CreatedAt:     time.Now(),
	}, nil
}

func (f *fakeAPI) Login(ctx context.Context, req backend.LoginRequest) (*backend.AuthResponse, error) {
	return f.loginRes, nil
}

func (f *fakeAPI) Register(ctx context.Context, req backend.RegisterRequest) (*backend.AuthResponse, error) {
	return f.registerRes, nil
}

func (f *fakeAPI) VerifyCode(ctx context.Context, token, code string) (*backend.AuthResponse, error) {
	return f.verifyRes, nil
}

func (f *fakeAPI) storeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.storeCalls)
}

func (f *fakeAPI) tierCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tierCalls
}

func verifiedCustomer() *models.User {
	return &models.User{ID: 1, FullName: "Dana Fox", UserType: models.UserTypeCustomer, IsVerified: true}
}

func newTestFlow(t *testing.T, api *fakeAPI) (*DefaultBookingFlow, *auth.DefaultAuthService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	authSvc := auth.NewAuthService(api, store, 60)
	f := NewBookingFlow(api, store, authSvc)
	return f, authSvc, store
}

func signIn(t *testing.T, api *fakeAPI, authSvc *auth.DefaultAuthService) {
	t.Helper()
	api.loginRes = &backend.AuthResponse{Success: true, Token: "tok-1", User: verifiedCustomer()}
	require.NoError(t, authSvc.Login(context.Background(), "dana@example.com", "secret"))
}

func twoTiers() []models.ServiceTier {
	return []models.ServiceTier{
		{TierID: 10, Tag: models.TierTagEmergency, PayableAmount: 120},
		{TierID: 20, Tag: models.TierTagScheduled, PayableAmount: 90, IsSchedulable: true},
	}
}

func TestHandleNextRequiresServiceSelection(t *testing.T) {
	api := &fakeAPI{tiers: twoTiers()}
	f, authSvc, _ := newTestFlow(t, api)
	signIn(t, api, authSvc)

	f.Enter("drain-cleaning", "plumbing")
	err := f.HandleNext(context.Background())
	require.Error(t, err)
	assert.True(t, utils.IsValidation(err))
	assert.Equal(t, models.StepServiceDetails, f.State().Step)
}

func TestGateInterceptsBeforeAnyTierFetch(t *testing.T) {
	api := &fakeAPI{tiers: twoTiers()}
	f, _, store := newTestFlow(t, api)

	f.Enter("drain-cleaning", "plumbing")
	f.ToggleService(7, "Drain cleaning")

	err := f.HandleNext(context.Background())
	require.ErrorIs(t, err, utils.ErrAuthRequired)

	assert.Equal(t, 0, api.tierCount(), "no tier fetch may happen while unauthenticated")
	assert.Equal(t, models.StepServiceDetails, f.State().Step)
	assert.True(t, f.State().IsAuthModalOpen)

	pending, readErr := store.ReadPending()
	require.NoError(t, readErr)
	require.NotNil(t, pending)
	assert.Equal(t, []int{7}, pending.Draft.SelectedServiceIDs)
}

func TestAuthenticatedAdvancePreStoresDefaultTier(t *testing.T) {
	api := &fakeAPI{tiers: twoTiers()}
	f, authSvc, _ := newTestFlow(t, api)
	signIn(t, api, authSvc)

	f.Enter("drain-cleaning", "plumbing")
	f.ToggleService(7, "Drain cleaning")
	f.ToggleService(9, "Pipe inspection")

	require.NoError(t, f.HandleNext(context.Background()))

	assert.Equal(t, models.StepServiceTier, f.State().Step)
	assert.Equal(t, 1, api.tierCount())
	// Checkpoint persist, then the optimistic tier pre-store.
	require.Equal(t, 2, api.storeCount())
	require.NotNil(t, api.storeCalls[1].ServiceTierID)
	assert.Equal(t, 10, *api.storeCalls[1].ServiceTierID)
	assert.Equal(t, 10, f.Draft().SelectedTierID)
	assert.False(t, f.State().LoadingTier)
}

func TestCheckpointPersistCompletesBeforeTierFetch(t *testing.T) {
	api := &fakeAPI{tiers: twoTiers()}
	f, authSvc, _ := newTestFlow(t, api)
	signIn(t, api, authSvc)

	f.Enter("drain-cleaning", "plumbing")
	f.ToggleService(7, "Drain cleaning")
	require.NoError(t, f.HandleNext(context.Background()))

	// The first store call carries the selected services and happened
	// before the fetch: at fetch time, exactly one store call existed.
	require.GreaterOrEqual(t, api.storeCount(), 1)
	assert.Equal(t, []int{7}, api.storeCalls[0].BookedServices)
}

func TestTierFetchFailureKeepsStepAndClearsSpinner(t *testing.T) {
	api := &fakeAPI{tierErr: &utils.NetworkError{Op: "GET /api/service-tiers", StatusCode: 502}}
	f, authSvc, _ := newTestFlow(t, api)
	signIn(t, api, authSvc)

	f.Enter("drain-cleaning", "plumbing")
	f.ToggleService(7, "Drain cleaning")

	err := f.HandleNext(context.Background())
	require.Error(t, err)

	state := f.State()
	assert.Equal(t, models.StepServiceDetails, state.Step, "no partial advance on failure")
	assert.NotEmpty(t, state.Error)
	assert.False(t, state.LoadingTier)
	assert.False(t, state.Loading)
}

func TestPreviousAfterNextRestoresStepWithoutDataLoss(t *testing.T) {
	api := &fakeAPI{tiers: twoTiers()}
	f, authSvc, _ := newTestFlow(t, api)
	signIn(t, api, authSvc)

	f.Enter("drain-cleaning", "plumbing")
	f.ToggleService(7, "Drain cleaning")
	require.NoError(t, f.HandleNext(context.Background()))
	require.NoError(t, f.HandleNext(context.Background()))
	require.Equal(t, models.StepAddressSelection, f.State().Step)

	require.NoError(t, f.HandlePrevious())
	assert.Equal(t, models.StepServiceTier, f.State().Step)
	assert.Equal(t, 10, f.Draft().SelectedTierID, "tier retained moving backward")

	require.NoError(t, f.HandlePrevious())
	assert.Equal(t, models.StepServiceDetails, f.State().Step)
	assert.Equal(t, []int{7}, f.Draft().SelectedServiceIDs, "services retained moving backward")

	err := f.HandlePrevious()
	var te *TransitionError
	require.ErrorAs(t, err, &te)
}

func TestResumeAfterLoginIssuesExactlyOneStoreAndOneContinuation(t *testing.T) {
	api := &fakeAPI{tiers: twoTiers()}
	f, authSvc, store := newTestFlow(t, api)

	f.Enter("drain-cleaning", "plumbing")
	f.ToggleService(7, "Drain cleaning")
	require.ErrorIs(t, f.HandleNext(context.Background()), utils.ErrAuthRequired)

	storesBefore := api.storeCount()
	tiersBefore := api.tierCount()

	signIn(t, api, authSvc)

	assert.Equal(t, 1, api.storeCount()-storesBefore, "resume re-issues exactly one store call")
	assert.Equal(t, []int{7}, api.storeCalls[len(api.storeCalls)-1].BookedServices)
	assert.Equal(t, 1, api.tierCount()-tiersBefore, "exactly one continuation")
	assert.Equal(t, models.StepServiceTier, f.State().Step)

	pending, err := store.ReadPending()
	require.NoError(t, err)
	assert.Nil(t, pending, "pending cleared after successful resume")

	// A second successful login must not replay the resume.
	storesAfter := api.storeCount()
	signIn(t, api, authSvc)
	assert.Equal(t, storesAfter, api.storeCount())
}

func TestEndToEndSearchRegisterVerifyResume(t *testing.T) {
	api := &fakeAPI{tiers: twoTiers()}
	f, authSvc, store := newTestFlow(t, api)

	// No session: pick a provider straight from emergency search results.
	sel := SearchSelection{
		Provider:        models.Provider{ID: 42, Name: "Blue Star Plumbing"},
		ServiceID:       7,
		ServiceTitle:    "Plumbing",
		CategorySlug:    "plumbing",
		SubcategorySlug: "drain-cleaning",
		TierTag:         models.TierTagEmergency,
	}
	err := f.EnterFromSearch(context.Background(), sel)
	require.ErrorIs(t, err, utils.ErrAuthRequired)
	require.True(t, authSvc.Modal.IsOpen())
	require.Equal(t, auth.ViewSignIn, authSvc.Modal.View())

	// Sign up instead.
	authSvc.Modal.SwitchView(auth.ViewSignUp)
	api.registerRes = &backend.AuthResponse{
		Success:           true,
		VerificationToken: "vt-1",
		User:              &models.User{ID: 2, FullName: "New User", UserType: models.UserTypeCustomer},
	}
	require.NoError(t, authSvc.Register(context.Background(), backend.RegisterRequest{
		FullName: "New User", Email: "new@example.com", Phone: "5550100", Password: "hunter22",
	}))
	assert.Equal(t, auth.ViewVerification, authSvc.Modal.View(), "verification appears in place")

	// Correct code: session upgrades and the flow resumes where it left off.
	api.verifyRes = &backend.AuthResponse{Success: true, Token: "tok-2"}
	require.NoError(t, authSvc.VerifyCode(context.Background(), "123456"))

	assert.Equal(t, models.StepAddressSelection, f.State().Step)
	require.NotNil(t, f.Draft().SelectedProviderID)
	assert.Equal(t, 42, *f.Draft().SelectedProviderID, "provider survives the interruption")
	assert.False(t, authSvc.Modal.IsOpen())

	pending, readErr := store.ReadPending()
	require.NoError(t, readErr)
	assert.Nil(t, pending)
}

func TestEndToEndTierSwapAndBlankStreetRejection(t *testing.T) {
	api := &fakeAPI{tiers: twoTiers()}
	f, authSvc, _ := newTestFlow(t, api)
	signIn(t, api, authSvc)

	f.Enter("drain-cleaning", "plumbing")
	f.ToggleService(7, "Drain cleaning")
	f.ToggleService(9, "Pipe inspection")
	require.NoError(t, f.HandleNext(context.Background()))

	// First tier was optimistically pre-stored; pick the other one.
	require.Equal(t, 10, f.Draft().SelectedTierID)
	require.NoError(t, f.SelectTier(context.Background(), f.Tiers()[1]))
	assert.Equal(t, 20, f.Draft().SelectedTierID)
	last := api.storeCalls[len(api.storeCalls)-1]
	require.NotNil(t, last.ServiceTierID)
	assert.Equal(t, 20, *last.ServiceTierID)

	require.NoError(t, f.HandleNext(context.Background()))
	require.Equal(t, models.StepAddressSelection, f.State().Step)

	f.SetAddress(models.Address{City: "Houston", ZipCode: "77002", Country: "US"})
	f.SetContact(models.Contact{FullName: "Dana Fox", Email: "dana@example.com", Phone: "5550101"})

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "street", ve.Field)

	state := f.State()
	assert.Equal(t, models.StepAddressSelection, state.Step, "rejected locally, user stays put")
	draft := f.Draft()
	assert.Equal(t, "Houston", draft.Address.City, "other fields retained")
	assert.Equal(t, "Dana Fox", draft.Contact.FullName)
	assert.Empty(t, api.submitted, "nothing reached the backend")

	// Fill the street in and the submission goes through.
	f.SetAddress(models.Address{Street: "100 Main St", City: "Houston", ZipCode: "77002", Country: "US"})
	item, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, models.StepServiceDetails, f.State().Step, "machine reset after submission")
	assert.Empty(t, f.Draft().SelectedServiceIDs)
}

func TestTeardownOnNavigationResetsMemoryOnly(t *testing.T) {
	api := &fakeAPI{tiers: twoTiers()}
	f, authSvc, store := newTestFlow(t, api)
	signIn(t, api, authSvc)

	f.Enter("drain-cleaning", "plumbing")
	f.ToggleService(7, "Drain cleaning")
	require.NoError(t, f.HandleNext(context.Background()))

	f.Teardown(true)
	assert.Equal(t, models.StepServiceDetails, f.State().Step)
	assert.Empty(t, f.Draft().SelectedServiceIDs)

	// The durable record is keyed to resume intent, not page lifecycle.
	record, err := store.ReadDraft()
	require.NoError(t, err)
	assert.Equal(t, []int{7}, record.BookedServices)
}

func TestLateTierResponseAfterUnmountDoesNotAdvance(t *testing.T) {
	api := &fakeAPI{tiers: twoTiers()}
	f, authSvc, _ := newTestFlow(t, api)
	signIn(t, api, authSvc)

	f.Enter("drain-cleaning", "plumbing")
	f.ToggleService(7, "Drain cleaning")

	// Unmount before the (synchronous in this fake) response lands.
	f.mu.Lock()
	f.mount.Close()
	f.mu.Unlock()

	require.NoError(t, f.HandleNext(context.Background()))
	assert.Equal(t, models.StepServiceDetails, f.State().Step)
	assert.False(t, f.State().LoadingTier)
}
