package search

import (
	"context"
	"testing"
	"time"

	"fixora/backend"
	"fixora/models"
	"fixora/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	backend.API

	lastQuery backend.SearchQuery
	result    *backend.SearchResult
	err       error
}

func (a *stubAPI) Search(ctx context.Context, q backend.SearchQuery) (*backend.SearchResult, error) {
	a.lastQuery = q
	return a.result, a.err
}

func TestResolveRequiresZipCode(t *testing.T) {
	svc := &DefaultSearchService{API: &stubAPI{}}
	_, err := svc.Resolve(context.Background(), Query{ServiceQuery: "plumbing"})
	assert.True(t, utils.IsValidation(err))
}

func TestResolveRequiresServiceQueryOrID(t *testing.T) {
	svc := &DefaultSearchService{API: &stubAPI{}}
	_, err := svc.Resolve(context.Background(), Query{ZipCode: "77002"})
	assert.True(t, utils.IsValidation(err))
}

func TestResolveDefaultsToEmergencyTiming(t *testing.T) {
	api := &stubAPI{result: &backend.SearchResult{}}
	svc := &DefaultSearchService{API: api}

	_, err := svc.Resolve(context.Background(), Query{ServiceQuery: "plumbing", ZipCode: "77002"})
	require.NoError(t, err)
	assert.Equal(t, models.TimingEmergency, api.lastQuery.Timing.Mode)
}

func TestResolveScheduledTimingNeedsTime(t *testing.T) {
	svc := &DefaultSearchService{API: &stubAPI{}}
	_, err := svc.Resolve(context.Background(), Query{
		ServiceQuery: "plumbing",
		ZipCode:      "77002",
		Timing:       models.Timing{Mode: models.TimingSchedule},
	})
	assert.True(t, utils.IsValidation(err))

	at := time.Now().Add(24 * time.Hour)
	api := &stubAPI{result: &backend.SearchResult{}}
	svc = &DefaultSearchService{API: api}
	_, err = svc.Resolve(context.Background(), Query{
		ServiceQuery: "plumbing",
		ZipCode:      "77002",
		Timing:       models.Timing{Mode: models.TimingSchedule, ScheduleAt: &at},
	})
	assert.NoError(t, err)
}

func TestResolveEmptyResultIsNotAnError(t *testing.T) {
	api := &stubAPI{result: &backend.SearchResult{Providers: []models.Provider{}}}
	svc := &DefaultSearchService{API: api}

	res, err := svc.Resolve(context.Background(), Query{ServiceQuery: "plumbing", ZipCode: "99999"})
	require.NoError(t, err)
	assert.Empty(t, res.Providers)
}

func TestResolveWrapsBackendFailure(t *testing.T) {
	api := &stubAPI{err: &utils.NetworkError{Op: "POST /api/search", StatusCode: 503}}
	svc := &DefaultSearchService{API: api}

	_, err := svc.Resolve(context.Background(), Query{ServiceQuery: "plumbing", ZipCode: "77002"})
	var sfe *SearchFailedError
	require.ErrorAs(t, err, &sfe)
	var ne *utils.NetworkError
	assert.ErrorAs(t, err, &ne, "the transport cause stays reachable")
}

func TestResolveCarriesBookingIdentifiers(t *testing.T) {
	api := &stubAPI{result: &backend.SearchResult{
		Providers:     []models.Provider{{ID: 42, Name: "Blue Star Plumbing"}},
		CatID:         3,
		SubcatID:      11,
		ServiceTierID: 10,
	}}
	svc := &DefaultSearchService{API: api}

	res, err := svc.Resolve(context.Background(), Query{ServiceID: 7, ZipCode: "77002"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.CatID)
	assert.Equal(t, 11, res.SubcatID)
	assert.Equal(t, 10, res.ServiceTierID)
}

func TestFilterByName(t *testing.T) {
	providers := []models.Provider{
		{ID: 1, Name: "Blue Star Plumbing"},
		{ID: 2, Name: "Ace Drains"},
		{ID: 3, Name: "Starlight Repairs"},
	}

	got := FilterByName(providers, "star")
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID, "input order preserved")
	assert.Equal(t, 3, got[1].ID)

	assert.Equal(t, providers, FilterByName(providers, ""), "empty needle filters nothing")
	assert.Empty(t, FilterByName(providers, "zzz"))
}
