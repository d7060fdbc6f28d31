package requests

import (
	"context"
	"sort"

	"fixora/backend"
	"fixora/models"
	"fixora/storage"
	"fixora/utils"

	"go.uber.org/zap"
)

// Filter keys accepted by List.
const (
	FilterAll       = "all"
	FilterPending   = "pending"
	FilterAccepted  = "accepted"
	FilterOnHold    = "on_hold"
	FilterInProcess = "in_process"
	FilterCompleted = "completed"
	FilterCancelled = "cancelled"
)

// Page is one page of the customer's requests, plus badge counts across
// ALL statuses regardless of the active filter.
type Page struct {
	Items       []models.RequestItem
	CurrentPage int
	TotalPages  int
	PerPage     int
	Counts      models.StatusCounts
	Degraded    bool
}

// DetailRoute keys a request detail view so "back" lands on the exact
// page and filter the user came from.
type DetailRoute struct {
	Status     models.RequestStatus
	RequestID  int
	OriginPage int
}

// TrackerService lists and inspects submitted requests.
type TrackerService interface {
	List(ctx context.Context, filter string, timeRange backend.TimeRange, page int) (*Page, error)
	Cancel(ctx context.Context, requestID int) error
	Resend(ctx context.Context, requestID int) error
}

// DefaultTracker implements TrackerService with a local degraded-mode
// fallback.
type DefaultTracker struct {
	API   backend.API
	Store storage.DraftStore
}

// List fetches one page of requests. On backend failure or an empty
// payload it falls back to the locally-cached snapshot so the view is
// never simply blank after a transient failure; the fallback is best
// effort and never fails.
func (t *DefaultTracker) List(ctx context.Context, filter string, timeRange backend.TimeRange, page int) (*Page, error) {
	if filter == "" {
		filter = FilterAll
	}
	if page < 1 {
		page = 1
	}

	res, err := t.API.ListRequests(ctx, filter, timeRange, page)
	if err != nil || res == nil || len(res.Items) == 0 {
		if err != nil {
			utils.GetLogger().Debug("Request listing failed, using local fallback", zap.Error(err))
		}
		return t.fallbackPage(filter, page), nil
	}

	// Keep the snapshot fresh for the next degraded read.
	if err := t.Store.CacheRequests(res.Items); err != nil {
		utils.GetLogger().Debug("Failed to refresh cached requests", zap.Error(err))
	}

	return &Page{
		Items:       res.Items,
		CurrentPage: res.CurrentPage,
		TotalPages:  res.TotalPages,
		PerPage:     res.PerPage,
		Counts:      NormalizeCounts(res.Counts),
	}, nil
}

// fallbackPage reconstructs a minimal listing from the local snapshot,
// createdAt-ordered, newest first.
func (t *DefaultTracker) fallbackPage(filter string, page int) *Page {
	cached, err := t.Store.CachedRequests()
	if err != nil {
		utils.GetLogger().Debug("Local request fallback unavailable", zap.Error(err))
		cached = nil
	}

	sort.SliceStable(cached, func(i, j int) bool {
		return cached[i].CreatedAt.After(cached[j].CreatedAt)
	})

	counts := make(models.StatusCounts)
	for _, item := range cached {
		counts[item.Status]++
	}

	items := cached
	if filter != FilterAll {
		want := NormalizeStatus(filter)
		items = make([]models.RequestItem, 0, len(cached))
		for _, item := range cached {
			if item.Status == want {
				items = append(items, item)
			}
		}
	}

	return &Page{
		Items:       items,
		CurrentPage: page,
		TotalPages:  1,
		PerPage:     len(items),
		Counts:      counts,
		Degraded:    true,
	}
}

// Cancel maps to the backend cancel action; status stays
// server-authoritative.
func (t *DefaultTracker) Cancel(ctx context.Context, requestID int) error {
	return t.API.CancelRequest(ctx, requestID)
}

// Resend re-broadcasts a request to providers.
func (t *DefaultTracker) Resend(ctx context.Context, requestID int) error {
	return t.API.ResendRequest(ctx, requestID)
}

// RouteFor builds the detail route key for a selected item.
func RouteFor(item models.RequestItem, originPage int) DetailRoute {
	return DetailRoute{
		Status:     NormalizeStatus(string(item.Status)),
		RequestID:  item.ID,
		OriginPage: originPage,
	}
}
