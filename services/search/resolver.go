package search

import (
	"context"
	"strings"

	"fixora/backend"
	"fixora/models"
	"fixora/utils"

	"go.uber.org/zap"
)

// Resolve validates the query, calls the backend, and returns the
// ranked provider list in backend order. An empty list is a valid
// result, not an error. It never mutates the booking draft.
func (s *DefaultSearchService) Resolve(ctx context.Context, q Query) (*Result, error) {
	if q.ZipCode == "" {
		return nil, utils.NewValidationError("zipCode", "zip code is required")
	}
	if q.ServiceQuery == "" && q.ServiceID == 0 {
		return nil, utils.NewValidationError("service", "a service name or service id is required")
	}
	if q.Timing.Mode == "" {
		q.Timing.Mode = models.TimingEmergency
	}
	if q.Timing.Mode == models.TimingSchedule && q.Timing.ScheduleAt == nil {
		return nil, utils.NewValidationError("scheduleAt", "a schedule time is required for scheduled timing")
	}

	res, err := s.API.Search(ctx, backend.SearchQuery{
		ServiceQuery: q.ServiceQuery,
		ServiceID:    q.ServiceID,
		ZipCode:      q.ZipCode,
		Timing:       q.Timing,
	})
	if err != nil {
		utils.GetLogger().Warn("Search failed",
			zap.String("service", q.ServiceQuery), zap.String("zip", q.ZipCode), zap.Error(err))
		return nil, &SearchFailedError{Err: err}
	}

	return &Result{
		Providers:     res.Providers,
		CatID:         res.CatID,
		SubcatID:      res.SubcatID,
		ServiceTierID: res.ServiceTierID,
	}, nil
}

// FilterByName re-filters an already-fetched result set by provider
// name, case-insensitive substring, purely in memory. The output is a
// subsequence of the input in original order; an empty needle returns
// the input unchanged.
func FilterByName(providers []models.Provider, needle string) []models.Provider {
	if needle == "" {
		return providers
	}
	needle = strings.ToLower(needle)
	filtered := make([]models.Provider, 0, len(providers))
	for _, p := range providers {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
