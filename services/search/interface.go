package search

import (
	"context"

	"fixora/backend"
	"fixora/models"
)

// Query is a free-text service + location + timing search.
type Query struct {
	ServiceQuery string
	ServiceID    int
	ZipCode      string
	Timing       models.Timing
}

// Result is the ranked provider list plus the backend identifiers the
// booking continuation needs downstream.
type Result struct {
	Providers     []models.Provider
	CatID         int
	SubcatID      int
	ServiceTierID int
}

// SearchService resolves a service query into eligible providers.
type SearchService interface {
	Resolve(ctx context.Context, q Query) (*Result, error)
}

// DefaultSearchService implements SearchService against the backend.
type DefaultSearchService struct {
	API backend.API
}
