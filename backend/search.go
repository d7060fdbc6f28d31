package backend

import (
	"context"

	"fixora/models"
	"fixora/utils"
)

// Search fetches the ranked provider list for a service query. An empty
// provider list is a valid result, not an error.
func (c *Client) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	var result struct {
		envelope
		SearchResult
	}
	if err := c.post(ctx, "/api/search", q, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &utils.BusinessRuleError{Op: "search", Message: result.Message}
	}
	if result.Providers == nil {
		result.Providers = []models.Provider{}
	}
	return &result.SearchResult, nil
}
