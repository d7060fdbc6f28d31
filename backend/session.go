package backend

import (
	"context"

	"fixora/models"
	"fixora/utils"
)

// StoreSessionData mirrors a partial draft to the server so a later
// login on another device or tab can resume the booking. Merging is
// server-side; only set fields are transmitted.
func (c *Client) StoreSessionData(ctx context.Context, partial models.SessionDraftRecord) error {
	var result envelope
	if err := c.post(ctx, "/api/session/store", partial, &result); err != nil {
		return err
	}
	if !result.Success {
		return &utils.BusinessRuleError{Op: "storeSessionData", Message: result.Message}
	}
	return nil
}

// GetServiceTiers fetches the tier options for the services stored in
// the current session. The backend derives the response from previously
// stored session state, so StoreSessionData for the same checkpoint must
// have completed first.
func (c *Client) GetServiceTiers(ctx context.Context) ([]models.ServiceTier, error) {
	var result struct {
		envelope
		ServiceTiers []models.ServiceTier `json:"service_tiers"`
	}
	if err := c.get(ctx, "/api/service-tiers", &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &utils.BusinessRuleError{Op: "getServiceTiers", Message: result.Message}
	}
	return result.ServiceTiers, nil
}

// SubmitRequest creates the final RequestItem from a completed draft.
func (c *Client) SubmitRequest(ctx context.Context, draft models.BookingDraft) (*models.RequestItem, error) {
	var result struct {
		envelope
		Request *models.RequestItem `json:"request"`
	}
	if err := c.post(ctx, "/api/requests", draft, &result); err != nil {
		return nil, err
	}
	if !result.Success || result.Request == nil {
		return nil, &utils.BusinessRuleError{Op: "submitRequest", Message: result.Message}
	}
	return result.Request, nil
}
