package backend

import (
	"context"
	"net/url"

	"fixora/models"
	"fixora/utils"
)

// GetProfile fetches the signed-in user's profile.
func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	var result struct {
		envelope
		User *models.User `json:"user"`
	}
	if err := c.get(ctx, "/api/profile", &result); err != nil {
		return nil, err
	}
	if !result.Success || result.User == nil {
		return nil, &utils.BusinessRuleError{Op: "getProfile", Message: result.Message}
	}
	return result.User, nil
}

// GetSubscriptionDetails fetches a subscription with its invoice
// history, rendered in the given IANA timezone.
func (c *Client) GetSubscriptionDetails(ctx context.Context, subID, timezone string) (*SubscriptionDetails, error) {
	params := url.Values{}
	params.Set("timezone", timezone)

	var result struct {
		envelope
		SubscriptionDetails
	}
	path := "/api/subscriptions/" + url.PathEscape(subID) + "?" + params.Encode()
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &utils.BusinessRuleError{Op: "getSubscriptionDetails", Message: result.Message}
	}
	return &result.SubscriptionDetails, nil
}
