package backend

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"fixora/utils"
)

// ListRequests fetches one page of the customer's submitted requests.
// filter is one of the status filter keys, or "all".
func (c *Client) ListRequests(ctx context.Context, filter string, timeRange TimeRange, page int) (*RequestPage, error) {
	params := url.Values{}
	params.Set("filter", filter)
	params.Set("page", fmt.Sprintf("%d", page))
	if !timeRange.From.IsZero() {
		params.Set("from", timeRange.From.Format(time.RFC3339))
	}
	if !timeRange.To.IsZero() {
		params.Set("to", timeRange.To.Format(time.RFC3339))
	}

	var result struct {
		envelope
		RequestPage
	}
	if err := c.get(ctx, "/api/requests?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &utils.BusinessRuleError{Op: "listRequests", Message: result.Message}
	}
	return &result.RequestPage, nil
}

// CancelRequest asks the backend to cancel a submitted request. Status
// transitions stay server-authoritative; the caller refetches the list.
func (c *Client) CancelRequest(ctx context.Context, requestID int) error {
	var result envelope
	path := fmt.Sprintf("/api/requests/%d/cancel", requestID)
	if err := c.post(ctx, path, nil, &result); err != nil {
		return err
	}
	if !result.Success {
		return &utils.BusinessRuleError{Op: "cancelRequest", Message: result.Message}
	}
	return nil
}

// ResendRequest re-broadcasts a request to eligible providers.
func (c *Client) ResendRequest(ctx context.Context, requestID int) error {
	var result envelope
	path := fmt.Sprintf("/api/requests/%d/resend", requestID)
	if err := c.post(ctx, path, nil, &result); err != nil {
		return err
	}
	if !result.Success {
		return &utils.BusinessRuleError{Op: "resendRequest", Message: result.Message}
	}
	return nil
}
