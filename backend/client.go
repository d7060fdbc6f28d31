package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fixora/config"
	"fixora/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TokenSource supplies the current bearer token, or "" when the caller
// is not signed in. The client never owns session state.
type TokenSource func() string

// Client is the HTTP client for the marketplace backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	token      TokenSource
}

// NewClient creates a backend client. token may be nil for a client that
// only performs anonymous calls.
func NewClient(baseURL string, timeout time.Duration, token TokenSource) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	rps := config.AppConfig.MaxRequestsPerSec
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 5),
		token:   token,
	}
}

// NewClientFromConfig builds a client from the loaded app configuration.
func NewClientFromConfig(token TokenSource) *Client {
	return NewClient(
		config.AppConfig.APIBaseURL,
		time.Duration(config.AppConfig.APITimeoutSeconds)*time.Second,
		token,
	)
}

// doRequest handles the common logic for calls to the backend: rate
// limiting, JSON encoding, auth header, and error mapping. A transport
// failure or non-2xx status becomes a NetworkError; decoding happens
// only when target is non-nil.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, target any) error {
	op := fmt.Sprintf("%s %s", method, path)

	if err := c.limiter.Wait(ctx); err != nil {
		return &utils.NetworkError{Op: op, Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &utils.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		utils.GetLogger().Warn("Backend call failed",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody))
		return &utils.NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return &utils.NetworkError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, target)
}

func (c *Client) post(ctx context.Context, path string, body, target any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, target)
}
