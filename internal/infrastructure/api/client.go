package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
)

// Client is the HTTP adapter for the remote storefront API. It owns the base
// URL, the default headers and the per-resource retry policies; the typed
// fetchers in this package are built on top of it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Logger
	sleep      SleepFunc

	mu    sync.RWMutex
	token string

	products   RetryPolicy
	categories RetryPolicy
	orders     RetryPolicy
}

// New creates a storefront API client from configuration.
func New(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.API.RequestTimeout,
		},
		baseURL:    strings.TrimSuffix(cfg.API.BaseURL, "/"),
		logger:     logger,
		sleep:      Sleep,
		products:   PolicyFor(cfg.Retry.Products, cfg.Retry.MaxDelay),
		categories: PolicyFor(cfg.Retry.Categories, cfg.Retry.MaxDelay),
		orders:     PolicyFor(cfg.Retry.Orders, cfg.Retry.MaxDelay),
	}
}

// SetSleep replaces the backoff timer. Tests use this to fast-forward
// simulated time instead of waiting on real delays.
func (c *Client) SetSleep(sleep SleepFunc) {
	c.sleep = sleep
}

// SetToken installs the session token sent on subsequent requests. The API
// expects the raw token in the Authorization header, no scheme prefix.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the session token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do performs one request and decodes the JSON response into out (when out is
// non-nil). Failures come back classified as *Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		}).Debug("request transport failure")
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{
			StatusCode: resp.StatusCode,
			Kind:       classifyStatus(resp.StatusCode),
		}
		// Error bodies carry a message field when the server has one.
		var errPayload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &errPayload) == nil {
			apiErr.ServerMessage = errPayload.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response for %s %s: %w", method, path, err)
	}
	return nil
}
