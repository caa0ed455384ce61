// Package client is a small Go SDK for the FreonTrack-Compliance REST API.
// The CLI uses it for the read-side commands; external automation can import
// it directly.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("freontrack: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

// IsNotFound reports whether the server answered 404.
func (e *APIError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

// IsUnauthorized reports whether the server answered 401.
func (e *APIError) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// Client talks to one FreonTrack API server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New builds a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("client: base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: invalid base URL %q", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Health probes the liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/healthz", nil)
}

// RiskAssessments fetches the fleet risk report, highest risk first.
func (c *Client) RiskAssessments(ctx context.Context) ([]RiskAssessment, error) {
	var out []RiskAssessment
	if err := c.get(ctx, "/api/v1/risk/assessments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RiskAssessment fetches the risk assessment for one appliance.
func (c *Client) RiskAssessment(ctx context.Context, equipmentID string) (*RiskAssessment, error) {
	var out RiskAssessment
	if err := c.get(ctx, "/api/v1/risk/assessments/"+url.PathEscape(equipmentID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ComplianceStatus fetches the compliance snapshot for one appliance.
func (c *Client) ComplianceStatus(ctx context.Context, equipmentID string) (*ComplianceStatus, error) {
	var out ComplianceStatus
	if err := c.get(ctx, "/api/v1/equipment/"+url.PathEscape(equipmentID)+"/compliance", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ComplianceReport fetches the fleet compliance report.
func (c *Client) ComplianceReport(ctx context.Context) (*ComplianceReport, error) {
	var out ComplianceReport
	if err := c.get(ctx, "/api/v1/reports/compliance", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(body, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return apiErr
	}

	if dest == nil {
		return nil
	}
	return json.Unmarshal(body, dest)
}

//Personal.AI order the ending
