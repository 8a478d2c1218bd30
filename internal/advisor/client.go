// Package advisor is the HTTP client for the remote answering service.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dawang/internal/catalog"
	"dawang/internal/logging"
)

// ErrUnavailable wraps every transport failure and non-2xx reply.
var ErrUnavailable = errors.New("advisory service unavailable")

// StatusError carries the HTTP status of a rejected call.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Path, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUnavailable }

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Question        string `json:"question"`
	ProfileDept     string `json:"profile_dept"`
	SelectedProgram string `json:"selected_program"`
	ProgramName     string `json:"program_name,omitempty"`
	SessionID       string `json:"session_id,omitempty"`
}

// ChatResponse is the reply of POST /api/chat. Emotion is free-form on the wire.
type ChatResponse struct {
	Answer    string `json:"answer"`
	Label     string `json:"label"`
	Emotion   string `json:"emotion"`
	Success   bool   `json:"success"`
	SessionID string `json:"session_id,omitempty"`
}

// RouteRequest is the body of POST /api/route.
type RouteRequest struct {
	Question        string `json:"question"`
	ProfileDept     string `json:"profile_dept"`
	SelectedProgram string `json:"selected_program"`
}

// RouteResponse is the reply of POST /api/route.
type RouteResponse struct {
	Label   string `json:"label"`
	Success bool   `json:"success"`
}

type programsResponse struct {
	Programs []catalog.Program `json:"programs"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks JSON to the answering service. Calls are never retried.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL. A zero timeout means 60s.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the service root the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// Ask sends one question.
func (c *Client) Ask(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	var resp ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &resp); err != nil {
		return ChatResponse{}, err
	}
	return resp, nil
}

// Route asks the service which topic a question belongs to.
func (c *Client) Route(ctx context.Context, req RouteRequest) (RouteResponse, error) {
	var resp RouteResponse
	if err := c.do(ctx, http.MethodPost, "/api/route", req, &resp); err != nil {
		return RouteResponse{}, err
	}
	return resp, nil
}

// AvailablePrograms lists the programs with detailed curriculum data.
func (c *Client) AvailablePrograms(ctx context.Context) ([]catalog.Program, error) {
	var resp programsResponse
	if err := c.do(ctx, http.MethodGet, "/api/programs/available", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Programs, nil
}

// Catalog lists every program the university offers.
func (c *Client) Catalog(ctx context.Context) ([]catalog.Program, error) {
	var resp programsResponse
	if err := c.do(ctx, http.MethodGet, "/api/programs/catalog", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Programs, nil
}

// Health returns the service's reported status.
func (c *Client) Health(ctx context.Context) (string, error) {
	var resp healthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logging.Get(logging.CategoryAPI).Warn("%s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()
	logging.APIDebug("%s %s -> %d in %s", method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logging.API("%s %s returned %d", method, path, resp.StatusCode)
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrUnavailable, path, err)
	}
	return nil
}
