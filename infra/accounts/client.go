// Package accounts is the HTTP client for the account REST API.
package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/CrestNiraj12/rivalsnexus/domain"
	"github.com/CrestNiraj12/rivalsnexus/infra/auth"
)

// Header names checked by the server's admin gate.
const (
	HeaderAdminEmail = "X-Admin-Email"
	HeaderAdminRole  = "X-Admin-Role"
)

// APIError is a non-2xx answer from the API. Message is the server's
// human-readable error text.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// Unwrap maps well-known statuses to domain errors so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(e.Message), "banned") {
			return domain.ErrBanned
		}
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrDuplicateEmail
	case http.StatusBadRequest:
		return domain.ErrValidation
	}
	return nil
}

// Client is a thin HTTP wrapper for the account API.
// It handles base URL construction, JSON bodies and auth headers.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
}

// NewClient creates an account API client. tp may be nil when no call
// needs a session token.
func NewClient(baseURL string, tp auth.TokenProvider) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokenProvider: tp,
		http:          &http.Client{Timeout: 15 * time.Second},
	}
}

type requestOption func(*http.Request) error

func (c *Client) withBearer() requestOption {
	return func(req *http.Request) error {
		if c.tokenProvider == nil {
			return fmt.Errorf("auth: %w", domain.ErrUnauthorized)
		}
		token, err := c.tokenProvider.AccessToken()
		if err != nil {
			return fmt.Errorf("auth: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return nil
	}
}

func withAdmin(admin domain.Registered) requestOption {
	return func(req *http.Request) error {
		req.Header.Set(HeaderAdminEmail, admin.Email)
		req.Header.Set(HeaderAdminRole, string(admin.Role))
		return nil
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, opts ...requestOption) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		if err := opt(req); err != nil {
			return err
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &APIError{Method: method, Path: path, Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing response from %s: %w", path, err)
	}
	return nil
}
