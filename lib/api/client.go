// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package api provides a typed HTTP client for the webxes backend REST API.
// Every console view goes through this client; it owns bearer-token
// attachment and the 401 contract (clear the stored credential, surface
// ErrUnauthorized, let the UI route to login).
//
// The client mirrors the backend's wire format using its own response types;
// the backend is consumed, never imported.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ErrUnauthorized is returned when the backend rejects the stored credential.
// By the time a caller sees this error the credential has already been
// cleared; the only correct reaction is to show the login view.
var ErrUnauthorized = errors.New("not authorized")

// CredentialStore supplies the bearer token for outgoing requests and
// accepts the clear signal when the backend rejects it.
type CredentialStore interface {
	// Token returns the current bearer token, or "" when logged out.
	Token() string

	// Clear drops the credential. Must be idempotent.
	Clear() error
}

// Client is a typed HTTP client for the webxes backend.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials CredentialStore
	logger      *slog.Logger
}

// New creates a Client for the given base URL (e.g. "http://localhost:5000").
// The credential store may hold no token yet; unauthenticated requests are
// sent without an Authorization header and the backend answers 401.
func New(baseURL string, credentials CredentialStore, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		credentials: credentials,
		logger:      logger,
	}
}

// NewForTesting creates a Client with a custom HTTP client. Tests point it
// at an httptest.Server.
func NewForTesting(baseURL string, httpClient *http.Client, credentials CredentialStore) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  httpClient,
		credentials: credentials,
		logger:      slog.New(slog.DiscardHandler),
	}
}

// BaseURL returns the backend base URL this client was configured with.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// get makes an authenticated GET request.
func (client *Client) get(ctx context.Context, path string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return client.do(request)
}

// postJSON makes an authenticated POST request with a JSON body.
func (client *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	return client.sendJSON(ctx, http.MethodPost, path, body)
}

// putJSON makes an authenticated PUT request with a JSON body.
func (client *Client) putJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	return client.sendJSON(ctx, http.MethodPut, path, body)
}

func (client *Client) sendJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	return client.do(request)
}

// do attaches the bearer token if one is stored and executes the request.
func (client *Client) do(request *http.Request) (*http.Response, error) {
	if token := client.credentials.Token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return client.httpClient.Do(request)
}

// checkStatus validates a response status against the one expected code.
// A 401 clears the stored credential and returns ErrUnauthorized; everything
// else unexpected becomes a diagnostic error carrying the response body.
// The login endpoint bypasses this: its 401 means "wrong password", not
// "stale credential".
func (client *Client) checkStatus(response *http.Response, want int) error {
	if response.StatusCode == http.StatusUnauthorized {
		if err := client.credentials.Clear(); err != nil {
			client.logger.Warn("clearing rejected credential", "error", err)
		}
		return ErrUnauthorized
	}
	if response.StatusCode != want {
		return fmt.Errorf("HTTP %d: %s", response.StatusCode, errorBody(response.Body))
	}
	return nil
}

// maxResponseSize bounds JSON response body reads: 64 MB. Real responses are
// orders of magnitude smaller; the bound only guards against a pathological
// server exhausting memory.
const maxResponseSize int64 = 64 << 20

// decodeResponse reads a JSON response body (bounded) and decodes it into v.
func decodeResponse(body io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// errorBody reads an HTTP error response body for diagnostic messages.
// Read errors are ignored since a partial body is still useful.
func errorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, maxResponseSize))
	return strings.TrimSpace(string(data))
}
