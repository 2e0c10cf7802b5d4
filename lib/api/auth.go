// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
)

// Login exchanges the operator password for a bearer token. A 401 here means
// the password was wrong; it does NOT clear the credential store or return
// ErrUnauthorized, because a failed login attempt is not a stale session.
func (client *Client) Login(ctx context.Context, password string) (string, error) {
	response, err := client.postJSON(ctx, "/api/auth/login", map[string]string{
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusUnauthorized {
		return "", fmt.Errorf("login: invalid password")
	}
	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login: HTTP %d: %s", response.StatusCode, errorBody(response.Body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := decodeResponse(response.Body, &result); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("login: empty access_token in response")
	}
	return result.AccessToken, nil
}

// CheckAuth verifies the stored credential against the backend. Returns nil
// when the session is valid, ErrUnauthorized when the backend rejects it.
func (client *Client) CheckAuth(ctx context.Context) error {
	response, err := client.get(ctx, "/api/auth/me")
	if err != nil {
		return fmt.Errorf("check auth: %w", err)
	}
	defer response.Body.Close()

	if err := client.checkStatus(response, http.StatusOK); err != nil {
		return fmt.Errorf("check auth: %w", err)
	}
	return nil
}
