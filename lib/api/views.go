// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DashboardStats fetches the headline counters, service health, and recent
// activity timeline shown on the dashboard view.
func (client *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	response, err := client.get(ctx, "/api/dashboard/stats")
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	defer response.Body.Close()

	if err := client.checkStatus(response, http.StatusOK); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	var result DashboardStats
	if err := decodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &result, nil
}

// Inbox lists inbox items. An empty typeFilter returns everything; otherwise
// the backend filters to one of email, task, or briefing.
func (client *Client) Inbox(ctx context.Context, typeFilter string) ([]InboxItem, error) {
	path := "/api/inbox"
	if typeFilter != "" {
		path += "?type=" + url.QueryEscape(typeFilter)
	}
	response, err := client.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("inbox: %w", err)
	}
	defer response.Body.Close()

	if err := client.checkStatus(response, http.StatusOK); err != nil {
		return nil, fmt.Errorf("inbox: %w", err)
	}

	var result InboxList
	if err := decodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("inbox: %w", err)
	}
	return result.Items, nil
}

// InboxItem fetches one inbox item with its full content. The list endpoint
// carries only a preview; row expansion triggers this call.
func (client *Client) InboxItem(ctx context.Context, id string) (*InboxItem, error) {
	response, err := client.get(ctx, "/api/inbox/"+url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("inbox item %s: %w", id, err)
	}
	defer response.Body.Close()

	if err := client.checkStatus(response, http.StatusOK); err != nil {
		return nil, fmt.Errorf("inbox item %s: %w", id, err)
	}

	var result InboxItem
	if err := decodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("inbox item %s: %w", id, err)
	}
	return &result, nil
}

// AuditEvents fetches one page of the audit trail. All query fields are
// server-side filters; zero values are omitted from the request.
func (client *Client) AuditEvents(ctx context.Context, query AuditQuery) (*AuditPage, error) {
	values := url.Values{}
	if query.Category != "" {
		values.Set("category", query.Category)
	}
	if query.Status != "" {
		values.Set("status", query.Status)
	}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(query.PerPage))
	}

	path := "/api/audit"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}
	response, err := client.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("audit events: %w", err)
	}
	defer response.Body.Close()

	if err := client.checkStatus(response, http.StatusOK); err != nil {
		return nil, fmt.Errorf("audit events: %w", err)
	}

	var result AuditPage
	if err := decodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("audit events: %w", err)
	}
	return &result, nil
}

// AuditSummary fetches aggregate event counts by category and status.
func (client *Client) AuditSummary(ctx context.Context) (*AuditSummary, error) {
	response, err := client.get(ctx, "/api/audit/summary")
	if err != nil {
		return nil, fmt.Errorf("audit summary: %w", err)
	}
	defer response.Body.Close()

	if err := client.checkStatus(response, http.StatusOK); err != nil {
		return nil, fmt.Errorf("audit summary: %w", err)
	}

	var result AuditSummary
	if err := decodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("audit summary: %w", err)
	}
	return &result, nil
}

// GetSettings fetches the system settings shown on the settings view.
func (client *Client) GetSettings(ctx context.Context) (*Settings, error) {
	response, err := client.get(ctx, "/api/settings")
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	defer response.Body.Close()

	if err := client.checkStatus(response, http.StatusOK); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	var result Settings
	if err := decodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return &result, nil
}

// SetDryRun toggles dry-run mode. With dry-run enabled the system simulates
// outbound actions instead of executing them; the UI confirm-gates this call.
func (client *Client) SetDryRun(ctx context.Context, enabled bool) error {
	response, err := client.putJSON(ctx, "/api/settings/dry-run", map[string]bool{
		"enabled": enabled,
	})
	if err != nil {
		return fmt.Errorf("set dry-run: %w", err)
	}
	defer response.Body.Close()

	if err := client.checkStatus(response, http.StatusOK); err != nil {
		return fmt.Errorf("set dry-run: %w", err)
	}
	return nil
}

// GenerateSocialPost asks the backend to draft a social post from a free-form
// prompt. The draft lands in the approval queue; nothing is published by this
// call.
func (client *Client) GenerateSocialPost(ctx context.Context, message string) (*GeneratedPost, error) {
	response, err := client.postJSON(ctx, "/api/social/generate", map[string]string{
		"message": message,
	})
	if err != nil {
		return nil, fmt.Errorf("generate social post: %w", err)
	}
	defer response.Body.Close()

	if err := client.checkStatus(response, http.StatusOK); err != nil {
		return nil, fmt.Errorf("generate social post: %w", err)
	}

	var result GeneratedPost
	if err := decodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("generate social post: %w", err)
	}
	return &result, nil
}
