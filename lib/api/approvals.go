// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Approvals lists artifacts waiting for review. An empty domain returns all
// domains; otherwise the backend filters server-side.
func (client *Client) Approvals(ctx context.Context, domain string) ([]ApprovalItem, error) {
	path := "/api/approvals"
	if domain != "" {
		path += "?domain=" + url.QueryEscape(domain)
	}
	response, err := client.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("approvals: %w", err)
	}
	defer response.Body.Close()

	if err := client.checkStatus(response, http.StatusOK); err != nil {
		return nil, fmt.Errorf("approvals: %w", err)
	}

	var result ApprovalList
	if err := decodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("approvals: %w", err)
	}
	return result.Items, nil
}

// Approval fetches one artifact with its full content. List responses carry
// only a preview; the editor needs this call before opening.
func (client *Client) Approval(ctx context.Context, id string) (*ApprovalItem, error) {
	response, err := client.get(ctx, "/api/approvals/"+url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("approval %s: %w", id, err)
	}
	defer response.Body.Close()

	if err := client.checkStatus(response, http.StatusOK); err != nil {
		return nil, fmt.Errorf("approval %s: %w", id, err)
	}

	var result ApprovalItem
	if err := decodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("approval %s: %w", id, err)
	}
	return &result, nil
}

// UpdateApprovalContent replaces the artifact's content with the operator's
// edited draft. The artifact stays in the queue; this is "save", not
// "approve".
func (client *Client) UpdateApprovalContent(ctx context.Context, id, content string) error {
	response, err := client.putJSON(ctx, "/api/approvals/"+url.PathEscape(id)+"/content", map[string]string{
		"content": content,
	})
	if err != nil {
		return fmt.Errorf("update approval %s: %w", id, err)
	}
	defer response.Body.Close()

	if err := client.checkStatus(response, http.StatusOK); err != nil {
		return fmt.Errorf("update approval %s: %w", id, err)
	}
	return nil
}

// Approve releases the artifact for execution. The note is optional and
// recorded in the audit trail; pass "" for none.
func (client *Client) Approve(ctx context.Context, id, note string) error {
	return client.decide(ctx, id, "approve", note)
}

// Reject withholds the artifact. The note is optional; pass "" for none.
func (client *Client) Reject(ctx context.Context, id, note string) error {
	return client.decide(ctx, id, "reject", note)
}

func (client *Client) decide(ctx context.Context, id, verb, note string) error {
	response, err := client.postJSON(ctx, "/api/approvals/"+url.PathEscape(id)+"/"+verb, map[string]string{
		"note": note,
	})
	if err != nil {
		return fmt.Errorf("%s approval %s: %w", verb, id, err)
	}
	defer response.Body.Close()

	if err := client.checkStatus(response, http.StatusOK); err != nil {
		return fmt.Errorf("%s approval %s: %w", verb, id, err)
	}
	return nil
}
