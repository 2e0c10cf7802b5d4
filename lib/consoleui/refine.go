// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"sort"
	"strings"

	"github.com/webxes-tech/console/lib/api"
)

// SortOrder selects the local ordering of a fetched list.
type SortOrder int

const (
	// OrderNewest puts the most recently modified items first.
	OrderNewest SortOrder = iota
	// OrderOldest puts the least recently modified items first.
	OrderOldest
)

// Label returns the order's display name for the refinement bar.
func (order SortOrder) Label() string {
	if order == OrderOldest {
		return "oldest"
	}
	return "newest"
}

// Toggle flips the order.
func (order SortOrder) Toggle() SortOrder {
	if order == OrderNewest {
		return OrderOldest
	}
	return OrderNewest
}

// Refinement is the client-side stage of the two-stage filter pipeline.
// Server-side filters (domain, type, audit query) change what is fetched;
// a Refinement is a pure transform over the already-fetched items and
// never triggers a network round trip.
type Refinement struct {
	// Search is matched case-insensitively against filename and preview.
	Search string

	Order SortOrder
}

// matches reports whether an item with the given searchable fields passes
// the search term. An empty term passes everything.
func (refinement Refinement) matches(fields ...string) bool {
	if refinement.Search == "" {
		return true
	}
	needle := strings.ToLower(refinement.Search)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// RefineApprovals applies the local search and ordering to a fetched
// approval list. The input slice is not modified.
func RefineApprovals(items []api.ApprovalItem, refinement Refinement) []api.ApprovalItem {
	refined := make([]api.ApprovalItem, 0, len(items))
	for _, item := range items {
		if refinement.matches(item.Filename, item.Preview) {
			refined = append(refined, item)
		}
	}
	sort.SliceStable(refined, func(left, right int) bool {
		if refinement.Order == OrderOldest {
			return refined[left].Modified < refined[right].Modified
		}
		return refined[left].Modified > refined[right].Modified
	})
	return refined
}

// RefineInbox applies the local search and ordering to a fetched inbox
// list. The input slice is not modified.
func RefineInbox(items []api.InboxItem, refinement Refinement) []api.InboxItem {
	refined := make([]api.InboxItem, 0, len(items))
	for _, item := range items {
		if refinement.matches(item.Filename, item.Preview) {
			refined = append(refined, item)
		}
	}
	sort.SliceStable(refined, func(left, right int) bool {
		if refinement.Order == OrderOldest {
			return refined[left].Modified < refined[right].Modified
		}
		return refined[left].Modified > refined[right].Modified
	})
	return refined
}
