// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"testing"
	"time"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		when time.Time
		want string
	}{
		{name: "zero", when: time.Time{}, want: ""},
		{name: "seconds", when: now.Add(-30 * time.Second), want: "just now"},
		{name: "future", when: now.Add(time.Minute), want: "just now"},
		{name: "minutes", when: now.Add(-5 * time.Minute), want: "5m ago"},
		{name: "hours", when: now.Add(-3 * time.Hour), want: "3h ago"},
		{name: "days", when: now.Add(-49 * time.Hour), want: "2d ago"},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := relativeTime(testCase.when, now); got != testCase.want {
				t.Errorf("relativeTime() = %q, want %q", got, testCase.want)
			}
		})
	}
}

func TestAuditTimestamp(t *testing.T) {
	got := auditTimestamp("2026-03-10T15:04:05Z")
	if got != "Mar 10 15:04" {
		t.Errorf("auditTimestamp() = %q, want %q", got, "Mar 10 15:04")
	}
	// Unparseable input passes through rather than hiding the event.
	if got := auditTimestamp("yesterday"); got != "yesterday" {
		t.Errorf("auditTimestamp(unparseable) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("hello world", 8); got != "hello w…" {
		t.Errorf("truncate long = %q", got)
	}
	if got := truncate("hello", 0); got != "" {
		t.Errorf("truncate zero width = %q", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("\n\n  subject line\nbody"); got != "subject line" {
		t.Errorf("firstLine() = %q", got)
	}
	if got := firstLine("   \n\t\n"); got != "" {
		t.Errorf("firstLine(blank) = %q", got)
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "event"); got != "1 event" {
		t.Errorf("pluralize(1) = %q", got)
	}
	if got := pluralize(3, "event"); got != "3 events" {
		t.Errorf("pluralize(3) = %q", got)
	}
}
