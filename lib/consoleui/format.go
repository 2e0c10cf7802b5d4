// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// relativeTime renders a timestamp as "just now", "5m ago", "3h ago",
// "2d ago". Future timestamps (clock skew) render as "just now".
func relativeTime(when time.Time, now time.Time) string {
	if when.IsZero() {
		return ""
	}
	elapsed := now.Sub(when)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}

// relativeUnix renders a Unix timestamp via relativeTime. The backend
// sends raw filesystem mtimes, so the value carries fractional seconds;
// whole-second precision is plenty for "5m ago".
func relativeUnix(unix float64, now time.Time) string {
	if unix == 0 {
		return ""
	}
	return relativeTime(time.Unix(int64(unix), 0), now)
}

// auditTimestamp parses the backend's RFC 3339 timestamps and renders them
// compactly as "Jan 2 15:04". Unparseable values pass through verbatim
// rather than hiding the event.
func auditTimestamp(timestamp string) string {
	parsed, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		if trimmed := strings.TrimSpace(timestamp); len(trimmed) > 16 {
			return trimmed[:16]
		}
		return timestamp
	}
	return parsed.Format("Jan 2 15:04")
}

// truncate shortens styled text to the given display width with an
// ellipsis, ANSI-aware.
func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}

// firstLine returns the first non-blank line of text, for list previews.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// pluralize is the trivial English s-suffix helper for count labels.
func pluralize(count int, singular string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %ss", count, singular)
}
