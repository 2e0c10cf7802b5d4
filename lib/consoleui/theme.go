// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/webxes-tech/console/lib/notify"
)

// Theme defines the color palette for the console. All colors use lipgloss
// ANSI 256-color codes for broad terminal compatibility.
//
// The semantic categories (approval domain, audit status, service health,
// toast kind) are open enumerations: the backend may grow new values, so
// every lookup method has a defined fallback instead of a zero color.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Approval domains.
	DomainEmail    lipgloss.Color
	DomainSocial   lipgloss.Color
	DomainPayments lipgloss.Color

	// Audit event statuses.
	StatusSuccess lipgloss.Color
	StatusFailure lipgloss.Color
	StatusPending lipgloss.Color
	StatusBlocked lipgloss.Color

	// Service health.
	ServiceActive lipgloss.Color
	ServiceStale  lipgloss.Color
	ServiceDown   lipgloss.Color

	// Toast kinds.
	ToastSuccess lipgloss.Color
	ToastError   lipgloss.Color
	ToastInfo    lipgloss.Color

	// Connection indicator.
	ConnectionLive lipgloss.Color
	ConnectionLost lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	AccentColor      lipgloss.Color

	// Overlay surfaces (notification panel, editor note prompt).
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
	OverlayBorder     lipgloss.Color
}

// DomainColor returns the accent color for an approval domain. Unknown
// domains get FaintText so a new backend domain still renders readably.
func (theme Theme) DomainColor(domain string) lipgloss.Color {
	switch domain {
	case "email":
		return theme.DomainEmail
	case "social_media":
		return theme.DomainSocial
	case "payments":
		return theme.DomainPayments
	default:
		return theme.FaintText
	}
}

// StatusColor returns the color for an audit event status. Recognizes the
// four standard statuses and returns FaintText for unknown values.
func (theme Theme) StatusColor(status string) lipgloss.Color {
	switch status {
	case "success":
		return theme.StatusSuccess
	case "failure", "error":
		return theme.StatusFailure
	case "pending":
		return theme.StatusPending
	case "blocked":
		return theme.StatusBlocked
	default:
		return theme.FaintText
	}
}

// ServiceColor returns the color for a service health status. The backend
// reports "active", "stale", or "not_found"; anything else (including a
// future "down") renders with the down color or FaintText.
func (theme Theme) ServiceColor(status string) lipgloss.Color {
	switch status {
	case "active":
		return theme.ServiceActive
	case "stale":
		return theme.ServiceStale
	case "down", "not_found":
		return theme.ServiceDown
	default:
		return theme.FaintText
	}
}

// ToastColor returns the border color for a toast kind.
func (theme Theme) ToastColor(kind notify.ToastKind) lipgloss.Color {
	switch kind {
	case notify.ToastSuccess:
		return theme.ToastSuccess
	case notify.ToastError:
		return theme.ToastError
	default:
		return theme.ToastInfo
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	DomainEmail:    lipgloss.Color("75"),  // blue
	DomainSocial:   lipgloss.Color("141"), // purple
	DomainPayments: lipgloss.Color("220"), // amber

	StatusSuccess: lipgloss.Color("114"), // green
	StatusFailure: lipgloss.Color("196"), // red
	StatusPending: lipgloss.Color("220"), // amber
	StatusBlocked: lipgloss.Color("208"), // orange

	ServiceActive: lipgloss.Color("114"),
	ServiceStale:  lipgloss.Color("220"),
	ServiceDown:   lipgloss.Color("196"),

	ToastSuccess: lipgloss.Color("114"),
	ToastError:   lipgloss.Color("196"),
	ToastInfo:    lipgloss.Color("75"),

	ConnectionLive: lipgloss.Color("114"),
	ConnectionLost: lipgloss.Color("196"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	AccentColor:      lipgloss.Color("75"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),
	OverlayBorder:     lipgloss.Color("75"),
}
