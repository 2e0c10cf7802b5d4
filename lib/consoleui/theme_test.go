// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"testing"

	"github.com/webxes-tech/console/lib/notify"
)

func TestDomainColorFallback(t *testing.T) {
	theme := DefaultTheme
	if theme.DomainColor("email") != theme.DomainEmail {
		t.Error("email domain color mismatch")
	}
	if theme.DomainColor("carrier_pigeon") != theme.FaintText {
		t.Error("unknown domain should fall back to FaintText")
	}
}

func TestStatusColor(t *testing.T) {
	theme := DefaultTheme
	cases := map[string]struct{ want, got string }{
		"success": {string(theme.StatusSuccess), string(theme.StatusColor("success"))},
		"failure": {string(theme.StatusFailure), string(theme.StatusColor("failure"))},
		"error":   {string(theme.StatusFailure), string(theme.StatusColor("error"))},
		"pending": {string(theme.StatusPending), string(theme.StatusColor("pending"))},
		"blocked": {string(theme.StatusBlocked), string(theme.StatusColor("blocked"))},
		"unknown": {string(theme.FaintText), string(theme.StatusColor("wat"))},
	}
	for name, testCase := range cases {
		if testCase.got != testCase.want {
			t.Errorf("%s: got %s, want %s", name, testCase.got, testCase.want)
		}
	}
}

func TestServiceColor(t *testing.T) {
	theme := DefaultTheme
	if theme.ServiceColor("active") != theme.ServiceActive {
		t.Error("active color mismatch")
	}
	if theme.ServiceColor("not_found") != theme.ServiceDown {
		t.Error("not_found should use the down color")
	}
	if theme.ServiceColor("") != theme.FaintText {
		t.Error("empty status should fall back to FaintText")
	}
}

func TestToastColor(t *testing.T) {
	theme := DefaultTheme
	if theme.ToastColor(notify.ToastSuccess) != theme.ToastSuccess {
		t.Error("success toast color mismatch")
	}
	if theme.ToastColor(notify.ToastError) != theme.ToastError {
		t.Error("error toast color mismatch")
	}
	if theme.ToastColor(notify.ToastKind("other")) != theme.ToastInfo {
		t.Error("unknown toast kind should use the info color")
	}
}
