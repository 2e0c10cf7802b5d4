// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package consoleui implements the interactive terminal console for the
// webxes AI-employee system: a bubbletea program with a sidebar, seven page
// views (login, dashboard, approvals, social, inbox, audit, settings), an
// approval editor modal, a notification panel, and a toast overlay.
//
// All state lives in the Model and mutates only inside Update. Network calls
// run as tea.Cmd functions whose results re-enter the loop as typed
// messages; every fetch carries a cache key and sequence number so a stale
// response for a superseded query can never overwrite newer state.
//
// The Model talks to the backend through the [Backend] interface, satisfied
// by the api package's client and by in-memory fakes in tests.
package consoleui
