// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package push maintains the console's websocket connection to the backend
// and feeds incoming events into the notification stores.
//
// The connection is a deliberate state machine. Exactly one goroutine owns
// the lifecycle; every timer it arms is tied to the channel's context, so
// Close leaves no orphaned reconnect attempts behind. Reconnection uses a
// fixed delay with no attempt cap: the backend being down for an hour should
// cost nothing but a quiet indicator, and recovery follows within one delay
// of the backend returning.
package push

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"path"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/webxes-tech/console/lib/notify"
)

// State names the connection lifecycle phase.
type State string

const (
	// StateIdle means no credential is stored; the channel waits for one
	// to appear rather than dialing a connection the backend would refuse.
	StateIdle State = "idle"

	// StateConnecting means a dial is in flight.
	StateConnecting State = "connecting"

	// StateOpen means the socket is live and the keepalive is running.
	StateOpen State = "open"

	// StateClosedPendingReconnect means the socket dropped and the single
	// reconnect timer is armed.
	StateClosedPendingReconnect State = "closedPendingReconnect"
)

// CredentialStore supplies the token appended to the dial URL. The channel
// rechecks it on every cycle, so login and logout take effect within one
// reconnect delay without restarting the channel.
type CredentialStore interface {
	Token() string
}

// Config assembles a Channel's collaborators.
type Config struct {
	// BaseURL is the push endpoint base, e.g. "ws://localhost:5000".
	// http(s) schemes are rewritten to their ws(s) counterparts.
	BaseURL string

	Credentials   CredentialStore
	Notifications *notify.NotificationStore
	Toasts        *notify.ToastStore
	Logger        *slog.Logger

	// PingInterval and ReconnectDelay default to 30s and 5s. Tests
	// inject short values.
	PingInterval   time.Duration
	ReconnectDelay time.Duration
}

// Channel is the reconnecting push-channel client.
type Channel struct {
	config Config

	mutex sync.Mutex
	state State
	conn  *websocket.Conn

	cancel context.CancelFunc
	done   chan struct{}
}

// NewChannel creates a Channel. Call Start to begin connecting.
func NewChannel(config Config) *Channel {
	if config.PingInterval <= 0 {
		config.PingInterval = 30 * time.Second
	}
	if config.ReconnectDelay <= 0 {
		config.ReconnectDelay = 5 * time.Second
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Channel{
		config: config,
		state:  StateIdle,
	}
}

// Start launches the connection loop in a background goroutine. Calling
// Start on a running channel is a no-op.
func (channel *Channel) Start() {
	channel.mutex.Lock()
	defer channel.mutex.Unlock()
	if channel.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	channel.cancel = cancel
	channel.done = make(chan struct{})
	go channel.run(ctx)
}

// Close stops the loop, closes any open socket, and waits for the goroutine
// to exit. No reconnect fires after Close returns. Idempotent.
func (channel *Channel) Close() {
	channel.mutex.Lock()
	cancel := channel.cancel
	done := channel.done
	conn := channel.conn
	channel.cancel = nil
	channel.mutex.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	if conn != nil {
		// Unblocks the read loop immediately instead of waiting for
		// the next keepalive failure.
		conn.Close()
	}
	<-done
}

// State returns the current lifecycle phase.
func (channel *Channel) State() State {
	channel.mutex.Lock()
	defer channel.mutex.Unlock()
	return channel.state
}

func (channel *Channel) setState(state State) {
	channel.mutex.Lock()
	channel.state = state
	channel.mutex.Unlock()
}

// run is the single lifecycle goroutine. Each loop iteration is one
// connection attempt; between attempts it sleeps on the context so Close
// interrupts any wait.
func (channel *Channel) run(ctx context.Context) {
	defer close(channel.done)
	defer channel.config.Notifications.SetConnected(false)

	for {
		if ctx.Err() != nil {
			return
		}

		token := channel.config.Credentials.Token()
		if token == "" {
			channel.setState(StateIdle)
			if !sleepContext(ctx, channel.config.ReconnectDelay) {
				return
			}
			continue
		}

		channel.setState(StateConnecting)
		conn, err := channel.dial(ctx, token)
		if err != nil {
			channel.config.Logger.Debug("push dial failed", "error", err)
			channel.config.Notifications.SetConnected(false)
			channel.setState(StateClosedPendingReconnect)
			if !sleepContext(ctx, channel.config.ReconnectDelay) {
				return
			}
			continue
		}

		channel.mutex.Lock()
		channel.conn = conn
		channel.state = StateOpen
		channel.mutex.Unlock()
		channel.config.Notifications.SetConnected(true)
		channel.config.Logger.Debug("push channel open")

		channel.serve(ctx, conn)

		channel.mutex.Lock()
		channel.conn = nil
		channel.mutex.Unlock()
		channel.config.Notifications.SetConnected(false)

		if ctx.Err() != nil {
			return
		}
		channel.setState(StateClosedPendingReconnect)
		channel.config.Logger.Debug("push channel closed, reconnecting",
			"delay", channel.config.ReconnectDelay)
		if !sleepContext(ctx, channel.config.ReconnectDelay) {
			return
		}
	}
}

// dial connects to the backend's websocket endpoint with the credential in
// the query string, rewriting http(s) schemes to ws(s).
func (channel *Channel) dial(ctx context.Context, token string) (*websocket.Conn, error) {
	endpoint, err := url.Parse(channel.config.BaseURL)
	if err != nil {
		return nil, err
	}
	switch endpoint.Scheme {
	case "http":
		endpoint.Scheme = "ws"
	case "https":
		endpoint.Scheme = "wss"
	}
	endpoint.Path = path.Join(endpoint.Path, "/api/ws")
	query := endpoint.Query()
	query.Set("token", token)
	endpoint.RawQuery = query.Encode()

	conn, response, err := websocket.DefaultDialer.DialContext(ctx, endpoint.String(), nil)
	if response != nil && response.Body != nil {
		response.Body.Close()
	}
	return conn, err
}

// serve runs one open connection: a keepalive goroutine writing the literal
// text "ping", and the read loop consuming events. Returns when the
// connection drops or the context is canceled.
func (channel *Channel) serve(ctx context.Context, conn *websocket.Conn) {
	var writeMutex sync.Mutex
	connectionDone := make(chan struct{})
	defer close(connectionDone)

	go func() {
		ticker := time.NewTicker(channel.config.PingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				writeMutex.Lock()
				err := conn.WriteMessage(websocket.TextMessage, []byte("ping"))
				writeMutex.Unlock()
				if err != nil {
					// The read loop sees the same failure and
					// exits; nothing to do here.
					return
				}
			case <-ctx.Done():
				conn.Close()
				return
			case <-connectionDone:
				return
			}
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			return
		}
		channel.handleMessage(message)
	}
}

// wireEvent is the backend's event frame.
type wireEvent struct {
	Type   string `json:"type"`
	File   string `json:"file"`
	Path   string `json:"path"`
	Action string `json:"action"`
}

// handleMessage parses one frame. Pong replies are discarded, malformed
// frames are swallowed, everything else lands in the stores.
func (channel *Channel) handleMessage(message []byte) {
	var event wireEvent
	if err := json.Unmarshal(message, &event); err != nil {
		channel.config.Logger.Debug("discarding malformed push frame", "error", err)
		return
	}
	if event.Type == "pong" {
		return
	}

	display := MessageForEvent(event.Type, event.Action, event.File, event.Path)
	// The toast goes in first: AddEvent dispatches the change signal, and
	// the UI schedules toast expiry when it wakes on that signal, so the
	// toast must already be visible at dispatch time.
	channel.config.Toasts.Add(notify.ToastInfo, display)
	channel.config.Notifications.AddEvent(notify.Event{
		Type:    event.Type,
		File:    event.File,
		Path:    event.Path,
		Action:  event.Action,
		Message: display,
	})
}

// MessageForEvent renders a push event as the display string used in the
// notification panel and toasts. Known event types get a fixed label;
// unknown ones fall back to the event's action, then its raw type. A file
// or path reference appends the artifact's basename.
func MessageForEvent(eventType, action, file, filePath string) string {
	var label string
	switch eventType {
	case "approval_added", "new_approval":
		label = "New approval added"
	case "task_added":
		label = "New task added"
	case "approval_approved":
		label = "Approval approved"
	case "approval_rejected":
		label = "Approval rejected"
	default:
		label = action
		if label == "" {
			label = eventType
		}
	}

	reference := file
	if reference == "" {
		reference = filePath
	}
	if reference != "" {
		label += ": " + path.Base(reference)
	}
	return label
}

// sleepContext waits for the duration or the context, whichever first.
// Returns false when the context ended the wait.
func sleepContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
