// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package push

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/webxes-tech/console/lib/notify"
)

type staticCredentials struct {
	mutex sync.Mutex
	token string
}

func (s *staticCredentials) Token() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.token
}

func (s *staticCredentials) setToken(token string) {
	s.mutex.Lock()
	s.token = token
	s.mutex.Unlock()
}

// pushServer is a minimal backend websocket endpoint for tests. Each
// accepted connection is delivered on the connections channel so tests
// drive it directly.
type pushServer struct {
	server      *httptest.Server
	upgrader    websocket.Upgrader
	connections chan *serverConnection
	tokens      chan string
}

type serverConnection struct {
	conn     *websocket.Conn
	received chan string
}

func newPushServer(t *testing.T) *pushServer {
	t.Helper()
	ps := &pushServer{
		connections: make(chan *serverConnection, 4),
		tokens:      make(chan string, 4),
	}
	ps.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ws" {
			http.NotFound(w, r)
			return
		}
		ps.tokens <- r.URL.Query().Get("token")
		conn, err := ps.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		connection := &serverConnection{conn: conn, received: make(chan string, 16)}
		ps.connections <- connection
		go func() {
			for {
				_, message, err := conn.ReadMessage()
				if err != nil {
					close(connection.received)
					return
				}
				connection.received <- string(message)
			}
		}()
	}))
	t.Cleanup(ps.server.Close)
	return ps
}

func (ps *pushServer) waitForConnection(t *testing.T) *serverConnection {
	t.Helper()
	select {
	case connection := <-ps.connections:
		return connection
	case <-time.After(5 * time.Second):
		t.Fatal("no websocket connection arrived")
		return nil
	}
}

func newTestChannel(ps *pushServer, credentials CredentialStore) (*Channel, *notify.NotificationStore, *notify.ToastStore) {
	notifications := notify.NewNotificationStore()
	toasts := notify.NewToastStore()
	channel := NewChannel(Config{
		BaseURL:        ps.server.URL,
		Credentials:    credentials,
		Notifications:  notifications,
		Toasts:         toasts,
		PingInterval:   30 * time.Millisecond,
		ReconnectDelay: 30 * time.Millisecond,
	})
	return channel, notifications, toasts
}

func waitFor(t *testing.T, timeout time.Duration, condition func() bool, message string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(message)
}

func TestEventDeliveredToStores(t *testing.T) {
	ps := newPushServer(t)
	channel, notifications, toasts := newTestChannel(ps, &staticCredentials{token: "tok"})
	channel.Start()
	defer channel.Close()

	connection := ps.waitForConnection(t)
	waitFor(t, 2*time.Second, notifications.Connected, "store never marked connected")

	payload := `{"type":"approval_added","file":"vault/pending/post1.md","action":""}`
	if err := connection.conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		t.Fatal(err)
	}

	waitFor(t, 2*time.Second, func() bool { return len(notifications.Events()) == 1 },
		"event never reached the notification store")
	event := notifications.Events()[0]
	if event.Message != "New approval added: post1.md" {
		t.Errorf("event message = %q, want %q", event.Message, "New approval added: post1.md")
	}

	toastList := toasts.Toasts()
	if len(toastList) != 1 || toastList[0].Message != "New approval added: post1.md" {
		t.Errorf("toast queue = %+v, want one matching toast", toastList)
	}
	if toastList[0].Kind != notify.ToastInfo {
		t.Errorf("toast kind = %q, want info", toastList[0].Kind)
	}
}

func TestToastQueuedBeforeChangeSignal(t *testing.T) {
	ps := newPushServer(t)
	channel, notifications, toasts := newTestChannel(ps, &staticCredentials{token: "tok"})
	channel.Start()
	defer channel.Close()

	connection := ps.waitForConnection(t)
	waitFor(t, 2*time.Second, notifications.Connected, "never connected")

	// The UI schedules toast expiry when it wakes on the notification
	// store's change signal, so the toast must already be in the queue
	// by the time that signal is dispatched.
	changes := notifications.Subscribe()
	if err := connection.conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"approval_added","file":"post1.md"}`)); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change signal after the event frame")
	}
	if got := len(toasts.Toasts()); got != 1 {
		t.Fatalf("%d toasts visible at the change signal, want 1", got)
	}
	if len(notifications.Events()) != 1 {
		t.Fatal("event missing from the notification store")
	}
}

func TestPongAndMalformedFramesIgnored(t *testing.T) {
	ps := newPushServer(t)
	channel, notifications, toasts := newTestChannel(ps, &staticCredentials{token: "tok"})
	channel.Start()
	defer channel.Close()

	connection := ps.waitForConnection(t)
	for _, frame := range []string{`{"type":"pong"}`, `not json at all`} {
		if err := connection.conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			t.Fatal(err)
		}
	}
	// A real event after the ignored frames proves the connection survived.
	if err := connection.conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"task_added","file":"tasks/t1.md"}`)); err != nil {
		t.Fatal(err)
	}

	waitFor(t, 2*time.Second, func() bool { return len(notifications.Events()) > 0 },
		"event after ignored frames never arrived")
	if got := len(notifications.Events()); got != 1 {
		t.Errorf("%d events recorded, want 1 (pong and malformed must be dropped)", got)
	}
	if got := len(toasts.Toasts()); got != 1 {
		t.Errorf("%d toasts recorded, want 1", got)
	}
}

func TestKeepalivePing(t *testing.T) {
	ps := newPushServer(t)
	channel, _, _ := newTestChannel(ps, &staticCredentials{token: "tok"})
	channel.Start()
	defer channel.Close()

	connection := ps.waitForConnection(t)
	select {
	case message := <-connection.received:
		if message != "ping" {
			t.Errorf("keepalive frame = %q, want literal ping", message)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no keepalive ping arrived")
	}
}

func TestReconnectAfterDrop(t *testing.T) {
	ps := newPushServer(t)
	channel, notifications, _ := newTestChannel(ps, &staticCredentials{token: "tok"})
	channel.Start()
	defer channel.Close()

	first := ps.waitForConnection(t)
	waitFor(t, 2*time.Second, notifications.Connected, "never connected")

	first.conn.Close()
	waitFor(t, 2*time.Second, func() bool { return !notifications.Connected() },
		"store never marked disconnected after drop")

	// A fresh connection arrives after the fixed reconnect delay.
	ps.waitForConnection(t)
	waitFor(t, 2*time.Second, notifications.Connected, "never reconnected")
}

func TestNoConnectionWithoutCredential(t *testing.T) {
	ps := newPushServer(t)
	credentials := &staticCredentials{}
	channel, notifications, _ := newTestChannel(ps, credentials)
	channel.Start()
	defer channel.Close()

	select {
	case <-ps.connections:
		t.Fatal("channel dialed with no stored credential")
	case <-time.After(150 * time.Millisecond):
	}
	if got := channel.State(); got != StateIdle {
		t.Errorf("state = %q, want idle while logged out", got)
	}

	// Once a credential appears the channel connects on its own.
	credentials.setToken("tok-later")
	ps.waitForConnection(t)
	waitFor(t, 2*time.Second, notifications.Connected, "never connected after login")
	select {
	case token := <-ps.tokens:
		if token != "tok-later" {
			t.Errorf("dial token = %q, want tok-later", token)
		}
	default:
		t.Error("no token recorded for the dial")
	}
}

func TestCloseStopsReconnect(t *testing.T) {
	ps := newPushServer(t)
	channel, _, _ := newTestChannel(ps, &staticCredentials{token: "tok"})
	channel.Start()

	connection := ps.waitForConnection(t)
	channel.Close()
	connection.conn.Close()

	select {
	case <-ps.connections:
		t.Fatal("channel reconnected after Close")
	case <-time.After(200 * time.Millisecond):
	}

	// Close is idempotent.
	channel.Close()
}

func TestMessageForEvent(t *testing.T) {
	cases := []struct {
		name      string
		eventType string
		action    string
		file      string
		filePath  string
		want      string
	}{
		{"approval added", "approval_added", "", "vault/pending/post1.md", "", "New approval added: post1.md"},
		{"new approval alias", "new_approval", "", "draft.md", "", "New approval added: draft.md"},
		{"task added", "task_added", "", "", "tasks/t9.md", "New task added: t9.md"},
		{"approved", "approval_approved", "", "mail.md", "", "Approval approved: mail.md"},
		{"rejected", "approval_rejected", "", "pay.md", "", "Approval rejected: pay.md"},
		{"unknown with action", "vault_sync", "Vault synced", "", "", "Vault synced"},
		{"unknown without action", "vault_sync", "", "", "", "vault_sync"},
		{"no file reference", "approval_added", "", "", "", "New approval added"},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			got := MessageForEvent(testCase.eventType, testCase.action, testCase.file, testCase.filePath)
			if got != testCase.want {
				t.Errorf("MessageForEvent = %q, want %q", got, testCase.want)
			}
		})
	}
}
