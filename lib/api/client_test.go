// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeCredentials is an in-memory CredentialStore recording Clear calls.
type fakeCredentials struct {
	mutex  sync.Mutex
	token  string
	clears int
}

func (f *fakeCredentials) Token() string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.token
}

func (f *fakeCredentials) Clear() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.token = ""
	f.clears++
	return nil
}

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) (*Client, *fakeCredentials) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	credentials := &fakeCredentials{token: token}
	return NewForTesting(server.URL, server.Client(), credentials), credentials
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuthorization string
	client, _ := newTestClient(t, "tok-123", func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		w.Write([]byte(`{"pending_tasks":0,"approvals_waiting":0,"done_today":0,"services":[],"timeline":[]}`))
	})

	if _, err := client.DashboardStats(context.Background()); err != nil {
		t.Fatalf("DashboardStats failed: %v", err)
	}
	if gotAuthorization != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuthorization)
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	var gotAuthorization string
	var sawHeader bool
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`{"dry_run":true,"vault_path":"/vault","work_zone":"UTC","is_cloud":false}`))
	})

	if _, err := client.GetSettings(context.Background()); err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if sawHeader {
		t.Errorf("request carried Authorization %q with no stored token", gotAuthorization)
	}
}

func TestUnauthorizedClearsCredential(t *testing.T) {
	client, credentials := newTestClient(t, "stale-token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Approvals(context.Background(), "")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Approvals error = %v, want ErrUnauthorized", err)
	}
	if credentials.clears != 1 {
		t.Errorf("credential Clear called %d times, want 1", credentials.clears)
	}
	if credentials.Token() != "" {
		t.Error("credential not cleared after 401")
	}
}

func TestLoginFailureDoesNotClear(t *testing.T) {
	client, credentials := newTestClient(t, "existing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Login(context.Background(), "wrong-password")
	if err == nil {
		t.Fatal("Login succeeded against a 401 backend")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Error("login failure mapped to ErrUnauthorized; it should stay a plain error")
	}
	if credentials.clears != 0 {
		t.Errorf("login failure cleared the credential store (%d clears)", credentials.clears)
	}
}

func TestLoginSuccess(t *testing.T) {
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"access_token":"fresh-token"}`))
	})

	token, err := client.Login(context.Background(), "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token != "fresh-token" {
		t.Errorf("token = %q, want fresh-token", token)
	}
}

func TestApprovalsDomainFilter(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"items":[{"id":"post1","filename":"post1.md","domain":"social_media","preview":"draft","modified":1700000000}]}`))
	})

	items, err := client.Approvals(context.Background(), "social_media")
	if err != nil {
		t.Fatalf("Approvals failed: %v", err)
	}
	if gotQuery != "domain=social_media" {
		t.Errorf("query = %q, want domain=social_media", gotQuery)
	}
	if len(items) != 1 || items[0].Filename != "post1.md" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestAuditQueryEncoding(t *testing.T) {
	var gotURL string
	client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`{"events":[],"total":0,"page":2,"per_page":50,"pages":0}`))
	})

	page, err := client.AuditEvents(context.Background(), AuditQuery{
		Category: "email",
		Status:   "success",
		Search:   "invoice due",
		Page:     2,
		PerPage:  50,
	})
	if err != nil {
		t.Fatalf("AuditEvents failed: %v", err)
	}
	want := "/api/audit?category=email&page=2&per_page=50&search=invoice+due&status=success"
	if gotURL != want {
		t.Errorf("request URL = %q, want %q", gotURL, want)
	}
	if page.Page != 2 {
		t.Errorf("page = %d, want 2", page.Page)
	}
}

func TestDecisionEndpoints(t *testing.T) {
	cases := []struct {
		name     string
		call     func(client *Client) error
		wantPath string
	}{
		{
			name:     "approve",
			call:     func(c *Client) error { return c.Approve(context.Background(), "email1", "looks good") },
			wantPath: "/api/approvals/email1/approve",
		},
		{
			name:     "reject",
			call:     func(c *Client) error { return c.Reject(context.Background(), "pay2", "") },
			wantPath: "/api/approvals/pay2/reject",
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			var gotPath string
			client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte(`{"status":"ok"}`))
			})
			if err := testCase.call(client); err != nil {
				t.Fatalf("call failed: %v", err)
			}
			if gotPath != testCase.wantPath {
				t.Errorf("path = %q, want %q", gotPath, testCase.wantPath)
			}
		})
	}
}

func TestServerErrorCarriesBody(t *testing.T) {
	client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"vault unreachable"}`))
	})

	_, err := client.Inbox(context.Background(), "")
	if err == nil {
		t.Fatal("Inbox succeeded against a 500 backend")
	}
	if want := "vault unreachable"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not carry the response body", err)
	}
}

func TestFractionalModifiedTimestamps(t *testing.T) {
	// The backend reports st_mtime as a raw float with fractional
	// seconds on both approvals and inbox items.
	client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/approvals":
			w.Write([]byte(`{"items":[{"id":"a1","filename":"a.md","domain":"email","preview":"","modified":1726123456.789123}]}`))
		case "/api/inbox":
			w.Write([]byte(`{"items":[{"id":"i1","filename":"i.md","preview":"","modified":1726123456.789123,"metadata":{"type":"task"}}]}`))
		default:
			t.Errorf("unexpected request path %q", r.URL.Path)
		}
	})

	approvals, err := client.Approvals(context.Background(), "")
	if err != nil {
		t.Fatalf("Approvals failed: %v", err)
	}
	if len(approvals) != 1 || approvals[0].Modified != 1726123456.789123 {
		t.Errorf("approvals = %+v", approvals)
	}

	inbox, err := client.Inbox(context.Background(), "")
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(inbox) != 1 || inbox[0].Modified != 1726123456.789123 {
		t.Errorf("inbox = %+v", inbox)
	}
	if got := inbox[0].ItemType(); got != "task" {
		t.Errorf("ItemType() = %q, want task", got)
	}
}

func TestNullServiceAge(t *testing.T) {
	client, _ := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pending_tasks":1,"approvals_waiting":2,"done_today":3,
			"services":[{"name":"mailer","status":"not_found","last_update_minutes_ago":null}],
			"timeline":[]}`))
	})

	stats, err := client.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats failed: %v", err)
	}
	if len(stats.Services) != 1 {
		t.Fatalf("services = %+v", stats.Services)
	}
	if stats.Services[0].LastUpdateMinutesAgo != nil {
		t.Error("never-logged service should have nil last-update age")
	}
}
