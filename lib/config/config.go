// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the webxes console.
//
// Configuration is loaded from a single file specified by:
//   - WEBXES_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. A missing config file is not
// an error: the console runs against the default local endpoints. After the
// file is loaded, the WEBXES_API_URL and WEBXES_WS_URL environment variables
// override the corresponding file values, so a one-off run against a different
// backend needs no file edit.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the API endpoint used when nothing else is configured.
// The backend serves on port 5000 in its stock deployment.
const DefaultAPIURL = "http://localhost:5000"

// Config is the master configuration for the console.
type Config struct {
	// APIURL is the base URL of the backend REST API.
	APIURL string `yaml:"api_url"`

	// PushURL is the base URL for the push channel. When empty it is
	// derived from APIURL by rewriting the scheme (http becomes ws,
	// https becomes wss).
	PushURL string `yaml:"push_url"`

	// Intervals configures per-view poll cadences.
	Intervals Intervals `yaml:"intervals"`
}

// Intervals holds the poll cadence for each dashboard view. Zero values are
// replaced by the defaults in Default.
type Intervals struct {
	// Dashboard covers both the stats view and the settings view.
	Dashboard time.Duration `yaml:"dashboard"`

	// Approvals is the cadence for the approval queue. It is the shortest
	// interval because the queue is the view operators act on.
	Approvals time.Duration `yaml:"approvals"`

	// Inbox is the cadence for the inbox list.
	Inbox time.Duration `yaml:"inbox"`

	// Audit is the cadence for the audit log. Audit data is append-only
	// and paged, so it refreshes least often.
	Audit time.Duration `yaml:"audit"`
}

// Default returns the default configuration. These defaults apply whenever a
// field is absent from the config file, and in full when no file is given.
func Default() *Config {
	return &Config{
		APIURL: DefaultAPIURL,
		Intervals: Intervals{
			Dashboard: 30 * time.Second,
			Approvals: 15 * time.Second,
			Inbox:     30 * time.Second,
			Audit:     60 * time.Second,
		},
	}
}

// Load loads configuration from the given path. An empty path falls back to
// the WEBXES_CONFIG environment variable; if that is also unset, the defaults
// are returned. Environment variable overrides are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("WEBXES_CONFIG")
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnvironment()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvironment applies the per-endpoint environment overrides. These win
// over file values so a single shell export can retarget the console.
func (c *Config) applyEnvironment() {
	if value := os.Getenv("WEBXES_API_URL"); value != "" {
		c.APIURL = value
	}
	if value := os.Getenv("WEBXES_WS_URL"); value != "" {
		c.PushURL = value
	}
}

// applyDefaults fills any zero-valued field from Default.
func (c *Config) applyDefaults() {
	defaults := Default()
	if c.APIURL == "" {
		c.APIURL = defaults.APIURL
	}
	if c.Intervals.Dashboard <= 0 {
		c.Intervals.Dashboard = defaults.Intervals.Dashboard
	}
	if c.Intervals.Approvals <= 0 {
		c.Intervals.Approvals = defaults.Intervals.Approvals
	}
	if c.Intervals.Inbox <= 0 {
		c.Intervals.Inbox = defaults.Intervals.Inbox
	}
	if c.Intervals.Audit <= 0 {
		c.Intervals.Audit = defaults.Intervals.Audit
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := url.Parse(c.APIURL); err != nil {
		return fmt.Errorf("invalid api_url %q: %w", c.APIURL, err)
	}
	if c.PushURL != "" {
		parsed, err := url.Parse(c.PushURL)
		if err != nil {
			return fmt.Errorf("invalid push_url %q: %w", c.PushURL, err)
		}
		if parsed.Scheme != "ws" && parsed.Scheme != "wss" {
			return fmt.Errorf("push_url %q must use a ws or wss scheme", c.PushURL)
		}
	}
	return nil
}

// ResolvedPushURL returns the push-channel base URL, deriving it from APIURL
// when no explicit push URL is configured.
func (c *Config) ResolvedPushURL() string {
	if c.PushURL != "" {
		return c.PushURL
	}
	return DeriveWSURL(c.APIURL)
}

// DeriveWSURL rewrites an http(s) URL into its ws(s) counterpart. Inputs that
// already use a ws scheme pass through unchanged.
func DeriveWSURL(apiURL string) string {
	switch {
	case strings.HasPrefix(apiURL, "https://"):
		return "wss://" + strings.TrimPrefix(apiURL, "https://")
	case strings.HasPrefix(apiURL, "http://"):
		return "ws://" + strings.TrimPrefix(apiURL, "http://")
	default:
		return apiURL
	}
}
