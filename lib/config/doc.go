// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the webxes console.
//
// Configuration is loaded from a single file specified by either the
// WEBXES_CONFIG environment variable or a --config flag. There are no
// fallbacks and no automatic file search; running with no file at all is
// fine and uses the default local endpoints.
//
// After the file loads, two environment variables override endpoints:
// WEBXES_API_URL and WEBXES_WS_URL. Nothing else overrides config values.
//
// Key exports:
//
//   - [Config] -- endpoints plus per-view poll intervals
//   - [Default] -- returns a Config with the stock local-backend defaults
//   - [Load] -- the single entry point for loading
//   - [DeriveWSURL] -- http(s) to ws(s) scheme rewriting for the push channel
//
// This package depends on no other console packages.
package config
