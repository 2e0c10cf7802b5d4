// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// webxes-console is the terminal operations console for a WEBXES
// deployment. It signs the operator in against the backend API, then
// presents the dashboard, approval queue, inbox, audit trail, social
// composer, and settings as a full-screen TUI with live push updates
// over a websocket.
//
// Configuration comes from an optional YAML file (--config or
// WEBXES_CONFIG) with per-endpoint environment and flag overrides, so
// pointing a one-off run at a different backend needs no file edit.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/webxes-tech/console/lib/api"
	"github.com/webxes-tech/console/lib/config"
	"github.com/webxes-tech/console/lib/consoleui"
	"github.com/webxes-tech/console/lib/notify"
	"github.com/webxes-tech/console/lib/push"
	"github.com/webxes-tech/console/lib/session"
	"github.com/webxes-tech/console/lib/version"
)

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var apiURL string
	var wsURL string
	var logOutput string

	flagSet := pflag.NewFlagSet("webxes-console", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to config file (default: $WEBXES_CONFIG)")
	flagSet.StringVar(&apiURL, "api-url", "", "backend API base URL (overrides config file)")
	flagSet.StringVar(&wsURL, "ws-url", "", "push channel base URL (overrides config file)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match other console binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("webxes-console")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	args := flagSet.Args()
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if wsURL != "" {
		cfg.PushURL = wsURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Background logging must not reach stderr while the alt-screen TUI
	// is active, so records are discarded unless --log-output captures
	// them to a JSON file for post-mortem debugging.
	logger := slog.New(slog.DiscardHandler)
	if logOutput != "" {
		fileHandler, fileCloser, fileErr := openFileLogHandler(logOutput)
		if fileErr != nil {
			return fmt.Errorf("cannot open log file %s: %w", logOutput, fileErr)
		}
		defer fileCloser()
		logger = slog.New(fileHandler)
	}

	// A missing session file just means the console opens on the login
	// screen. Any other load failure (corrupt file, bad permissions) is
	// surfaced before the TUI starts.
	stored, err := session.Load()
	if err != nil && !errors.Is(err, session.ErrNotLoggedIn) {
		return err
	}
	credentials := session.NewStore(stored)

	client := api.New(cfg.APIURL, credentials, logger)
	notifications := notify.NewNotificationStore()
	toasts := notify.NewToastStore()

	channel := push.NewChannel(push.Config{
		BaseURL:       cfg.ResolvedPushURL(),
		Credentials:   credentials,
		Notifications: notifications,
		Toasts:        toasts,
		Logger:        logger,
	})
	defer channel.Close()

	model := consoleui.NewModel(client, credentials, channel, notifications, toasts, cfg.Intervals)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `WEBXES operations console — interactive terminal UI for the AI employee.

Connects to the backend API (default http://localhost:5000), prompts
for the operator password when no saved session exists, and opens the
dashboard. The push channel keeps the notification ring and toast
queue live while the console runs.

Usage:
  webxes-console [flags]

Examples:
  # Open the console against the local backend
  webxes-console

  # Run against a staging backend without editing the config file
  webxes-console --api-url https://staging.webxes.example

  # Capture background log records for debugging
  webxes-console --log-output /tmp/webxes-console.log

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// openFileLogHandler creates a JSON slog handler writing to the given
// file path. Returns the handler, a cleanup function to close the
// file, and any error. The file is created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}
