// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/supportchat/internal/app"
	"github.com/jeranaias/supportchat/internal/config"
	"github.com/jeranaias/supportchat/internal/logging"
	"github.com/jeranaias/supportchat/internal/mockbackend"
	"github.com/jeranaias/supportchat/internal/transport"
	"github.com/jeranaias/supportchat/internal/widget"
)

// =============================================================================
// HELPERS
// =============================================================================

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// commandNames lists the registered action names for completion.
func commandNames(a *app.App) []string {
	var names []string
	for _, action := range a.Controller.Actions().All() {
		names = append(names, action.Name)
	}
	return names
}

// newClient builds a backend client with the configured file logger.
func newClient(cfg *config.Config) (*transport.Client, *zap.Logger, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	client := transport.NewClient(cfg.Backend.URL,
		transport.WithTimeout(cfg.Backend.Timeout()),
		transport.WithSessionID(uuid.NewString()),
		transport.WithLogger(logger),
	)
	return client, logger, nil
}

// =============================================================================
// CHAT
// =============================================================================

func newChatCommand(opts *globalOptions) *cobra.Command {
	var historyFile string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start a line-based chat session",
		Long: `Start a line-based chat session with input history.

Lines starting with "/" run commands:
  /clear /export [json|md] /stats /stats-export /train /lang CODE
  /theme /copy /voice /help /quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !IsTTY() {
				return runREPL(cmd.Context(), opts, NewPlainReader(cmd.InOrStdin()), cmd.OutOrStdout(), false)
			}
			editor := NewLineEditor(historyFile)
			defer editor.Close()
			return runREPL(cmd.Context(), opts, editor, cmd.OutOrStdout(), IsStdoutTTY())
		},
	}
	cmd.Flags().StringVar(&historyFile, "history", "", "history file (default ~/.supportchat/chat_history)")
	return cmd
}

// =============================================================================
// SEND / TRAIN
// =============================================================================

func newSendCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send TEXT...",
		Short: "Send one message and print the backend result as JSON",
		Example: `  supportchat send "where is my order?"
  supportchat send --language es "¿dónde está mi pedido?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errors.New("message is empty")
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			override, err := widget.NormalizeLanguage(cfg.Chat.Language)
			if err != nil {
				return err
			}

			client, logger, err := newClient(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			res, err := client.Send(cmd.Context(), text, override)
			if err != nil {
				return fmt.Errorf("send: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newTrainCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Ask the backend to retrain its model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			client, logger, err := newClient(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			res, err := client.Retrain(cmd.Context())
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}
			if res.Failed() {
				return fmt.Errorf("train: %s", res.Error)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

// =============================================================================
// MOCK BACKEND
// =============================================================================

func newMockBackendCommand() *cobra.Command {
	var (
		fixtures string
		addr     string
		rate     float64
		burst    int
		latency  time.Duration
		logLevel string
	)
	cmd := &cobra.Command{
		Use:   "mock-backend",
		Short: "Serve canned NLU replies for local development",
		Long: `Serve /chat, /train and /health with replies from a TOML fixture file.

The fixture file is watched and reloaded on change. POST /train also reloads
it. Without --fixtures a built-in set of rules is served.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewConsole(logLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			srv, err := mockbackend.New(mockbackend.Options{
				FixturePath:   fixtures,
				RatePerSecond: rate,
				Burst:         burst,
				Latency:       latency,
				Logger:        logger,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Mock backend listening on %s\n", addr)
			return srv.Run(cmd.Context(), addr)
		},
	}
	f := cmd.Flags()
	f.StringVar(&fixtures, "fixtures", "", "TOML fixture file (default: built-in rules)")
	f.StringVar(&addr, "addr", ":5000", "listen address")
	f.Float64Var(&rate, "rate", mockbackend.DefaultRate, "requests per second per client; negative disables limiting")
	f.IntVar(&burst, "burst", mockbackend.DefaultBurst, "rate limit burst")
	f.DurationVar(&latency, "latency", 0, "artificial delay before each /chat reply")
	f.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}

// =============================================================================
// CONFIG
// =============================================================================

func newConfigCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cfg.String())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.configFile()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "get KEY",
		Short:     "Print one value (e.g. backend.url)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			v, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			if list, ok := v.([]string); ok {
				v = strings.Join(list, " ")
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set KEY VALUE",
		Short:     "Set one value in the config file",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.configFile()
			if err != nil {
				return err
			}
			// Edit the file itself, without environment overrides.
			cfg := config.Default()
			if err := config.LoadTOML(cfg, path); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}
