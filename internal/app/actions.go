// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeranaias/supportchat/internal/export"
	"github.com/jeranaias/supportchat/internal/widget"
)

// ErrNoReply is returned by copy before the bot has said anything.
var ErrNoReply = errors.New("no bot reply to copy yet")

// registerActions adds the adapter-backed actions to the controller's
// registry.
func (a *App) registerActions() {
	r := a.Controller.Actions()

	r.Register(&widget.Action{
		Name:        widget.ActionExport,
		Aliases:     []string{"e"},
		Description: "Export the conversation (json or md)",
		Usage:       "export [json|md]",
		Handler: func(ctx context.Context, args []string) error {
			format := ""
			if len(args) > 0 {
				format = args[0]
			}
			path, err := a.ExportConversation(format)
			if err != nil {
				return err
			}
			a.Controller.Notice("Conversation exported to " + path)
			return nil
		},
	})

	r.Register(&widget.Action{
		Name:        widget.ActionExportAnalytics,
		Description: "Export session analytics as JSON",
		Handler: func(ctx context.Context, args []string) error {
			path, err := export.Analytics(a.Session.Snapshot(), a.Export)
			if err != nil {
				return err
			}
			a.Controller.Notice("Analytics exported to " + path)
			return nil
		},
	})

	r.Register(&widget.Action{
		Name:        widget.ActionStats,
		Description: "Show session analytics",
		Handler: func(ctx context.Context, args []string) error {
			a.Controller.Notice(a.Session.Snapshot().Summary())
			return nil
		},
	})

	r.Register(&widget.Action{
		Name:        widget.ActionTheme,
		Description: "Toggle light/dark theme",
		Handler: func(ctx context.Context, args []string) error {
			mode, err := a.Themes.Toggle()
			a.Controller.Notice(fmt.Sprintf("Theme: %s", mode))
			if err != nil {
				return fmt.Errorf("preference not saved: %w", err)
			}
			return nil
		},
	})

	r.Register(&widget.Action{
		Name:        widget.ActionCopy,
		Description: "Copy the last bot reply to the clipboard",
		Handler: func(ctx context.Context, args []string) error {
			msg, ok := a.Controller.LastBotMessage()
			if !ok {
				return ErrNoReply
			}
			if err := a.Caps.CopyText(msg.Text); err != nil {
				return err
			}
			a.Controller.Notice("Copied to clipboard")
			return nil
		},
	})

	r.Register(&widget.Action{
		Name:        widget.ActionVoice,
		Description: "Dictate a message (never sent automatically)",
		Handler: func(ctx context.Context, args []string) error {
			text, err := a.Listen(ctx)
			if err != nil {
				return err
			}
			if a.onTranscript != nil {
				a.onTranscript(text)
			}
			return nil
		},
	})

	r.Register(&widget.Action{
		Name:        widget.ActionHelp,
		Aliases:     []string{"h", "?"},
		Description: "Show commands",
		Handler: func(ctx context.Context, args []string) error {
			a.Controller.Notice("Commands:\n" + r.HelpText())
			return nil
		},
	})

	r.Register(&widget.Action{
		Name:        widget.ActionQuit,
		Aliases:     []string{"q", "exit"},
		Description: "Quit",
		Handler: func(ctx context.Context, args []string) error {
			if a.onQuit != nil {
				a.onQuit()
			}
			return nil
		},
	})
}

// ExportConversation writes the conversation in format ("json" or "md").
func (a *App) ExportConversation(format string) (string, error) {
	exporter, err := export.ForFormat(format)
	if err != nil {
		return "", err
	}
	return export.Conversation(a.Controller.ExportLog(), exporter, a.Export)
}
