// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget implements the chat controller shared by every front end.
//
// The Controller owns the conversation log, the in-flight flag and the live
// status fields. It talks to the backend through a Transport, reports every
// visible change to a Renderer and counts completed exchanges in Analytics.
// None of these are globals: the application builds them once and injects
// them.
//
// Optional behaviour is composed from Features attached at construction:
//
//   - Shortcuts: key chord to action table
//   - ContextMenu: the Clear / Export / Train menu
//   - Notifications: desktop notification on bot replies while unfocused
//
// Features and front ends trigger controller behaviour by name through the
// action Registry, so a shortcut, a menu entry and a REPL slash command all
// end up in the same handler.
//
// # Key Types
//
//   - Controller: Submit, Retrain, Clear, ExportLog, language override
//   - Renderer: Presentation sink implemented by the TUI and the REPL
//   - Status: Live language / intent / confidence fields
//   - Registry, Action: Named actions with aliases and help text
//
// # Usage
//
//	ctrl := widget.New(client, renderer, session,
//	    widget.WithLogger(logger),
//	    widget.WithFeatures(widget.NewShortcuts(), widget.NewContextMenu()),
//	)
//	ctrl.Submit(ctx, "Where is my order #AB1234?")
package widget
