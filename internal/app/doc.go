// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app assembles a supportchat session from configuration.
//
// Both front ends (the Bubble Tea TUI and the line REPL) build their state
// through New: logger, preference store, theme, capability adapters,
// transport, analytics session and controller with its features. App also
// registers the actions that need those adapters (export, copy, theme,
// voice, stats, help, quit) so every front end offers the same commands.
//
// # Usage
//
//	a, err := app.New(cfg, app.Options{Renderer: r})
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//	a.Controller.Submit(ctx, "Where is my order?")
package app
