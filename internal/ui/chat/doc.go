// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the full-screen Bubble Tea chat interface.
//
// The model owns the terminal; the widget controller owns the conversation.
// Controller calls arrive from tea.Cmd goroutines through Bridge, which turns
// every renderer call into a tea.Msg so all view state changes on the UI
// goroutine.
//
// # Key Types
//
//   - Model: Bubble Tea model (viewport, text input, spinner, menu overlay)
//   - Bridge: widget.Renderer that forwards calls via Program.Send
//   - KeyMap: Navigation and menu bindings plus the shortcut table
//
// # Usage
//
//	bridge := chat.NewBridge()
//	a, _ := app.New(cfg, app.Options{Renderer: bridge})
//	m := chat.New(ctx, a)
//	p := tea.NewProgram(m, chat.ProgramOptions()...)
//	bridge.Attach(p)
//	_, err := p.Run()
package chat
