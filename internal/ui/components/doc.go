// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks shared by the TUI
// and the REPL.
//
// Everything here is presentation: language names, status labels, the
// message formatter and the lipgloss renderings of bubbles, the status bar,
// the typing indicator and the context menu. Nothing mutates chat state.
//
// # Key Types
//
//   - MessageBubble: One rendered chat message with avatar and timestamp
//   - StatusBar: Language / intent / confidence line
//   - Formatter: Splits bot text into plain, link, e-mail, phone and order spans
//   - Menu: Rendered context menu with a selection cursor
//
// # Usage
//
//	bubble := components.NewMessageBubble(msg, theme)
//	bubble.SetWidth(80)
//	fmt.Println(bubble.View())
//
//	fmt.Println(components.ConfidenceLabel(status)) // "Confidence: 92.0%"
package components
