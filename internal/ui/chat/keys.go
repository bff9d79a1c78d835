// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/supportchat/internal/widget"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings that are not part of the widget's
// shortcut table: scrolling, quitting and menu navigation.
type KeyMap struct {
	PageUp     key.Binding
	PageDown   key.Binding
	Quit       key.Binding
	MenuUp     key.Binding
	MenuDown   key.Binding
	MenuSelect key.Binding
	MenuClose  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
		MenuUp: key.NewBinding(
			key.WithKeys("up", "k"),
		),
		MenuDown: key.NewBinding(
			key.WithKeys("down", "j"),
		),
		MenuSelect: key.NewBinding(
			key.WithKeys("enter"),
		),
		MenuClose: key.NewBinding(
			key.WithKeys("esc", "ctrl+o"),
		),
	}
}

// footerBindings returns the shortcut table with the quit key first, in the
// widget's shortcut format.
func (k KeyMap) footerBindings(shortcuts *widget.Shortcuts) []widget.Shortcut {
	h := k.Quit.Help()
	out := []widget.Shortcut{{Keys: []string{h.Key}, Help: h.Desc}}
	for _, s := range shortcuts.Bindings() {
		// Send is implied by the input field.
		if s.Action == widget.ActionSend {
			continue
		}
		out = append(out, s)
	}
	return out
}
