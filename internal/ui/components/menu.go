// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/supportchat/internal/ui/styles"
	"github.com/jeranaias/supportchat/internal/widget"
)

// =============================================================================
// CONTEXT MENU COMPONENT
// =============================================================================

// Menu is the rendered context menu with a selection cursor.
type Menu struct {
	Items    []widget.MenuItem
	Selected int
	theme    *styles.Theme
}

// NewMenu creates a menu for items with the first entry selected.
func NewMenu(items []widget.MenuItem, theme *styles.Theme) *Menu {
	return &Menu{Items: items, theme: theme}
}

// Up moves the cursor up, wrapping around.
func (m *Menu) Up() {
	if len(m.Items) == 0 {
		return
	}
	m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
}

// Down moves the cursor down, wrapping around.
func (m *Menu) Down() {
	if len(m.Items) == 0 {
		return
	}
	m.Selected = (m.Selected + 1) % len(m.Items)
}

// View renders the menu box.
func (m *Menu) View() string {
	lines := make([]string, len(m.Items))
	for i, it := range m.Items {
		if i == m.Selected {
			lines[i] = m.theme.MenuSelected.Render("> " + it.Label)
		} else {
			lines[i] = m.theme.MenuItem.Render("  " + it.Label)
		}
	}
	return m.theme.MenuBox.Render(strings.Join(lines, "\n"))
}

// =============================================================================
// SHORTCUT HELP
// =============================================================================

// ShortcutHelp renders "key desc" pairs for the footer.
func ShortcutHelp(theme *styles.Theme, bindings []widget.Shortcut) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		parts = append(parts, theme.ShortcutKey.Render(b.Keys[0])+" "+theme.ShortcutDesc.Render(b.Help))
	}
	return strings.Join(parts, theme.ShortcutDesc.Render("  "))
}
