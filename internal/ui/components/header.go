// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/supportchat/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// DefaultTitle is the header title.
const DefaultTitle = "Multilingual Customer Support"

// Header is the title bar: brand on the left, backend and theme on the right.
type Header struct {
	Title   string
	Backend string
	Width   int
	theme   *styles.Theme
}

// NewHeader creates a header with the default title.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Title: DefaultTitle, Width: 80, theme: theme}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header.
func (h *Header) View() string {
	t := h.theme
	brand := t.HeaderTitle.Render(h.Title)

	var right []string
	if h.Backend != "" {
		right = append(right, h.Backend)
	}
	right = append(right, string(t.Mode))
	info := t.HeaderSubtitle.Render(strings.Join(right, "  "))

	// Header padding takes four columns.
	gap := h.Width - 4 - lipgloss.Width(brand) - lipgloss.Width(info)
	if gap < 1 {
		return t.Header.Width(h.Width).Render(brand)
	}
	return t.Header.Width(h.Width).Render(brand + strings.Repeat(" ", gap) + info)
}
