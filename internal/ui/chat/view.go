// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/supportchat/internal/ui/components"
)

// View renders the chat screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	parts := []string{m.header.View(), m.viewport.View()}
	if overlay := m.renderOverlay(); overlay != "" {
		parts = append(parts, overlay)
	}
	parts = append(parts, m.renderInput(), m.renderStatusBar(), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// refresh re-renders the transcript and fits the viewport between the fixed
// rows. Adaptive colors resolve at render time, so this also applies theme
// changes.
func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}

	reserved := lipgloss.Height(m.header.View()) +
		lipgloss.Height(m.renderInput()) +
		lipgloss.Height(m.renderStatusBar()) +
		lipgloss.Height(m.renderFooter())
	if overlay := m.renderOverlay(); overlay != "" {
		reserved += lipgloss.Height(overlay)
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-reserved, 1)

	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	blocks := make([]string, 0, len(m.messages)+1)
	for _, msg := range m.messages {
		b := components.NewMessageBubble(msg, m.theme)
		b.ShowTimestamp = m.showTimestamps
		b.SetWidth(m.width)
		blocks = append(blocks, b.View())
	}
	if m.typing {
		blocks = append(blocks, components.RenderTyping(m.theme, m.spinner.View()))
	}
	return strings.Join(blocks, "\n\n")
}

// renderOverlay renders the context menu, or the notice if there is one.
func (m Model) renderOverlay() string {
	if m.menu != nil {
		return m.menu.View()
	}
	if m.notice != "" {
		return m.theme.Notice.Width(max(m.width-2, 1)).Render(m.notice)
	}
	return ""
}

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(max(m.width-2, 1)).Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	extra := string(m.theme.Mode)
	if m.busy() {
		extra = "sending"
	}
	m.status.Extra = extra
	return m.status.View()
}

// renderFooter shows as many shortcuts as fit on one line.
func (m Model) renderFooter() string {
	bindings := m.keys.footerBindings(m.app.Shortcuts)
	for n := len(bindings); n > 0; n-- {
		help := components.ShortcutHelp(m.theme, bindings[:n])
		if lipgloss.Width(help) <= m.width {
			return help
		}
	}
	return ""
}
