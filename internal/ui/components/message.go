// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/supportchat/internal/model"
	"github.com/jeranaias/supportchat/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one chat message.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool
	theme         *styles.Theme
	formatter     *Formatter
}

// NewMessageBubble creates a bubble for msg.
func NewMessageBubble(msg model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
		formatter:     NewFormatter(theme),
	}
}

// SetWidth sets the available width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// Avatar returns the one-letter avatar for the sender.
func Avatar(sender model.Sender) string {
	if sender == model.SenderUser {
		return "U"
	}
	return "B"
}

// bubbleStyle picks the style for the message's sender and display type.
func (b *MessageBubble) bubbleStyle() lipgloss.Style {
	switch {
	case b.Message.IsUser():
		return b.theme.UserBubble
	case b.Message.Type == model.TypeError:
		return b.theme.ErrorBubble
	case b.Message.Type == model.TypeSuccess:
		return b.theme.SuccessBubble
	default:
		return b.theme.BotBubble
	}
}

// View renders the bubble. User messages are right-aligned.
func (b *MessageBubble) View() string {
	maxBubble := b.Width * 3 / 4
	if maxBubble < 20 {
		maxBubble = b.Width
	}

	text := b.Message.Text
	if b.Message.IsBot() && b.Message.Type == model.TypeNormal {
		text = b.formatter.Format(text)
	}

	style := b.bubbleStyle()
	// Padding takes four columns and the border two more.
	inner := maxBubble - 6
	if lipgloss.Width(text) < inner {
		inner = lipgloss.Width(text)
	}
	if inner < 1 {
		inner = 1
	}
	bubble := style.Width(inner + 4).Render(text)

	var avatar string
	if b.Message.IsUser() {
		avatar = b.theme.UserAvatar.Render(Avatar(b.Message.Sender))
	} else {
		avatar = b.theme.BotAvatar.Render(Avatar(b.Message.Sender))
	}

	var row string
	if b.Message.IsUser() {
		row = lipgloss.JoinHorizontal(lipgloss.Top, bubble, " ", avatar)
	} else {
		row = lipgloss.JoinHorizontal(lipgloss.Top, avatar, " ", bubble)
	}

	if b.ShowTimestamp {
		ts := b.theme.Timestamp.Render(b.Message.FormatTime())
		align := lipgloss.Left
		if b.Message.IsUser() {
			align = lipgloss.Right
		}
		row = lipgloss.JoinVertical(align, row, ts)
	}

	if b.Message.IsUser() {
		return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, row)
	}
	return row
}
