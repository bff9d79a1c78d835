// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/supportchat/internal/model"
	"github.com/jeranaias/supportchat/internal/ui/styles"
)

// TypingText is the label of the ephemeral typing bubble.
const TypingText = "Bot is typing"

// RenderTyping renders the typing bubble with the current spinner frame.
func RenderTyping(theme *styles.Theme, frame string) string {
	avatar := theme.BotAvatar.Render(Avatar(model.SenderBot))
	return lipgloss.JoinHorizontal(lipgloss.Top, avatar, " ", theme.Typing.Render(TypingText+frame))
}
