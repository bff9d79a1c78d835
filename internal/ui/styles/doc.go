// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the supportchat TUI and
REPL.

All colors use Lip Gloss AdaptiveColor. The active Mode (light or dark) is
pushed into Lip Gloss with SetHasDarkBackground, so toggling the theme flips
every adaptive color at once without rebuilding styles.

# Color System (colors.go)

  - Purple - Brand accent, bot avatar, selections
  - Cyan - User highlights, prompts, shortcut keys
  - Emerald - Success messages, high confidence
  - Amber - Medium confidence, notices
  - Rose - Errors, low confidence

Message bubbles use semantic tokens (UserBubbleBg, BotBubbleBg, ErrorBubbleBg,
SuccessBubbleBg and their foregrounds).

# Theme System (theme.go)

	theme := styles.NewTheme(styles.DetectMode())
	theme.Toggle()             // light <-> dark
	theme.Confidence(band)     // high / medium / low style

# Animation (animations.go)

	TypingSpinner.Spinner()    // bubbles spinner for the typing indicator
*/
package styles
