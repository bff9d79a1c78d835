// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/supportchat/internal/analytics"
)

// =============================================================================
// MODE
// =============================================================================

// Mode is the light/dark theme selection.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode parses "light" or "dark" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	}
	return "", fmt.Errorf("invalid theme %q (want light or dark)", s)
}

// DetectMode follows the terminal background.
func DetectMode() Mode {
	if termenv.HasDarkBackground() {
		return ModeDark
	}
	return ModeLight
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// =============================================================================
// THEME
// =============================================================================

// Theme holds all the styled components for the application.
type Theme struct {
	Mode         Mode
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble    lipgloss.Style
	BotBubble     lipgloss.Style
	ErrorBubble   lipgloss.Style
	SuccessBubble lipgloss.Style
	UserAvatar    lipgloss.Style
	BotAvatar     lipgloss.Style
	Timestamp     lipgloss.Style
	Typing        lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	StatusBar         lipgloss.Style
	StatusLabel       lipgloss.Style
	StatusSeparator   lipgloss.Style
	ConfidenceHigh    lipgloss.Style
	ConfidenceMedium  lipgloss.Style
	ConfidenceLow     lipgloss.Style
	SentimentPositive lipgloss.Style
	SentimentNeutral  lipgloss.Style
	SentimentNegative lipgloss.Style

	// ==========================================================================
	// INPUT / OVERLAY STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	Notice         lipgloss.Style
	MenuBox        lipgloss.Style
	MenuItem       lipgloss.Style
	MenuSelected   lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style

	// ==========================================================================
	// TEXT HIGHLIGHTS
	// ==========================================================================

	Link        lipgloss.Style
	OrderNumber lipgloss.Style
}

// NewTheme creates a theme in the given mode. An empty mode follows the
// terminal background.
func NewTheme(mode Mode) *Theme {
	if mode == "" {
		mode = DetectMode()
	}
	t := &Theme{ColorProfile: termenv.ColorProfile()}
	t.initStyles()
	t.SetMode(mode)
	return t
}

// SetMode switches light/dark. Adaptive colors resolve against the new mode
// on the next render.
func (t *Theme) SetMode(mode Mode) {
	t.Mode = mode
	lipgloss.SetHasDarkBackground(mode == ModeDark)
}

// Toggle flips the mode and returns the new one.
func (t *Theme) Toggle() Mode {
	t.SetMode(t.Mode.Opposite())
	return t.Mode
}

// IsDark returns true in dark mode.
func (t *Theme) IsDark() bool {
	return t.Mode == ModeDark
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// Confidence returns the style for a confidence band.
func (t *Theme) Confidence(band analytics.Band) lipgloss.Style {
	switch band {
	case analytics.BandHigh:
		return t.ConfidenceHigh
	case analytics.BandMedium:
		return t.ConfidenceMedium
	case analytics.BandLow:
		return t.ConfidenceLow
	default:
		return t.StatusLabel
	}
}

// Sentiment returns the style for a sentiment label.
func (t *Theme) Sentiment(s string) lipgloss.Style {
	switch s {
	case "positive":
		return t.SentimentPositive
	case "negative":
		return t.SentimentNegative
	default:
		return t.SentimentNeutral
	}
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		Background(BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 2)

	t.ErrorBubble = t.BotBubble.
		Foreground(ErrorBubbleFg).
		Background(ErrorBubbleBg).
		BorderForeground(Rose)

	t.SuccessBubble = t.BotBubble.
		Foreground(SuccessBubbleFg).
		Background(SuccessBubbleBg).
		BorderForeground(Emerald)

	t.UserAvatar = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan).
		Bold(true).
		Padding(0, 1)

	t.BotAvatar = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Typing = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StatusSeparator = lipgloss.NewStyle().
		Foreground(Overlay)

	t.ConfidenceHigh = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ConfidenceMedium = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.ConfidenceLow = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.SentimentPositive = lipgloss.NewStyle().Foreground(Emerald)
	t.SentimentNeutral = lipgloss.NewStyle().Foreground(TextMuted)
	t.SentimentNegative = lipgloss.NewStyle().Foreground(Rose)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Notice = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	// Context menu
	t.MenuBox = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.MenuItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.MenuSelected = lipgloss.NewStyle().
		Background(SelectionBg).
		Foreground(TextPrimary).
		Bold(true).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Highlights
	t.Link = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)

	t.OrderNumber = lipgloss.NewStyle().
		Foreground(OrderColor).
		Bold(true)
}
