// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/supportchat/internal/ui/styles"
	"github.com/jeranaias/supportchat/internal/util"
	"github.com/jeranaias/supportchat/internal/widget"
)

// Unset is shown for status fields no exchange has filled yet.
const Unset = "-"

// =============================================================================
// LABELS
// =============================================================================

// FormatConfidence renders a [0, 1] score as a percentage with one decimal.
func FormatConfidence(confidence float64) string {
	return fmt.Sprintf("%.1f%%", confidence*100)
}

// LanguageLabel returns "Language: <name>" or "Language: Auto-detect".
func LanguageLabel(s widget.Status) string {
	if s.AutoDetect() {
		return "Language: Auto-detect"
	}
	return "Language: " + LanguageName(s.Language)
}

// IntentLabel returns "Intent: <intent>" with the sentiment in parentheses
// when the backend reported one.
func IntentLabel(s widget.Status) string {
	if !s.Set {
		return "Intent: " + Unset
	}
	label := "Intent: " + s.Intent
	if s.Sentiment != "" {
		label += " (" + string(s.Sentiment) + ")"
	}
	return label
}

// ConfidenceLabel returns "Confidence: <pct>" or the placeholder.
func ConfidenceLabel(s widget.Status) string {
	if !s.Set {
		return "Confidence: " + Unset
	}
	return "Confidence: " + FormatConfidence(s.Confidence)
}

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar renders the live status fields on one line.
type StatusBar struct {
	Status widget.Status
	Width  int
	Extra  string // right-aligned hint, e.g. theme or in-flight marker
	theme  *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme, Width: 80}
}

// SetStatus replaces the displayed status.
func (b *StatusBar) SetStatus(s widget.Status) {
	b.Status = s
}

// SetWidth sets the rendered width.
func (b *StatusBar) SetWidth(width int) {
	b.Width = width
}

// Plain renders the bar without styling.
func (b *StatusBar) Plain() string {
	return strings.Join([]string{
		LanguageLabel(b.Status),
		IntentLabel(b.Status),
		ConfidenceLabel(b.Status),
	}, " | ")
}

// View renders the styled bar.
func (b *StatusBar) View() string {
	t := b.theme
	sep := t.StatusSeparator.Render(" | ")

	intent := IntentLabel(b.Status)
	budget := b.Width - util.Width(LanguageLabel(b.Status)) - util.Width(ConfidenceLabel(b.Status)) -
		util.Width(b.Extra) - 10
	if budget > 0 && util.Width(intent) > budget {
		intent = util.Truncate(intent, budget)
	}

	var intentView string
	if b.Status.Set && b.Status.Sentiment != "" && strings.HasSuffix(intent, ")") {
		base := strings.TrimSuffix(intent, " ("+string(b.Status.Sentiment)+")")
		intentView = t.StatusLabel.Render(base) + " " +
			t.Sentiment(string(b.Status.Sentiment)).Render("("+string(b.Status.Sentiment)+")")
	} else {
		intentView = t.StatusLabel.Render(intent)
	}

	left := t.StatusLabel.Render(LanguageLabel(b.Status)) + sep +
		intentView + sep +
		t.Confidence(b.Status.Band()).Render(ConfidenceLabel(b.Status))

	if b.Extra != "" {
		gap := b.Width - lipgloss.Width(left) - util.Width(b.Extra) - 2
		if gap > 0 {
			left += strings.Repeat(" ", gap) + t.ShortcutDesc.Render(b.Extra)
		}
	}
	return t.StatusBar.Width(b.Width).Render(left)
}
