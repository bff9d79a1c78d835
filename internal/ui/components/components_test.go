// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/supportchat/internal/model"
	"github.com/jeranaias/supportchat/internal/ui/styles"
	"github.com/jeranaias/supportchat/internal/widget"
)

func testTheme(t *testing.T) *styles.Theme {
	t.Helper()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(false) })
	return styles.NewTheme(styles.ModeLight)
}

// =============================================================================
// LABEL TESTS
// =============================================================================

func TestLanguageName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"en", "English"},
		{"es", "Spanish"},
		{"fr", "French"},
		{"de", "German"},
		{"hi", "Hindi"},
		{"zh", "Chinese"},
		{"ja", "Japanese"},
		{"ar", "Arabic"},
		{"pt", "pt"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, LanguageName(tc.code), "code %q", tc.code)
	}
}

func TestFormatConfidence(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.92, "92.0%"},
		{0.8, "80.0%"},
		{0.125, "12.5%"},
		{1, "100.0%"},
		{0, "0.0%"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatConfidence(tc.in))
	}
}

func TestStatusLabels(t *testing.T) {
	placeholder := widget.Status{}
	assert.Equal(t, "Language: Auto-detect", LanguageLabel(placeholder))
	assert.Equal(t, "Intent: -", IntentLabel(placeholder))
	assert.Equal(t, "Confidence: -", ConfidenceLabel(placeholder))

	override := widget.Status{Language: "de"}
	assert.Equal(t, "Language: German", LanguageLabel(override))

	scenario := widget.Status{Language: "en", Set: true, Intent: "order_status", Confidence: 0.92}
	assert.Equal(t, "Language: English", LanguageLabel(scenario))
	assert.Equal(t, "Intent: order_status", IntentLabel(scenario))
	assert.Equal(t, "Confidence: 92.0%", ConfidenceLabel(scenario))

	scenario.Sentiment = model.SentimentPositive
	assert.Equal(t, "Intent: order_status (positive)", IntentLabel(scenario))
}

func TestStatusBar_Plain(t *testing.T) {
	bar := NewStatusBar(testTheme(t))
	bar.SetStatus(widget.Status{Language: "xx", Set: true, Intent: "billing", Confidence: 0.3})
	assert.Equal(t, "Language: xx | Intent: billing | Confidence: 30.0%", bar.Plain())

	bar.SetWidth(120)
	bar.Extra = "light"
	view := bar.View()
	assert.Contains(t, view, "Confidence: 30.0%")
	assert.Contains(t, view, "light")
}

// =============================================================================
// FORMATTER TESTS
// =============================================================================

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{
			name: "plain",
			in:   "hello there",
			want: []Span{{Text: "hello there", Kind: SpanPlain}},
		},
		{
			name: "order number",
			in:   "Where is my order #AB1234?",
			want: []Span{
				{Text: "Where is my order ", Kind: SpanPlain},
				{Text: "#AB1234", Kind: SpanOrder},
				{Text: "?", Kind: SpanPlain},
			},
		},
		{
			name: "short order is plain",
			in:   "ticket #AB12",
			want: []Span{{Text: "ticket #AB12", Kind: SpanPlain}},
		},
		{
			name: "link and email",
			in:   "See https://example.com/help or mail support@example.com",
			want: []Span{
				{Text: "See ", Kind: SpanPlain},
				{Text: "https://example.com/help", Kind: SpanLink},
				{Text: " or mail ", Kind: SpanPlain},
				{Text: "support@example.com", Kind: SpanEmail},
			},
		},
		{
			name: "phone",
			in:   "Call (555) 123-4567 now",
			want: []Span{
				{Text: "Call ", Kind: SpanPlain},
				{Text: "(555) 123-4567", Kind: SpanPhone},
				{Text: " now", Kind: SpanPlain},
			},
		},
		{
			name: "digits inside link stay in link",
			in:   "https://shop.example.com/orders/5551234567",
			want: []Span{{Text: "https://shop.example.com/orders/5551234567", Kind: SpanLink}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Split(tc.in))
		})
	}
}

func TestMarkdown(t *testing.T) {
	got := Markdown("Order #ZX99887 ships; call +1 555-123-4567 or mail a@b.io")
	assert.Contains(t, got, "**#ZX99887**")
	assert.Contains(t, got, "(tel:+15551234567)")
	assert.Contains(t, got, "[a@b.io](mailto:a@b.io)")
}

func TestFormatter_KeepsText(t *testing.T) {
	f := NewFormatter(testTheme(t))
	out := f.Format("Order #AB1234 at https://x.io")
	assert.Contains(t, out, "#AB1234")
	assert.Contains(t, out, "https://x.io")
}

// =============================================================================
// BUBBLE / MENU TESTS
// =============================================================================

func TestMessageBubble_View(t *testing.T) {
	theme := testTheme(t)

	user := NewMessageBubble(model.NewUserMessage("Where is my order?"), theme)
	user.SetWidth(60)
	view := user.View()
	assert.Contains(t, view, "Where is my order?")
	assert.Contains(t, view, "U")
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 60)
	}

	bot := NewMessageBubble(model.NewBotMessage(widget.TransportErrorText, model.TypeError), theme)
	bot.ShowTimestamp = false
	assert.Contains(t, bot.View(), "trouble connecting")
}

func TestAvatar(t *testing.T) {
	assert.Equal(t, "U", Avatar(model.SenderUser))
	assert.Equal(t, "B", Avatar(model.SenderBot))
}

func TestMenu_Navigation(t *testing.T) {
	menu := NewMenu(widget.NewContextMenu().Items(), testTheme(t))
	require.Len(t, menu.Items, 3)

	menu.Up()
	assert.Equal(t, 2, menu.Selected)
	menu.Down()
	menu.Down()
	assert.Equal(t, 1, menu.Selected)
	assert.Contains(t, menu.View(), "> Export Conversation")
}

func TestShortcutHelp(t *testing.T) {
	out := ShortcutHelp(testTheme(t), widget.DefaultShortcuts())
	assert.Contains(t, out, "ctrl+l")
	assert.Contains(t, out, "clear")
}

func TestTypingAndHeader(t *testing.T) {
	theme := testTheme(t)
	assert.Contains(t, RenderTyping(theme, "..."), "Bot is typing...")

	h := NewHeader(theme)
	h.Backend = "http://127.0.0.1:5000"
	h.SetWidth(100)
	view := h.View()
	assert.Contains(t, view, DefaultTitle)
	assert.Contains(t, view, "light")
}
