// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jeranaias/supportchat/internal/ui/styles"
)

// =============================================================================
// MESSAGE FORMATTER
// =============================================================================

// SpanKind classifies a piece of bot text.
type SpanKind int

const (
	SpanPlain SpanKind = iota
	SpanLink
	SpanEmail
	SpanPhone
	SpanOrder
)

// Span is a contiguous piece of text of one kind.
type Span struct {
	Text string
	Kind SpanKind
}

// Patterns, in priority order: earlier kinds win on overlap.
var spanPatterns = []struct {
	kind SpanKind
	re   *regexp.Regexp
}{
	{SpanLink, regexp.MustCompile(`https?://[^\s]+`)},
	{SpanEmail, regexp.MustCompile(`[a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+\.[a-zA-Z0-9_-]+`)},
	{SpanPhone, regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)},
	{SpanOrder, regexp.MustCompile(`#[A-Z0-9]{6,}`)},
}

// Split breaks text into spans. Adjacent plain text is merged.
func Split(text string) []Span {
	type match struct {
		start, end int
		kind       SpanKind
	}
	var matches []match
	for _, p := range spanPatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			matches = append(matches, match{loc[0], loc[1], p.kind})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].start != matches[j].start {
			return matches[i].start < matches[j].start
		}
		return matches[i].kind < matches[j].kind
	})

	var spans []Span
	pos := 0
	for _, m := range matches {
		if m.start < pos {
			continue
		}
		if m.start > pos {
			spans = append(spans, Span{Text: text[pos:m.start], Kind: SpanPlain})
		}
		spans = append(spans, Span{Text: text[m.start:m.end], Kind: m.kind})
		pos = m.end
	}
	if pos < len(text) {
		spans = append(spans, Span{Text: text[pos:], Kind: SpanPlain})
	}
	return spans
}

// Formatter renders bot text with highlighted spans.
type Formatter struct {
	theme *styles.Theme
}

// NewFormatter creates a formatter using theme's highlight styles.
func NewFormatter(theme *styles.Theme) *Formatter {
	return &Formatter{theme: theme}
}

// Format returns text with links, e-mails, phones and order numbers styled.
func (f *Formatter) Format(text string) string {
	var b strings.Builder
	for _, s := range Split(text) {
		switch s.Kind {
		case SpanLink, SpanEmail, SpanPhone:
			b.WriteString(f.theme.Link.Render(s.Text))
		case SpanOrder:
			b.WriteString(f.theme.OrderNumber.Render(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// Markdown returns text with links, e-mails and phones as markdown links and
// order numbers in bold, for the glamour renderer.
func Markdown(text string) string {
	var b strings.Builder
	for _, s := range Split(text) {
		switch s.Kind {
		case SpanLink:
			b.WriteString("<" + s.Text + ">")
		case SpanEmail:
			b.WriteString("[" + s.Text + "](mailto:" + s.Text + ")")
		case SpanPhone:
			b.WriteString("[" + s.Text + "](tel:" + strings.Map(phoneDigits, s.Text) + ")")
		case SpanOrder:
			b.WriteString("**" + s.Text + "**")
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func phoneDigits(r rune) rune {
	if r == '+' || (r >= '0' && r <= '9') {
		return r
	}
	return -1
}
