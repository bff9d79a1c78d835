// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/supportchat/internal/model"
	"github.com/jeranaias/supportchat/internal/ui/components"
	"github.com/jeranaias/supportchat/internal/ui/styles"
	"github.com/jeranaias/supportchat/internal/widget"
)

// TypingText is shown while a reply is pending.
const TypingText = "Support is typing..."

// RendererOptions configures a Renderer.
type RendererOptions struct {
	// Interactive enables colors, the typing line and markdown rendering.
	Interactive bool

	// Timestamps prefixes bot lines with the message time.
	Timestamps bool

	// Width is the markdown wrap width. Zero uses DefaultTerminalWidth.
	Width int
}

// Renderer is a widget.Renderer that writes the conversation as lines.
// In interactive mode the user's own lines are already on screen, so only
// bot output is printed.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	term   *termenv.Output
	lg     *lipgloss.Renderer
	theme  *styles.Theme
	status *components.StatusBar
	opts   RendererOptions

	md     *glamour.TermRenderer
	mdMode styles.Mode
	typing bool
}

var _ widget.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, theme *styles.Theme, opts RendererOptions) *Renderer {
	if opts.Width <= 0 {
		opts.Width = DefaultTerminalWidth
	}
	profile := termenv.Ascii
	if opts.Interactive {
		profile = GetColorProfile()
	}
	lg := lipgloss.NewRenderer(out, termenv.WithProfile(profile))
	lg.SetColorProfile(profile)
	return &Renderer{
		out:    out,
		term:   termenv.NewOutput(out, termenv.WithProfile(profile)),
		lg:     lg,
		theme:  theme,
		status: components.NewStatusBar(theme),
		opts:   opts,
	}
}

// SetTheme switches the theme used for colors and markdown.
func (r *Renderer) SetTheme(theme *styles.Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.status.Status
	r.theme = theme
	r.status = components.NewStatusBar(theme)
	r.status.SetStatus(prev)
}

// =============================================================================
// STYLES
// =============================================================================

func (r *Renderer) style(fg lipgloss.AdaptiveColor) lipgloss.Style {
	r.lg.SetHasDarkBackground(r.theme.IsDark())
	return r.lg.NewStyle().Foreground(fg)
}

func (r *Renderer) label(sender model.Sender) string {
	color := styles.Purple
	if sender == model.SenderUser {
		color = styles.Cyan
	}
	return r.style(color).Bold(true).Render(sender.DisplayName() + ":")
}

// markdown renders bot text in interactive mode. Failures fall back to the
// plain text.
func (r *Renderer) markdown(text string) string {
	if !r.opts.Interactive {
		return text
	}
	if r.md == nil || r.mdMode != r.theme.Mode {
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(string(r.theme.Mode)),
			glamour.WithWordWrap(r.opts.Width),
		)
		if err != nil {
			return text
		}
		r.md, r.mdMode = md, r.theme.Mode
	}
	out, err := r.md.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// =============================================================================
// widget.Renderer
// =============================================================================

// AppendMessage prints one message.
func (r *Renderer) AppendMessage(msg model.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if msg.IsUser() && r.opts.Interactive {
		return
	}
	r.clearTyping()

	prefix := r.label(msg.Sender)
	if r.opts.Timestamps {
		prefix = r.style(styles.TextMuted).Render("["+msg.FormatTime()+"]") + " " + prefix
	}

	var body string
	switch {
	case msg.IsError():
		body = r.style(styles.Rose).Render(msg.Text)
	case msg.IsBot():
		body = r.markdown(msg.Text)
	default:
		body = msg.Text
	}

	if strings.Contains(body, "\n") {
		fmt.Fprintf(r.out, "%s\n%s\n", prefix, body)
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", prefix, body)
}

// ShowTyping prints the typing line in interactive mode.
func (r *Renderer) ShowTyping() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.opts.Interactive || r.typing {
		return
	}
	r.typing = true
	fmt.Fprint(r.out, r.style(styles.TextMuted).Italic(true).Render(TypingText))
}

// HideTyping erases the typing line.
func (r *Renderer) HideTyping() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearTyping()
}

func (r *Renderer) clearTyping() {
	if !r.typing {
		return
	}
	r.typing = false
	r.term.ClearLine()
	fmt.Fprint(r.out, "\r")
}

// UpdateStatus prints the status fields when they changed.
func (r *Renderer) UpdateStatus(s widget.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s == r.status.Status {
		return
	}
	r.status.SetStatus(s)
	fmt.Fprintln(r.out, "  "+r.style(styles.TextSecondary).Render("["+r.status.Plain()+"]"))
}

// Reset reprints the welcome message after a clear.
func (r *Renderer) Reset(welcome model.Message, s widget.Status) {
	r.mu.Lock()
	r.clearTyping()
	r.status.SetStatus(s)
	fmt.Fprintln(r.out, r.style(styles.Amber).Render("Conversation cleared."))
	r.mu.Unlock()

	r.AppendMessage(welcome)
}

// Notice prints an inline notice.
func (r *Renderer) Notice(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearTyping()
	fmt.Fprintln(r.out, r.style(styles.Amber).Render(text))
}
