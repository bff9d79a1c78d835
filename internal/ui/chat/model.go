// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/supportchat/internal/app"
	"github.com/jeranaias/supportchat/internal/model"
	"github.com/jeranaias/supportchat/internal/ui/components"
	"github.com/jeranaias/supportchat/internal/ui/styles"
)

// Input placeholders.
const (
	InputPlaceholder     = "Type your message..."
	ListeningPlaceholder = "Listening..."

	// InputCharLimit matches the backend's message length limit.
	InputCharLimit = 500
)

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	ctx   context.Context
	app   *app.App
	theme *styles.Theme
	keys  KeyMap

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	header   *components.Header
	status   *components.StatusBar

	// messages mirrors the controller's log as rendered so far.
	messages  []model.Message
	typing    bool
	notice    string
	menu      *components.Menu
	listening bool

	width          int
	height         int
	showTimestamps bool
	quitting       bool

	// pending is set when a send is dispatched and cleared when it returns.
	pending bool
}

// New creates the chat model for a.
func New(ctx context.Context, a *app.App) Model {
	theme := a.Themes.Theme()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = InputPlaceholder
	ti.CharLimit = InputCharLimit
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = styles.TypingSpinner.Spinner()

	header := components.NewHeader(theme)
	header.Backend = a.BackendURL()

	status := components.NewStatusBar(theme)
	status.SetStatus(a.Controller.Status())

	return Model{
		ctx:            ctx,
		app:            a,
		theme:          theme,
		keys:           DefaultKeyMap(),
		viewport:       viewport.New(80, 20),
		input:          ti,
		spinner:        sp,
		header:         header,
		status:         status,
		messages:       a.Controller.Messages(),
		showTimestamps: a.Config.UI.ShowTimestamps,
	}
}

// ProgramOptions returns the Bubble Tea options the chat screen expects.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Messages returns the rendered transcript.
func (m Model) Messages() []model.Message {
	out := make([]model.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Typing reports whether the typing indicator is shown.
func (m Model) Typing() bool {
	return m.typing
}

// Notice returns the current inline notice.
func (m Model) Notice() string {
	return m.notice
}

// MenuOpen reports whether the context menu is shown.
func (m Model) MenuOpen() bool {
	return m.menu != nil
}

// InputValue returns the text in the input field.
func (m Model) InputValue() string {
	return m.input.Value()
}

// Listening reports whether a voice capture is running.
func (m Model) Listening() bool {
	return m.listening
}
