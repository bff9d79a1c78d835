// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/supportchat/internal/app"
	"github.com/jeranaias/supportchat/internal/model"
	"github.com/jeranaias/supportchat/internal/ui/components"
	"github.com/jeranaias/supportchat/internal/widget"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.header.SetWidth(msg.Width)
		m.status.SetWidth(msg.Width)
		m.input.Width = max(msg.Width-8, 10)
		m.refresh()
		return m, nil

	case tea.FocusMsg:
		if f := m.app.Caps.Focus; f != nil {
			f.Set(true)
		}
		return m, nil

	case tea.BlurMsg:
		if f := m.app.Caps.Focus; f != nil {
			f.Set(false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	// Renderer messages from the controller.
	case AppendMsg:
		m.messages = append(m.messages, msg.Message)
		if msg.Message.IsUser() {
			m.notice = ""
		}
		m.refresh()
		return m, nil

	case TypingMsg:
		m.typing = msg.Visible
		m.refresh()
		if m.typing {
			return m, m.spinner.Tick
		}
		return m, nil

	case StatusMsg:
		m.status.SetStatus(msg.Status)
		return m, nil

	case ResetMsg:
		m.messages = []model.Message{msg.Welcome}
		m.status.SetStatus(msg.Status)
		m.notice = ""
		m.refresh()
		return m, nil

	case NoticeMsg:
		m.notice = msg.Text
		m.refresh()
		return m, nil

	case TranscriptMsg:
		m.setTranscript(msg.Text)
		return m, nil

	case voiceResultMsg:
		m.listening = false
		m.input.Placeholder = InputPlaceholder
		if msg.Err != nil {
			m.notice = app.NoticeForError(widget.ActionVoice, msg.Err)
			m.refresh()
			return m, nil
		}
		m.setTranscript(msg.Text)
		return m, nil

	case spinner.TickMsg:
		if !m.typing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case exchangeDoneMsg:
		m.pending = false
		// Refused by the controller: give the text back unless the user has
		// started typing something else.
		if !msg.Sent && m.input.Value() == "" {
			m.setTranscript(msg.Text)
		}
		return m, nil

	case actionDoneMsg:
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu != nil {
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if sc, ok := m.app.Shortcuts.Lookup(msg.String()); ok {
		return m.dispatch(sc.Action)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.MenuClose):
		m.menu = nil
	case key.Matches(msg, m.keys.MenuUp):
		m.menu.Up()
	case key.Matches(msg, m.keys.MenuDown):
		m.menu.Down()
	case key.Matches(msg, m.keys.MenuSelect):
		i := m.menu.Selected
		item := m.menu.Items[i]
		m.menu = nil
		m.refresh()
		ctx, menu, a := m.ctx, m.app.Menu, m.app
		return m, func() tea.Msg {
			err := menu.Select(ctx, i)
			if err != nil {
				a.Controller.Notice(app.NoticeForError(item.Action, err))
			}
			return actionDoneMsg{Action: item.Action, Err: err}
		}
	}
	m.refresh()
	return m, nil
}

// dispatch runs the action bound to a shortcut.
func (m Model) dispatch(action string) (tea.Model, tea.Cmd) {
	switch action {
	case widget.ActionSend:
		return m.submit()

	case widget.ActionMenu:
		m.menu = components.NewMenu(m.app.Menu.Items(), m.theme)
		m.refresh()
		return m, nil

	case widget.ActionTheme:
		// Toggled here rather than in a command: styles are read while
		// rendering on this goroutine.
		mode, err := m.app.Themes.Toggle()
		m.notice = "Theme: " + string(mode)
		if err != nil {
			m.notice = app.NoticeForError(widget.ActionTheme, err)
		}
		m.refresh()
		return m, nil

	case widget.ActionVoice:
		if m.listening {
			return m, nil
		}
		m.listening = true
		m.input.Placeholder = ListeningPlaceholder
		ctx, a := m.ctx, m.app
		return m, func() tea.Msg {
			text, err := a.Listen(ctx)
			return voiceResultMsg{Text: text, Err: err}
		}
	}
	return m, m.runAction(action)
}

// runAction runs a registry action off the UI goroutine.
func (m Model) runAction(name string, args ...string) tea.Cmd {
	ctx, a := m.ctx, m.app
	return func() tea.Msg {
		return actionDoneMsg{Action: name, Err: a.RunAction(ctx, name, args...)}
	}
}

// submit sends the input, or runs it as a slash command.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	if name, args, ok := widget.ParseSlash(text); ok {
		m.input.Reset()
		if name == widget.ActionTheme || name == widget.ActionVoice || name == widget.ActionMenu {
			return m.dispatch(name)
		}
		if name == widget.ActionQuit || name == "q" || name == "exit" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.runAction(name, args...)
	}

	// A send while waiting is a no-op; the text stays in the input.
	if m.busy() {
		return m, nil
	}
	m.pending = true
	m.input.Reset()
	ctx, ctrl := m.ctx, m.app.Controller
	return m, func() tea.Msg {
		return exchangeDoneMsg{Text: text, Sent: ctrl.Submit(ctx, text)}
	}
}

// busy reports whether a send is queued or in flight.
func (m Model) busy() bool {
	return m.pending || m.app.Controller.InFlight()
}

func (m *Model) setTranscript(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
}
