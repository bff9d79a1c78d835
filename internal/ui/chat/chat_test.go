// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeranaias/supportchat/internal/app"
	"github.com/jeranaias/supportchat/internal/capability"
	"github.com/jeranaias/supportchat/internal/config"
	"github.com/jeranaias/supportchat/internal/model"
	"github.com/jeranaias/supportchat/internal/storage"
)

// =============================================================================
// FIXTURES
// =============================================================================

type fakeTransport struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeTransport) Send(_ context.Context, text, _ string) (*model.ExchangeResult, error) {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()
	return &model.ExchangeResult{
		Response:   "Your order ships tomorrow.",
		Language:   "en",
		Intent:     "order_status",
		Confidence: 0.92,
	}, nil
}

func (f *fakeTransport) Retrain(context.Context) (*model.RetrainResult, error) {
	return &model.RetrainResult{Message: "Model trained successfully"}, nil
}

type harness struct {
	model     Model
	transport *fakeTransport
	focus     *capability.Focus

	mu      sync.Mutex
	pending []tea.Msg
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{transport: &fakeTransport{}, focus: capability.NewFocus()}

	bridge := NewBridge()
	bridge.AttachFunc(func(msg tea.Msg) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.pending = append(h.pending, msg)
	})

	voice := capability.NewVoiceWith("listen", []string{"--lang", capability.LocalePlaceholder},
		func(_ context.Context, _ string, _ ...string) ([]byte, error) {
			return []byte("where is my order\n"), nil
		})

	cfg := config.Default()
	cfg.UI.Theme = "dark"
	cfg.Export.Dir = t.TempDir()
	cfg.Export.TimestampNames = false

	a, err := app.New(cfg, app.Options{
		Renderer:  bridge,
		Logger:    zap.NewNop(),
		Transport: h.transport,
		Prefs:     storage.NewMemoryPrefs(),
		Caps: &capability.Set{
			Voice: voice,
			Focus: h.focus,
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	h.model = New(context.Background(), a)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return h
}

// send delivers msg and returns the resulting command.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

// run executes cmd and feeds its result plus every bridged message back in.
func (h *harness) run(cmd tea.Cmd) {
	if cmd != nil {
		if msg := cmd(); msg != nil {
			h.send(msg)
		}
	}
	h.mu.Lock()
	pending := h.pending
	h.pending = nil
	h.mu.Unlock()
	for _, msg := range pending {
		h.send(msg)
	}
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// =============================================================================
// TESTS
// =============================================================================

func TestModel_InitialView(t *testing.T) {
	h := newHarness(t)

	require.Len(t, h.model.Messages(), 1)
	assert.True(t, h.model.Messages()[0].IsBot())

	view := h.model.View()
	assert.Contains(t, view, "Language: Auto-detect")
	assert.Contains(t, view, "Confidence: -")
}

func TestModel_SubmitExchange(t *testing.T) {
	h := newHarness(t)

	h.typeText("where is my order")
	assert.Equal(t, "where is my order", h.model.InputValue())

	h.run(h.send(tea.KeyMsg{Type: tea.KeyEnter}))

	assert.Empty(t, h.model.InputValue())
	assert.Equal(t, []string{"where is my order"}, h.transport.texts)

	msgs := h.model.Messages()
	require.Len(t, msgs, 3)
	assert.True(t, msgs[1].IsUser())
	assert.Equal(t, "Your order ships tomorrow.", msgs[2].Text)
	assert.False(t, h.model.Typing())
	assert.Contains(t, h.model.View(), "Intent: order_status")
}

func TestModel_SecondSubmitBeforeFirstRuns(t *testing.T) {
	h := newHarness(t)

	h.typeText("first")
	first := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)

	// The first send has not reached the controller yet.
	h.typeText("second")
	assert.Nil(t, h.send(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, "second", h.model.InputValue())

	h.run(first)
	assert.Equal(t, []string{"first"}, h.transport.texts)
	assert.Equal(t, "second", h.model.InputValue())

	h.run(h.send(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, []string{"first", "second"}, h.transport.texts)
	assert.Empty(t, h.model.InputValue())
}

func TestModel_RefusedSubmitRestoresInput(t *testing.T) {
	h := newHarness(t)

	h.send(exchangeDoneMsg{Text: "where is my order", Sent: false})
	assert.Equal(t, "where is my order", h.model.InputValue())

	h.typeText(" now")
	h.send(exchangeDoneMsg{Text: "other", Sent: false})
	assert.Equal(t, "where is my order now", h.model.InputValue())
}

func TestModel_BlankSubmitIgnored(t *testing.T) {
	h := newHarness(t)

	h.typeText("   ")
	assert.Nil(t, h.send(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Empty(t, h.transport.texts)
	assert.Len(t, h.model.Messages(), 1)
}

func TestModel_ContextMenu(t *testing.T) {
	h := newHarness(t)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlO})
	require.True(t, h.model.MenuOpen())
	assert.Contains(t, h.model.View(), "Clear Chat")

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, h.model.MenuOpen())
}

func TestModel_ContextMenuClear(t *testing.T) {
	h := newHarness(t)

	h.typeText("hello")
	h.run(h.send(tea.KeyMsg{Type: tea.KeyEnter}))
	require.Len(t, h.model.Messages(), 3)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlO})
	// Clear Chat is the first entry.
	h.run(h.send(tea.KeyMsg{Type: tea.KeyEnter}))

	assert.False(t, h.model.MenuOpen())
	assert.Len(t, h.model.Messages(), 1)
	assert.Contains(t, h.model.View(), "Confidence: -")
}

func TestModel_SlashCommand(t *testing.T) {
	h := newHarness(t)

	h.typeText("/stats")
	h.run(h.send(tea.KeyMsg{Type: tea.KeyEnter}))

	assert.Empty(t, h.transport.texts)
	assert.NotEmpty(t, h.model.Notice())
	assert.Len(t, h.model.Messages(), 1)
}

func TestModel_ThemeToggle(t *testing.T) {
	h := newHarness(t)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, "Theme: light", h.model.Notice())

	h.send(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, "Theme: dark", h.model.Notice())
}

func TestModel_FocusTracking(t *testing.T) {
	h := newHarness(t)

	h.send(tea.BlurMsg{})
	assert.False(t, h.focus.Focused())

	h.send(tea.FocusMsg{})
	assert.True(t, h.focus.Focused())
}

func TestModel_VoiceFillsInput(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	assert.True(t, h.model.Listening())

	h.run(cmd)
	assert.False(t, h.model.Listening())
	assert.Equal(t, "where is my order", h.model.InputValue())
	assert.Empty(t, h.transport.texts, "transcripts are never sent automatically")
}

func TestModel_Quit(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, h.model.View())
}

func TestBridge_DropsBeforeAttach(t *testing.T) {
	b := NewBridge()
	b.Notice("lost")

	var got []tea.Msg
	b.AttachFunc(func(msg tea.Msg) { got = append(got, msg) })
	b.Notice("kept")
	b.ShowTyping()

	require.Len(t, got, 2)
	assert.Equal(t, NoticeMsg{Text: "kept"}, got[0])
	assert.Equal(t, TypingMsg{Visible: true}, got[1])
}
