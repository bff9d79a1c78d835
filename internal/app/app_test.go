// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeranaias/supportchat/internal/capability"
	"github.com/jeranaias/supportchat/internal/config"
	"github.com/jeranaias/supportchat/internal/mockbackend"
	"github.com/jeranaias/supportchat/internal/model"
	"github.com/jeranaias/supportchat/internal/storage"
	"github.com/jeranaias/supportchat/internal/ui/styles"
	"github.com/jeranaias/supportchat/internal/widget"
)

type noticeRenderer struct {
	widget.NopRenderer
	mu      sync.Mutex
	notices []string
}

func (r *noticeRenderer) Notice(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, text)
}

func (r *noticeRenderer) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return ""
	}
	return r.notices[len(r.notices)-1]
}

var fixedTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

type fixture struct {
	app      *App
	renderer *noticeRenderer
	copied   *string
	dir      string
}

func newFixture(t *testing.T, mutate func(cfg *config.Config, opts *Options)) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv, err := mockbackend.New(mockbackend.Options{RatePerSecond: -1})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Backend.URL = ts.URL
	cfg.Export.Dir = dir
	cfg.Export.TimestampNames = false
	cfg.UI.Theme = "dark"

	var copied string
	r := &noticeRenderer{}
	opts := Options{
		Renderer: r,
		Logger:   zap.NewNop(),
		Prefs:    storage.NewMemoryPrefs(),
		Clock:    func() time.Time { return fixedTime },
		Caps: &capability.Set{
			Clipboard: capability.NewClipboardWith(func(s string) error { copied = s; return nil }),
			Focus:     capability.NewFocus(),
		},
	}
	if mutate != nil {
		mutate(cfg, &opts)
	}

	a, err := New(cfg, opts)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return fixture{app: a, renderer: r, copied: &copied, dir: dir}
}

func TestNew_ExchangeAgainstMockBackend(t *testing.T) {
	f := newFixture(t, nil)
	ctrl := f.app.Controller

	require.True(t, ctrl.Submit(context.Background(), "Where is my order #AB1234?"))
	msgs := ctrl.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, model.TypeNormal, msgs[2].Type)

	st := ctrl.Status()
	assert.Equal(t, "order_status", st.Intent)
	assert.Equal(t, 1, f.app.Session.Snapshot().MessageCount)
}

func TestNew_ConfiguredLanguageAndWelcome(t *testing.T) {
	f := newFixture(t, func(cfg *config.Config, opts *Options) {
		cfg.Chat.Language = "ES-mx"
		cfg.Chat.Welcome = "Hola"
	})
	assert.Equal(t, "es", f.app.Controller.LanguageOverride())
	assert.Equal(t, "Hola", f.app.Controller.Messages()[0].Text)
}

func TestActions_Export(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.app.RunAction(ctx, widget.ActionExport))
	path := filepath.Join(f.dir, "conversation.json")
	assert.Equal(t, "Conversation exported to "+path, f.renderer.last())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc model.ConversationExport
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Messages, 1)

	require.NoError(t, f.app.RunAction(ctx, widget.ActionExport, "md"))
	assert.FileExists(t, filepath.Join(f.dir, "conversation.md"))

	require.NoError(t, f.app.RunAction(ctx, widget.ActionExportAnalytics))
	assert.FileExists(t, filepath.Join(f.dir, "chat-analytics.json"))

	err = f.app.RunAction(ctx, widget.ActionExport, "pdf")
	assert.Error(t, err)
	assert.Contains(t, f.renderer.last(), "Export failed")
}

func TestActions_ContextMenuExport(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.app.Menu.Select(context.Background(), 1))
	assert.FileExists(t, filepath.Join(f.dir, "conversation.json"))
}

func TestActions_Copy(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.app.RunAction(ctx, widget.ActionCopy))
	assert.Equal(t, widget.WelcomeText, *f.copied)
	assert.Equal(t, "Copied to clipboard", f.renderer.last())

	before := f.app.Controller.Messages()
	f.app.Caps.Clipboard = capability.NewClipboardWith(nil)
	err := f.app.RunAction(ctx, widget.ActionCopy)
	assert.ErrorIs(t, err, capability.ErrUnsupported)
	assert.Equal(t, "Clipboard is not available on this system", f.renderer.last())
	assert.Equal(t, before, f.app.Controller.Messages())
}

func TestActions_ThemePersists(t *testing.T) {
	f := newFixture(t, nil)
	before := f.app.Controller.Messages()

	require.NoError(t, f.app.RunAction(context.Background(), widget.ActionTheme))
	assert.Equal(t, styles.ModeLight, f.app.Themes.Mode())
	assert.Equal(t, "Theme: light", f.renderer.last())

	saved, ok, err := f.app.Prefs.Get(storage.ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", saved)
	assert.Equal(t, before, f.app.Controller.Messages())
}

func TestActions_Voice(t *testing.T) {
	var transcript string
	var gotArgs []string
	f := newFixture(t, func(cfg *config.Config, opts *Options) {
		cfg.Chat.Language = "de"
		opts.OnTranscript = func(s string) { transcript = s }
		opts.Caps.Voice = capability.NewVoiceWith("stt", []string{"{locale}"},
			func(ctx context.Context, name string, args ...string) ([]byte, error) {
				gotArgs = args
				return []byte("Wo ist meine Bestellung?\n"), nil
			})
	})

	require.NoError(t, f.app.RunAction(context.Background(), widget.ActionVoice))
	assert.Equal(t, "Wo ist meine Bestellung?", transcript)
	assert.Equal(t, []string{"de-DE"}, gotArgs)
	// Transcripts are never sent automatically.
	assert.Len(t, f.app.Controller.Messages(), 1)
}

func TestActions_VoiceUnavailable(t *testing.T) {
	f := newFixture(t, nil)
	err := f.app.RunAction(context.Background(), widget.ActionVoice)
	assert.ErrorIs(t, err, capability.ErrUnsupported)
	assert.Equal(t, "Voice input is not available on this system", f.renderer.last())
}

func TestActions_HelpStatsQuit(t *testing.T) {
	quit := false
	f := newFixture(t, func(cfg *config.Config, opts *Options) {
		opts.OnQuit = func() { quit = true }
	})
	ctx := context.Background()

	require.NoError(t, f.app.RunAction(ctx, "help"))
	assert.Contains(t, f.renderer.last(), "/export [json|md]")
	assert.Contains(t, f.renderer.last(), "/lang <code|auto>")

	require.NoError(t, f.app.RunAction(ctx, "stats"))
	assert.Contains(t, f.renderer.last(), "Messages: 0")

	require.NoError(t, f.app.RunAction(ctx, "/q"))
	assert.True(t, quit)

	err := f.app.RunAction(ctx, "dance")
	assert.True(t, errors.Is(err, widget.ErrUnknownAction))
	assert.Equal(t, "Unknown command: dance (try /help)", f.renderer.last())
}

func TestNew_NotificationsWhenUnfocused(t *testing.T) {
	f := newFixture(t, nil)
	_, ok := f.app.Controller.Feature(widget.FeatureNotifications)
	assert.True(t, ok)

	off := newFixture(t, func(cfg *config.Config, opts *Options) { cfg.UI.Notifications = false })
	_, ok = off.app.Controller.Feature(widget.FeatureNotifications)
	assert.False(t, ok)
}
