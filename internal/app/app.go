// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/supportchat/internal/analytics"
	"github.com/jeranaias/supportchat/internal/capability"
	"github.com/jeranaias/supportchat/internal/config"
	"github.com/jeranaias/supportchat/internal/export"
	"github.com/jeranaias/supportchat/internal/logging"
	"github.com/jeranaias/supportchat/internal/storage"
	"github.com/jeranaias/supportchat/internal/transport"
	"github.com/jeranaias/supportchat/internal/widget"
)

// Options customizes New. Zero values use the configured defaults.
type Options struct {
	// Renderer receives display updates. Nil discards them.
	Renderer widget.Renderer

	// NoPersist keeps preferences in memory only.
	NoPersist bool

	// Logger replaces the configured file logger.
	Logger *zap.Logger

	// Transport replaces the HTTP client (tests).
	Transport widget.Transport

	// Caps replaces the host capability adapters (tests).
	Caps *capability.Set

	// Prefs replaces the preference store (tests).
	Prefs storage.Preferences

	// Clock replaces time.Now for analytics and exports.
	Clock func() time.Time

	// OnTranscript receives voice transcripts from the voice action.
	OnTranscript func(text string)

	// OnQuit is called by the quit action.
	OnQuit func()
}

// App is one assembled chat session.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Prefs      storage.Preferences
	Themes     *capability.ThemeManager
	Caps       capability.Set
	Client     *transport.Client
	Session    *analytics.Session
	Controller *widget.Controller
	Shortcuts  *widget.Shortcuts
	Menu       *widget.ContextMenu
	Export     export.Options

	onTranscript func(string)
	onQuit       func()
	ownsLogger   bool
}

// New builds the session described by cfg.
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		Config:       cfg,
		onTranscript: opts.OnTranscript,
		onQuit:       opts.OnQuit,
	}

	a.Logger = opts.Logger
	if a.Logger == nil {
		logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			return nil, err
		}
		a.Logger = logger
		a.ownsLogger = true
	}

	a.Prefs = opts.Prefs
	if a.Prefs == nil {
		if opts.NoPersist {
			a.Prefs = storage.NewMemoryPrefs()
		} else {
			prefs, err := storage.OpenSQLite(cfg.Storage.PrefsPath)
			if err != nil {
				// Theme persistence is optional; fall back to memory.
				a.Logger.Warn("preference store unavailable", zap.Error(err))
				a.Prefs = storage.NewMemoryPrefs()
			} else {
				a.Prefs = prefs
			}
		}
	}

	a.Themes = capability.NewThemeManager(a.Prefs, cfg.UI.Theme, a.Logger)

	if opts.Caps != nil {
		a.Caps = *opts.Caps
	} else {
		a.Caps = capability.Set{
			Clipboard: capability.NewClipboard(),
			Notifier:  capability.NewNotifier(a.Logger),
			Voice:     capability.NewVoice(cfg.Voice.Command, cfg.Voice.Args),
			Focus:     capability.NewFocus(),
		}
	}
	a.Caps.Theme = a.Themes

	a.Session = analytics.New(opts.Clock)

	var tr widget.Transport = opts.Transport
	if tr == nil {
		a.Client = transport.NewClient(cfg.Backend.URL,
			transport.WithTimeout(cfg.Backend.Timeout()),
			transport.WithSessionID(a.Session.ID()),
			transport.WithLogger(a.Logger),
		)
		tr = a.Client
	}

	a.Shortcuts = widget.NewShortcuts()
	a.Menu = widget.NewContextMenu()
	features := []widget.Feature{a.Shortcuts, a.Menu}
	if cfg.UI.Notifications {
		var focus widget.FocusReporter
		if a.Caps.Focus != nil {
			focus = a.Caps.Focus
		}
		var notifier widget.Notifier
		if a.Caps.Notifier != nil {
			notifier = a.Caps.Notifier
		}
		features = append(features, widget.NewNotifications(notifier, focus, a.Logger))
	}

	ctrlOpts := []widget.Option{
		widget.WithLogger(a.Logger),
		widget.WithFeatures(features...),
	}
	if cfg.Chat.Welcome != "" {
		ctrlOpts = append(ctrlOpts, widget.WithWelcome(cfg.Chat.Welcome))
	}
	if opts.Clock != nil {
		ctrlOpts = append(ctrlOpts, widget.WithClock(opts.Clock))
	}
	a.Controller = widget.New(tr, opts.Renderer, a.Session, ctrlOpts...)

	if err := a.Controller.SetLanguageOverride(cfg.Chat.Language); err != nil {
		a.Logger.Warn("ignoring configured language", zap.String("language", cfg.Chat.Language), zap.Error(err))
	}

	a.Export = export.Options{
		Dir:            cfg.Export.Dir,
		TimestampNames: cfg.Export.TimestampNames,
		Now:            opts.Clock,
	}

	a.registerActions()
	return a, nil
}

// Close releases the preference store and flushes the logger.
func (a *App) Close() error {
	var errs []error
	if a.Prefs != nil {
		errs = append(errs, a.Prefs.Close())
	}
	if a.ownsLogger {
		_ = a.Logger.Sync()
	}
	return errors.Join(errs...)
}

// BackendURL returns the configured backend base URL.
func (a *App) BackendURL() string {
	if a.Client != nil {
		return a.Client.BaseURL()
	}
	return a.Config.Backend.URL
}

// RunAction runs a registered action. Failures are logged and shown as an
// inline notice; the conversation is never touched.
func (a *App) RunAction(ctx context.Context, name string, args ...string) error {
	err := a.Controller.Actions().Run(ctx, name, args...)
	if err != nil {
		a.Logger.Debug("action failed", zap.String("action", name), zap.Error(err))
		a.Controller.Notice(NoticeForError(name, err))
	}
	return err
}

// Listen captures one voice transcript in the current override's locale.
func (a *App) Listen(ctx context.Context) (string, error) {
	text, err := a.Caps.Listen(ctx, a.Controller.LanguageOverride())
	if err != nil {
		a.Logger.Debug("voice input failed", zap.Error(err))
		return "", err
	}
	return text, nil
}

// NoticeForError renders an action failure for display.
func NoticeForError(action string, err error) string {
	switch {
	case errors.Is(err, capability.ErrUnsupported):
		return fmt.Sprintf("%s is not available on this system", actionLabel(action))
	case errors.Is(err, widget.ErrUnknownAction):
		return fmt.Sprintf("Unknown command: %s (try /help)", action)
	}
	return fmt.Sprintf("%s failed: %v", actionLabel(action), err)
}

func actionLabel(action string) string {
	switch action {
	case widget.ActionCopy:
		return "Clipboard"
	case widget.ActionVoice:
		return "Voice input"
	case widget.ActionExport:
		return "Export"
	case widget.ActionExportAnalytics:
		return "Analytics export"
	case widget.ActionTheme:
		return "Theme"
	case widget.ActionLanguage:
		return "Language"
	}
	return action
}
