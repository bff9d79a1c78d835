// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package capability

import (
	"go.uber.org/zap"

	"github.com/jeranaias/supportchat/internal/storage"
	"github.com/jeranaias/supportchat/internal/ui/styles"
)

// ThemeManager owns the light/dark mode and its saved preference.
type ThemeManager struct {
	theme  *styles.Theme
	prefs  storage.Preferences
	logger *zap.Logger
}

// NewThemeManager picks the initial mode: the forced mode if set, else the
// saved preference, else the terminal background.
func NewThemeManager(prefs storage.Preferences, forced string, logger *zap.Logger) *ThemeManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &ThemeManager{prefs: prefs, logger: logger.Named("capability")}
	m.theme = styles.NewTheme(m.initialMode(forced))
	return m
}

func (m *ThemeManager) initialMode(forced string) styles.Mode {
	if forced != "" {
		if mode, err := styles.ParseMode(forced); err == nil {
			return mode
		}
		m.logger.Warn("ignoring invalid theme", zap.String("theme", forced))
	}
	if m.prefs == nil {
		return ""
	}
	saved, ok, err := m.prefs.Get(storage.ThemeKey)
	if err != nil {
		m.logger.Warn("failed to read theme preference", zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	mode, err := styles.ParseMode(saved)
	if err != nil {
		return ""
	}
	return mode
}

// Theme returns the live theme.
func (m *ThemeManager) Theme() *styles.Theme {
	return m.theme
}

// Mode returns the current mode.
func (m *ThemeManager) Mode() styles.Mode {
	return m.theme.Mode
}

// Toggle flips the mode and saves it. The returned error only concerns the
// save; the mode is switched regardless.
func (m *ThemeManager) Toggle() (styles.Mode, error) {
	mode := m.theme.Toggle()
	if m.prefs == nil {
		return mode, nil
	}
	if err := m.prefs.Set(storage.ThemeKey, string(mode)); err != nil {
		m.logger.Warn("failed to save theme preference", zap.Error(err))
		return mode, err
	}
	return mode, nil
}
