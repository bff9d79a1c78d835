// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeranaias/supportchat/internal/model"
)

// Feature names.
const (
	FeatureShortcuts     = "shortcuts"
	FeatureContextMenu   = "context-menu"
	FeatureNotifications = "notifications"
)

// Feature is an optional module composed onto a Controller.
type Feature interface {
	Name() string
	Attach(c *Controller)
}

// =============================================================================
// SHORTCUTS
// =============================================================================

// Shortcut binds key chords to an action name. Keys use Bubble Tea's key
// string format ("ctrl+l").
type Shortcut struct {
	Keys   []string
	Action string
	Help   string
}

// Shortcuts is the key chord table.
type Shortcuts struct {
	bindings []Shortcut
	byKey    map[string]Shortcut
}

// DefaultShortcuts is the standard chord table.
func DefaultShortcuts() []Shortcut {
	return []Shortcut{
		{Keys: []string{"enter", "ctrl+enter"}, Action: ActionSend, Help: "send"},
		{Keys: []string{"ctrl+l"}, Action: ActionClear, Help: "clear"},
		{Keys: []string{"ctrl+e"}, Action: ActionExport, Help: "export"},
		{Keys: []string{"ctrl+s"}, Action: ActionExportAnalytics, Help: "export stats"},
		{Keys: []string{"ctrl+t"}, Action: ActionTheme, Help: "theme"},
		{Keys: []string{"ctrl+y"}, Action: ActionCopy, Help: "copy reply"},
		{Keys: []string{"ctrl+r"}, Action: ActionVoice, Help: "voice"},
		{Keys: []string{"ctrl+o"}, Action: ActionMenu, Help: "menu"},
	}
}

// NewShortcuts creates the feature. With no bindings it uses the defaults.
func NewShortcuts(bindings ...Shortcut) *Shortcuts {
	if len(bindings) == 0 {
		bindings = DefaultShortcuts()
	}
	s := &Shortcuts{
		bindings: bindings,
		byKey:    make(map[string]Shortcut),
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			s.byKey[k] = b
		}
	}
	return s
}

func (s *Shortcuts) Name() string       { return FeatureShortcuts }
func (s *Shortcuts) Attach(*Controller) {}

// Lookup returns the shortcut bound to key.
func (s *Shortcuts) Lookup(key string) (Shortcut, bool) {
	b, ok := s.byKey[key]
	return b, ok
}

// Bindings returns the table in declaration order.
func (s *Shortcuts) Bindings() []Shortcut {
	out := make([]Shortcut, len(s.bindings))
	copy(out, s.bindings)
	return out
}

// =============================================================================
// CONTEXT MENU
// =============================================================================

// MenuItem is one context menu entry.
type MenuItem struct {
	Label  string
	Action string
}

// ContextMenu offers the conversation actions as a short menu.
type ContextMenu struct {
	items []MenuItem
	ctrl  *Controller
}

// NewContextMenu creates the menu with Clear, Export and Train entries.
func NewContextMenu() *ContextMenu {
	return &ContextMenu{
		items: []MenuItem{
			{Label: "Clear Chat", Action: ActionClear},
			{Label: "Export Conversation", Action: ActionExport},
			{Label: "Train Model", Action: ActionTrain},
		},
	}
}

func (m *ContextMenu) Name() string         { return FeatureContextMenu }
func (m *ContextMenu) Attach(c *Controller) { m.ctrl = c }

// Items returns the menu entries in display order.
func (m *ContextMenu) Items() []MenuItem {
	out := make([]MenuItem, len(m.items))
	copy(out, m.items)
	return out
}

// Select runs the action of item i.
func (m *ContextMenu) Select(ctx context.Context, i int) error {
	if i < 0 || i >= len(m.items) {
		return fmt.Errorf("menu item %d out of range", i)
	}
	if m.ctrl == nil {
		return fmt.Errorf("context menu not attached")
	}
	return m.ctrl.Actions().Run(ctx, m.items[i].Action)
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// Notifier shows a desktop notification.
type Notifier interface {
	Available() bool
	Notify(title, body string) error
}

// FocusReporter reports whether the terminal has input focus.
type FocusReporter interface {
	Focused() bool
}

// NotificationTitle is the title of every bot reply notification.
const NotificationTitle = "New Message"

// Notifications raises a desktop notification for bot messages that arrive
// while the terminal is unfocused.
type Notifications struct {
	notifier Notifier
	focus    FocusReporter
	logger   *zap.Logger
}

// NewNotifications creates the feature.
func NewNotifications(n Notifier, focus FocusReporter, logger *zap.Logger) *Notifications {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifications{notifier: n, focus: focus, logger: logger.Named("notifications")}
}

func (n *Notifications) Name() string { return FeatureNotifications }

// Attach subscribes to bot messages.
func (n *Notifications) Attach(c *Controller) {
	c.OnBotMessage(n.handle)
}

func (n *Notifications) handle(msg model.Message) {
	if n.notifier == nil || !n.notifier.Available() {
		return
	}
	if n.focus != nil && n.focus.Focused() {
		return
	}
	if err := n.notifier.Notify(NotificationTitle, msg.Text); err != nil {
		n.logger.Debug("notification failed", zap.Error(err))
	}
}
