// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Built-in action names. The controller registers the first three; front ends
// register the rest for the capabilities they wire.
const (
	ActionClear           = "clear"
	ActionTrain           = "train"
	ActionLanguage        = "lang"
	ActionExport          = "export"
	ActionExportAnalytics = "stats-export"
	ActionStats           = "stats"
	ActionTheme           = "theme"
	ActionCopy            = "copy"
	ActionVoice           = "voice"
	ActionHelp            = "help"
	ActionQuit            = "quit"

	// Handled by front ends directly, never registered.
	ActionSend = "send"
	ActionMenu = "menu"
)

// ErrUnknownAction is returned by Run for names that are not registered.
var ErrUnknownAction = errors.New("unknown action")

// =============================================================================
// ACTION DEFINITION
// =============================================================================

// Handler executes an action with its arguments.
type Handler func(ctx context.Context, args []string) error

// Action is a named operation reachable from shortcuts, menus and slash
// commands.
type Action struct {
	// Name is the primary name (e.g., "clear")
	Name string

	// Aliases are alternative names (e.g., "c")
	Aliases []string

	// Description is shown in help
	Description string

	// Usage shows argument syntax (e.g., "lang <code|auto>")
	Usage string

	// Handler runs the action
	Handler Handler
}

// =============================================================================
// ACTION REGISTRY
// =============================================================================

// Registry holds the registered actions. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]*Action
	aliases map[string]*Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]*Action),
		aliases: make(map[string]*Action),
	}
}

// Register adds or replaces an action.
func (r *Registry) Register(a *Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[a.Name] = a
	for _, alias := range a.Aliases {
		r.aliases[alias] = a
	}
}

// Get retrieves an action by name or alias. A leading slash is ignored.
func (r *Registry) Get(name string) *Action {
	name = strings.TrimPrefix(strings.ToLower(name), "/")
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.actions[name]; ok {
		return a
	}
	return r.aliases[name]
}

// All returns every registered action sorted by name.
func (r *Registry) All() []*Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Action, 0, len(r.actions))
	for _, a := range r.actions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Run executes the named action.
func (r *Registry) Run(ctx context.Context, name string, args ...string) error {
	a := r.Get(name)
	if a == nil || a.Handler == nil {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	return a.Handler(ctx, args)
}

// =============================================================================
// SLASH PARSING
// =============================================================================

// ParseSlash splits "/lang es" into ("lang", ["es"]). ok is false when input
// is not a slash command.
func ParseSlash(input string) (name string, args []string, ok bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") || len(input) < 2 {
		return "", nil, false
	}
	fields := strings.Fields(input[1:])
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// HelpText lists the actions as slash commands.
func (r *Registry) HelpText() string {
	var b strings.Builder
	for _, a := range r.All() {
		usage := a.Usage
		if usage == "" {
			usage = a.Name
		}
		fmt.Fprintf(&b, "  /%-18s %s\n", usage, a.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
