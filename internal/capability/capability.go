// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package capability

import (
	"context"
	"errors"
	"os/exec"
)

// ErrUnsupported is returned when the host lacks a capability.
var ErrUnsupported = errors.New("capability not supported on this host")

// Runner executes an external command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Set bundles the adapters used by the front ends. Nil fields are treated as
// unavailable.
type Set struct {
	Clipboard *Clipboard
	Notifier  *Notifier
	Voice     *Voice
	Focus     *Focus
	Theme     *ThemeManager
}

// CopyText copies text to the clipboard.
func (s Set) CopyText(text string) error {
	if s.Clipboard == nil {
		return ErrUnsupported
	}
	return s.Clipboard.Copy(text)
}

// Listen captures one voice transcript.
func (s Set) Listen(ctx context.Context, language string) (string, error) {
	if s.Voice == nil {
		return "", ErrUnsupported
	}
	return s.Voice.Listen(ctx, language)
}
