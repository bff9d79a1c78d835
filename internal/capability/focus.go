// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package capability

import "sync/atomic"

// Focus tracks whether the terminal has input focus. It starts focused since
// terminals that do not report focus never send a blur.
type Focus struct {
	blurred atomic.Bool
}

// NewFocus creates a focused tracker.
func NewFocus() *Focus {
	return &Focus{}
}

// Set records the focus state.
func (f *Focus) Set(focused bool) {
	f.blurred.Store(!focused)
}

// Focused reports the last recorded state.
func (f *Focus) Focused() bool {
	return !f.blurred.Load()
}
