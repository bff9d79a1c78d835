// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package capability wraps optional host features behind small adapters.
//
// Every adapter reports Available and returns ErrUnsupported when the host
// lacks the feature. Failures stay inside the adapter layer: callers show them
// as inline notices and never add them to the conversation.
//
// # Key Types
//
//   - Clipboard: System clipboard via atotto/clipboard
//   - Notifier: Desktop notifications via notify-send or osascript
//   - Voice: Speech-to-text via a configured external command
//   - Focus: Terminal focus state fed by Bubble Tea focus reporting
//   - ThemeManager: Light/dark theme with a persisted preference
//   - Set: The bundle handed to the front ends
//
// # Usage
//
//	caps := capability.Set{
//	    Clipboard: capability.NewClipboard(),
//	    Notifier:  capability.NewNotifier(logger),
//	    Voice:     capability.NewVoice(cfg.Voice.Command, cfg.Voice.Args),
//	    Focus:     capability.NewFocus(),
//	}
package capability
