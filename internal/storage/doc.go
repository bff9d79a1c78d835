// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides client preference persistence for supportchat.
//
// Only small key/value preferences are stored (today just the theme under
// ThemeKey). Conversations are never persisted.
//
// # Key Types
//
//   - Preferences: Key/value store interface
//   - SQLitePrefs: SQLite-backed store (pure Go driver, no cgo)
//   - MemoryPrefs: In-memory store for tests and --no-persist
//
// # Usage
//
//	prefs, err := storage.OpenSQLite("~/.supportchat/prefs.db")
//	if err != nil {
//	    return err
//	}
//	defer prefs.Close()
//	_ = prefs.Set(storage.ThemeKey, "dark")
//	theme, ok, err := prefs.Get(storage.ThemeKey)
package storage
