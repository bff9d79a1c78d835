// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLitePrefs_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")
	prefs, err := OpenSQLite(path)
	require.NoError(t, err)

	_, ok, err := prefs.Get(ThemeKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, prefs.Set(ThemeKey, "dark"))
	require.NoError(t, prefs.Set(ThemeKey, "light"))

	v, ok, err := prefs.Get(ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
	require.NoError(t, prefs.Close())

	// Value survives reopening.
	again, err := OpenSQLite(path)
	require.NoError(t, err)
	defer again.Close()
	v, ok, err = again.Get(ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
	assert.Equal(t, path, again.Path())
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	assert.Error(t, err)
}

func TestMemoryPrefs(t *testing.T) {
	var prefs Preferences = NewMemoryPrefs()

	require.NoError(t, prefs.Set("k", "v"))
	v, ok, err := prefs.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, prefs.Close())
	assert.ErrorIs(t, prefs.Set("k", "x"), ErrClosed)
	_, _, err = prefs.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
}
