// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package capability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/supportchat/internal/storage"
	"github.com/jeranaias/supportchat/internal/ui/styles"
)

type recordedRun struct {
	name string
	args []string
}

func fakeRunner(out string, err error, calls *[]recordedRun) Runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, recordedRun{name: name, args: args})
		return []byte(out), err
	}
}

func found(path string) func(string) (string, error) {
	return func(string) (string, error) { return path, nil }
}

func missing(string) (string, error) {
	return "", errors.New("not found")
}

func TestClipboard(t *testing.T) {
	var got string
	c := NewClipboardWith(func(s string) error { got = s; return nil })
	require.True(t, c.Available())
	require.NoError(t, c.Copy("hello"))
	assert.Equal(t, "hello", got)

	none := NewClipboardWith(nil)
	assert.False(t, none.Available())
	assert.ErrorIs(t, none.Copy("x"), ErrUnsupported)

	failing := NewClipboardWith(func(string) error { return errors.New("boom") })
	assert.ErrorContains(t, failing.Copy("x"), "boom")
}

func TestSet_NilAdapters(t *testing.T) {
	var s Set
	assert.ErrorIs(t, s.CopyText("x"), ErrUnsupported)
	_, err := s.Listen(context.Background(), "en")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFocus(t *testing.T) {
	f := NewFocus()
	assert.True(t, f.Focused())
	f.Set(false)
	assert.False(t, f.Focused())
	f.Set(true)
	assert.True(t, f.Focused())
}

func TestNotifier(t *testing.T) {
	t.Run("linux", func(t *testing.T) {
		var calls []recordedRun
		n := newNotifier("linux", found("/usr/bin/notify-send"), fakeRunner("", nil, &calls), nil)
		require.True(t, n.Available())
		require.NoError(t, n.Notify("New Message", "hi"))
		require.Len(t, calls, 1)
		assert.Equal(t, "/usr/bin/notify-send", calls[0].name)
		assert.Equal(t, []string{"--app-name=supportchat", "New Message", "hi"}, calls[0].args)
	})

	t.Run("darwin", func(t *testing.T) {
		var calls []recordedRun
		n := newNotifier("darwin", found("/usr/bin/osascript"), fakeRunner("", nil, &calls), nil)
		require.NoError(t, n.Notify("T", `say "x"`))
		require.Len(t, calls, 1)
		assert.Equal(t, "-e", calls[0].args[0])
		assert.Contains(t, calls[0].args[1], `with title "T"`)
		assert.Contains(t, calls[0].args[1], `"say \"x\""`)
	})

	t.Run("missing tool", func(t *testing.T) {
		n := newNotifier("linux", missing, nil, nil)
		assert.False(t, n.Available())
		assert.ErrorIs(t, n.Notify("t", "b"), ErrUnsupported)
	})

	t.Run("windows", func(t *testing.T) {
		n := newNotifier("windows", found("x"), nil, nil)
		assert.False(t, n.Available())
	})
}

func TestVoiceLocale(t *testing.T) {
	tests := map[string]string{
		"en":   "en-US",
		"es":   "es-ES",
		"ZH":   "zh-CN",
		"ar":   "ar-SA",
		"auto": DefaultVoiceLocale,
		"":     DefaultVoiceLocale,
		"pt":   DefaultVoiceLocale,
	}
	for in, want := range tests {
		assert.Equal(t, want, VoiceLocale(in), in)
	}
}

func TestVoice_Listen(t *testing.T) {
	var calls []recordedRun
	v := newVoice("whisper", []string{"--lang", LocalePlaceholder}, found("/opt/whisper"), fakeRunner("  where is my order \n", nil, &calls))
	require.True(t, v.Available())

	text, err := v.Listen(context.Background(), "fr")
	require.NoError(t, err)
	assert.Equal(t, "where is my order", text)
	require.Len(t, calls, 1)
	assert.Equal(t, "/opt/whisper", calls[0].name)
	assert.Equal(t, []string{"--lang", "fr-FR"}, calls[0].args)
}

func TestVoice_Failures(t *testing.T) {
	assert.False(t, newVoice("", nil, found("x"), ExecRunner).Available())
	assert.False(t, newVoice("whisper", nil, missing, ExecRunner).Available())

	_, err := newVoice("", nil, found("x"), ExecRunner).Listen(context.Background(), "en")
	assert.ErrorIs(t, err, ErrUnsupported)

	var calls []recordedRun
	empty := NewVoiceWith("stt", nil, fakeRunner("   ", nil, &calls))
	_, err = empty.Listen(context.Background(), "en")
	assert.ErrorIs(t, err, ErrEmptyTranscript)

	broken := NewVoiceWith("stt", nil, fakeRunner("", errors.New("exit 1"), &calls))
	_, err = broken.Listen(context.Background(), "en")
	assert.ErrorContains(t, err, "voice recognition")
}

func TestThemeManager(t *testing.T) {
	prefs := storage.NewMemoryPrefs()
	require.NoError(t, prefs.Set(storage.ThemeKey, "light"))

	m := NewThemeManager(prefs, "", nil)
	assert.Equal(t, styles.ModeLight, m.Mode())

	mode, err := m.Toggle()
	require.NoError(t, err)
	assert.Equal(t, styles.ModeDark, mode)
	saved, ok, err := prefs.Get(storage.ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", saved)

	// A forced theme wins over the saved one.
	forced := NewThemeManager(prefs, "light", nil)
	assert.Equal(t, styles.ModeLight, forced.Mode())
	assert.Same(t, forced.Theme(), forced.Theme())
}

func TestThemeManager_SaveFailureStillToggles(t *testing.T) {
	prefs := storage.NewMemoryPrefs()
	m := NewThemeManager(prefs, "dark", nil)
	require.NoError(t, prefs.Close())

	mode, err := m.Toggle()
	assert.ErrorIs(t, err, storage.ErrClosed)
	assert.Equal(t, styles.ModeLight, mode)
	assert.Equal(t, styles.ModeLight, m.Mode())
}
