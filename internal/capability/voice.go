// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package capability

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// LocalePlaceholder in voice arguments is replaced with the recognition
// locale.
const LocalePlaceholder = "{locale}"

// DefaultVoiceLocale is used for auto-detect and unknown languages.
const DefaultVoiceLocale = "en-US"

var voiceLocales = map[string]string{
	"en": "en-US",
	"es": "es-ES",
	"fr": "fr-FR",
	"de": "de-DE",
	"hi": "hi-IN",
	"zh": "zh-CN",
	"ja": "ja-JP",
	"ar": "ar-SA",
}

// ErrEmptyTranscript is returned when recognition produced no text.
var ErrEmptyTranscript = errors.New("no speech recognized")

// VoiceLocale maps a language override to a recognition locale.
func VoiceLocale(language string) string {
	if loc, ok := voiceLocales[strings.ToLower(language)]; ok {
		return loc
	}
	return DefaultVoiceLocale
}

// Voice runs an external speech-to-text command that prints a transcript to
// stdout.
type Voice struct {
	command string
	args    []string
	run     Runner
}

// NewVoice creates the adapter. It is unavailable when command is empty or
// not on PATH.
func NewVoice(command string, args []string) *Voice {
	return newVoice(command, args, exec.LookPath, ExecRunner)
}

// NewVoiceWith creates the adapter with a custom runner and no PATH lookup.
func NewVoiceWith(command string, args []string, run Runner) *Voice {
	return &Voice{command: command, args: args, run: run}
}

func newVoice(command string, args []string, lookPath func(string) (string, error), run Runner) *Voice {
	v := &Voice{args: args, run: run}
	command = strings.TrimSpace(command)
	if command == "" {
		return v
	}
	if path, err := lookPath(command); err == nil {
		v.command = path
	}
	return v
}

// Available reports whether a voice command is configured.
func (v *Voice) Available() bool {
	return v != nil && v.command != "" && v.run != nil
}

// Listen captures one utterance and returns the trimmed transcript.
func (v *Voice) Listen(ctx context.Context, language string) (string, error) {
	if !v.Available() {
		return "", ErrUnsupported
	}
	locale := VoiceLocale(language)
	args := make([]string, len(v.args))
	for i, a := range v.args {
		args[i] = strings.ReplaceAll(a, LocalePlaceholder, locale)
	}

	out, err := v.run(ctx, v.command, args...)
	if err != nil {
		return "", fmt.Errorf("voice recognition: %w", err)
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}
