// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/supportchat/internal/config"
)

// HistoryFileName is the REPL history file inside the config directory.
const HistoryFileName = "chat_history"

// LineReader reads REPL input lines.
type LineReader interface {
	Prompt(prompt string) (string, error)
	PromptWithSuggestion(prompt, text string, pos int) (string, error)
	AppendHistory(item string)
}

// =============================================================================
// LINE EDITOR
// =============================================================================

// LineEditor provides line editing, history and slash-command completion.
type LineEditor struct {
	*liner.State
	historyFile string
	commands    []string
}

// NewLineEditor creates an editor and loads the history file. An empty path
// uses the default location.
func NewLineEditor(historyFile string) *LineEditor {
	if historyFile == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		historyFile = filepath.Join(dir, HistoryFileName)
	}

	e := &LineEditor{State: liner.NewLiner(), historyFile: historyFile}
	e.SetCtrlCAborts(true)
	e.SetCompleter(e.complete)
	e.LoadHistory()
	return e
}

// SetCommands sets the slash command names offered on tab.
func (e *LineEditor) SetCommands(names []string) {
	e.commands = append([]string(nil), names...)
	sort.Strings(e.commands)
}

func (e *LineEditor) complete(line string) []string {
	return completeSlash(e.commands, line)
}

// completeSlash returns "/name" completions for a partial slash command.
func completeSlash(commands []string, line string) []string {
	if !strings.HasPrefix(line, "/") || strings.Contains(line, " ") {
		return nil
	}
	prefix := strings.ToLower(line[1:])
	var out []string
	for _, name := range commands {
		if strings.HasPrefix(name, prefix) {
			out = append(out, "/"+name)
		}
	}
	return out
}

// LoadHistory loads command history from file.
func (e *LineEditor) LoadHistory() {
	if f, err := os.Open(e.historyFile); err == nil {
		_, _ = e.ReadHistory(f)
		f.Close()
	}
}

// SaveHistory writes the history file with 0600 permissions.
func (e *LineEditor) SaveHistory() error {
	if err := os.MkdirAll(filepath.Dir(e.historyFile), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = e.WriteHistory(f)
	return err
}

// Close saves history and restores the terminal.
func (e *LineEditor) Close() error {
	_ = e.SaveHistory()
	return e.State.Close()
}

// =============================================================================
// PLAIN READER
// =============================================================================

// PlainReader reads lines from a non-terminal input such as a pipe. It never
// prints prompts.
type PlainReader struct {
	scanner *bufio.Scanner
}

// NewPlainReader creates a reader over in.
func NewPlainReader(in io.Reader) *PlainReader {
	return &PlainReader{scanner: bufio.NewScanner(in)}
}

// Prompt returns the next line, or io.EOF.
func (r *PlainReader) Prompt(string) (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// PromptWithSuggestion ignores the suggestion; piped input has no editor.
func (r *PlainReader) PromptWithSuggestion(prompt, _ string, _ int) (string, error) {
	return r.Prompt(prompt)
}

// AppendHistory is a no-op.
func (r *PlainReader) AppendHistory(string) {}
