// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/peterh/liner"

	"github.com/jeranaias/supportchat/internal/app"
	"github.com/jeranaias/supportchat/internal/widget"
)

// ReplPrompt is the input prompt.
const ReplPrompt = "you> "

// REPL is the line-based chat loop. Input starting with "/" runs an action;
// anything else is sent to the backend.
type REPL struct {
	app *app.App
	in  LineReader
	out io.Writer

	mu      sync.Mutex
	prefill string
	quit    atomic.Bool
}

// NewREPL creates a loop reading from in. Bind must be called before Run.
func NewREPL(in LineReader, out io.Writer) *REPL {
	return &REPL{in: in, out: out}
}

// Bind attaches the session.
func (r *REPL) Bind(a *app.App) {
	r.app = a
}

// Prefill puts text into the next prompt for editing. Used for voice
// transcripts, which are never sent automatically.
func (r *REPL) Prefill(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefill = text
}

// Quit ends the loop after the current line.
func (r *REPL) Quit() {
	r.quit.Store(true)
}

// Run prints the banner and welcome message, then reads lines until EOF,
// Ctrl+C, /quit or ctx is done.
func (r *REPL) Run(ctx context.Context, renderer widget.Renderer) error {
	if r.app == nil {
		return errors.New("repl: no session bound")
	}
	r.banner()
	if msgs := r.app.Controller.Messages(); len(msgs) > 0 {
		renderer.AppendMessage(msgs[0])
	}

	for !r.quit.Load() && ctx.Err() == nil {
		line, err := r.read()
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, liner.ErrPromptAborted):
			return nil
		case err != nil:
			return err
		}
		r.Handle(ctx, line)
	}
	return nil
}

func (r *REPL) read() (string, error) {
	r.mu.Lock()
	prefill := r.prefill
	r.prefill = ""
	r.mu.Unlock()

	if prefill != "" {
		return r.in.PromptWithSuggestion(ReplPrompt, prefill, -1)
	}
	return r.in.Prompt(ReplPrompt)
}

// Handle processes one input line.
func (r *REPL) Handle(ctx context.Context, line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	r.in.AppendHistory(line)

	if name, args, ok := widget.ParseSlash(line); ok {
		// Failures are already reported as notices.
		_ = r.app.RunAction(ctx, name, args...)
		return
	}
	r.app.Controller.Submit(ctx, line)
}

func (r *REPL) banner() {
	fmt.Fprintf(r.out, "Customer Support Chat (%s)\n", r.app.BackendURL())
	fmt.Fprintln(r.out, "Type /help for commands, /quit to exit.")
	fmt.Fprintln(r.out)
}
