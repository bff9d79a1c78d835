// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package capability

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// notifyTimeout bounds a single notification command.
const notifyTimeout = 5 * time.Second

// Notifier shows desktop notifications through the platform's command line
// tool.
type Notifier struct {
	command string
	goos    string
	run     Runner
	logger  *zap.Logger
}

// NewNotifier discovers notify-send (linux and BSDs) or osascript (darwin).
func NewNotifier(logger *zap.Logger) *Notifier {
	return newNotifier(runtime.GOOS, exec.LookPath, ExecRunner, logger)
}

func newNotifier(goos string, lookPath func(string) (string, error), run Runner, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &Notifier{goos: goos, run: run, logger: logger.Named("capability")}

	tool := "notify-send"
	if goos == "darwin" {
		tool = "osascript"
	} else if goos == "windows" {
		n.logger.Debug("desktop notifications unsupported", zap.String("os", goos))
		return n
	}
	if path, err := lookPath(tool); err == nil {
		n.command = path
	} else {
		n.logger.Debug("notification tool not found", zap.String("tool", tool))
	}
	return n
}

// Available reports whether a notification tool was found.
func (n *Notifier) Available() bool {
	return n != nil && n.command != ""
}

// Notify shows a notification with title and body.
func (n *Notifier) Notify(title, body string) error {
	if !n.Available() {
		return ErrUnsupported
	}
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	var args []string
	if n.goos == "darwin" {
		script := fmt.Sprintf("display notification %s with title %s", strconv.Quote(body), strconv.Quote(title))
		args = []string{"-e", script}
	} else {
		args = []string{"--app-name=supportchat", title, body}
	}
	if _, err := n.run(ctx, n.command, args...); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}
