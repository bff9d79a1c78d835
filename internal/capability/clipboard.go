// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package capability

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard copies text to the system clipboard.
type Clipboard struct {
	write       func(string) error
	unsupported bool
}

// NewClipboard creates the system clipboard adapter.
func NewClipboard() *Clipboard {
	return &Clipboard{write: clipboard.WriteAll, unsupported: clipboard.Unsupported}
}

// NewClipboardWith creates an adapter around a custom writer. A nil writer is
// unavailable.
func NewClipboardWith(write func(string) error) *Clipboard {
	return &Clipboard{write: write, unsupported: write == nil}
}

// Available reports whether a clipboard utility was found.
func (c *Clipboard) Available() bool {
	return c != nil && !c.unsupported
}

// Copy writes text to the clipboard.
func (c *Clipboard) Copy(text string) error {
	if !c.Available() {
		return ErrUnsupported
	}
	if err := c.write(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
