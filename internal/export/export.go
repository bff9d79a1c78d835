// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/supportchat/internal/analytics"
	"github.com/jeranaias/supportchat/internal/model"
	"github.com/jeranaias/supportchat/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for conversation exporters.
type Exporter interface {
	// Export converts a conversation to the target format.
	Export(conv model.ConversationExport) ([]byte, error)

	// FileExtension returns the file extension (e.g., ".json", ".md").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// File base names.
const (
	ConversationName = "conversation"
	AnalyticsName    = "chat-analytics"
)

// timestampSuffix is appended to names when Options.TimestampNames is set.
const timestampSuffix = "_20060102_150405"

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures where and how files are written.
type Options struct {
	// Dir is the output directory. Default: current working directory.
	Dir string

	// TimestampNames appends _YYYYMMDD_HHMMSS to file names so repeated
	// exports do not overwrite each other.
	TimestampNames bool

	// Now overrides the clock used for file names.
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() Options {
	return Options{Dir: ".", TimestampNames: true}
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Filename builds the output file name for base and ext.
func (o Options) Filename(base, ext string) string {
	if o.TimestampNames {
		base += o.now().Format(timestampSuffix)
	}
	return base + ext
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// WriteFile writes data to dir/name atomically and returns the path.
func WriteFile(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	dir, err := util.ExpandHome(dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := util.WriteFileAtomic(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// Conversation exports conv with exporter and returns the output path.
func Conversation(conv model.ConversationExport, exporter Exporter, opts Options) (string, error) {
	content, err := exporter.Export(conv)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}
	return WriteFile(opts.Dir, opts.Filename(ConversationName, exporter.FileExtension()), content)
}

// Analytics writes the session snapshot as chat-analytics.json.
func Analytics(snap analytics.Snapshot, opts Options) (string, error) {
	content, err := MarshalSnapshot(snap)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}
	return WriteFile(opts.Dir, opts.Filename(AnalyticsName, ".json"), content)
}

// ForFormat returns the exporter for "json" or "md"/"markdown".
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), ".")) {
	case "", "json":
		return NewJSONExporter(), nil
	case "md", "markdown":
		return NewMarkdownExporter(), nil
	}
	return nil, fmt.Errorf("unsupported export format %q (want json or md)", format)
}
