// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the conversation and the analytics snapshot to disk.
//
// # Key Types
//
//   - Exporter: Converts a conversation export to a file format
//   - JSONExporter: conversation.json document ({timestamp, messages})
//   - MarkdownExporter: Human-readable transcript
//   - Options: Output directory and file naming
//
// # Usage
//
//	opts := export.Options{Dir: cfg.Export.Dir, TimestampNames: true}
//	path, err := export.Conversation(ctrl.ExportLog(), export.NewJSONExporter(), opts)
//	path, err = export.Analytics(session.Snapshot(), opts)
//
// Files are written atomically, so an interrupted export never leaves a
// truncated document behind.
package export
