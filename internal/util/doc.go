// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small filesystem and text helpers shared by the
// supportchat packages.
//
// # Files
//
//   - fs.go: atomic file writes and home-directory expansion
//   - text.go: display-width aware truncation and padding
package util
