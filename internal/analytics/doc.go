// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analytics provides in-memory session analytics for the chat.
//
// A Session counts completed exchanges by language, intent and confidence
// band. It is created once by the application and injected into the widget
// controller; nothing here is global and nothing is persisted.
//
// # Key Types
//
//   - Session: Mutex-guarded counters for one chat session
//   - Snapshot: Deep copy of the counters, ready for JSON export
//   - Band: Confidence band (high, medium, low)
//
// # Usage
//
//	sess := analytics.New(nil)
//	conf := 0.92
//	sess.Record("en", "order_status", &conf)
//	snap := sess.Snapshot()
//	fmt.Println(snap.MessageCount, snap.ConfidenceLevels[analytics.BandHigh])
package analytics
