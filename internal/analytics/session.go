// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package analytics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SESSION
// =============================================================================

// Clock returns the current time.
type Clock func() time.Time

// Session tracks counters for one chat session. It is safe for concurrent use.
type Session struct {
	mu    sync.Mutex
	clock Clock

	id           string
	start        time.Time
	messageCount int
	languages    map[string]int
	intents      map[string]int
	bands        map[Band]int
}

// Snapshot is an immutable copy of the session counters.
type Snapshot struct {
	SessionID        string         `json:"session_id"`
	SessionStart     time.Time      `json:"session_start"`
	DurationMS       int64          `json:"duration_ms"`
	MessageCount     int            `json:"message_count"`
	LanguageUsage    map[string]int `json:"language_usage"`
	IntentCounts     map[string]int `json:"intent_counts"`
	ConfidenceLevels map[Band]int   `json:"confidence_levels"`
}

// New creates a session starting now. A nil clock uses time.Now.
func New(clock Clock) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		clock:     clock,
		id:        uuid.New().String(),
		start:     clock(),
		languages: make(map[string]int),
		intents:   make(map[string]int),
		bands:     make(map[Band]int),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Record counts one completed exchange. The message count always increases;
// empty language or intent and a nil confidence are skipped.
func (s *Session) Record(language, intent string, confidence *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messageCount++
	if language != "" {
		s.languages[language]++
	}
	if intent != "" {
		s.intents[intent]++
	}
	if confidence != nil {
		s.bands[BandOf(*confidence)]++
	}
}

// Snapshot returns a deep copy of the counters with the elapsed duration.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		SessionID:        s.id,
		SessionStart:     s.start.UTC(),
		DurationMS:       s.clock().Sub(s.start).Milliseconds(),
		MessageCount:     s.messageCount,
		LanguageUsage:    copyCounts(s.languages),
		IntentCounts:     copyCounts(s.intents),
		ConfidenceLevels: copyCounts(s.bands),
	}
}

func copyCounts[K comparable](m map[K]int) map[K]int {
	out := make(map[K]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// =============================================================================
// FORMATTING
// =============================================================================

// Summary renders the snapshot as a few plain-text lines.
func (s Snapshot) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s\n", s.SessionID)
	fmt.Fprintf(&b, "Duration: %s\n", (time.Duration(s.DurationMS) * time.Millisecond).Round(time.Second))
	fmt.Fprintf(&b, "Messages: %d\n", s.MessageCount)
	fmt.Fprintf(&b, "Languages: %s\n", joinCounts(s.LanguageUsage))
	fmt.Fprintf(&b, "Intents: %s\n", joinCounts(s.IntentCounts))
	fmt.Fprintf(&b, "Confidence: high=%d medium=%d low=%d",
		s.ConfidenceLevels[BandHigh], s.ConfidenceLevels[BandMedium], s.ConfidenceLevels[BandLow])
	return b.String()
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, ", ")
}
