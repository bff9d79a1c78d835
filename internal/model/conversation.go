// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"sync"
	"time"
)

// =============================================================================
// CONVERSATION LOG
// =============================================================================

// ConversationLog is the ordered, append-only list of messages shown in the
// chat. It is safe for concurrent use.
type ConversationLog struct {
	mu       sync.RWMutex
	messages []Message
}

// NewConversationLog creates a log containing the seed messages.
func NewConversationLog(seed ...Message) *ConversationLog {
	l := &ConversationLog{}
	l.Reset(seed...)
	return l
}

// Append adds a message to the end of the log.
func (l *ConversationLog) Append(msg Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

// Messages returns a copy of the log in insertion order.
func (l *ConversationLog) Messages() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages in the log.
func (l *ConversationLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

// Last returns the most recent message, if any.
func (l *ConversationLog) Last() (Message, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}

// LastFrom returns the most recent message authored by sender.
func (l *ConversationLog) LastFrom(sender Sender) (Message, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.messages) - 1; i >= 0; i-- {
		if l.messages[i].Sender == sender {
			return l.messages[i], true
		}
	}
	return Message{}, false
}

// Reset discards every message and replaces the log with seed.
func (l *ConversationLog) Reset(seed ...Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = make([]Message, 0, len(seed)+16)
	l.messages = append(l.messages, seed...)
}

// =============================================================================
// EXPORT DOCUMENT
// =============================================================================

// ConversationExport is the downloadable snapshot of a conversation.
type ConversationExport struct {
	Timestamp time.Time `json:"-"`
	Messages  []Message `json:"messages"`
}

// Export returns the log contents stamped with at.
func (l *ConversationLog) Export(at time.Time) ConversationExport {
	return ConversationExport{
		Timestamp: at.UTC(),
		Messages:  l.Messages(),
	}
}

// MarshalJSON encodes the document as {timestamp, messages}.
func (e ConversationExport) MarshalJSON() ([]byte, error) {
	msgs := e.Messages
	if msgs == nil {
		msgs = []Message{}
	}
	return json.Marshal(struct {
		Timestamp string    `json:"timestamp"`
		Messages  []Message `json:"messages"`
	}{
		Timestamp: e.Timestamp.UTC().Format(TimestampLayout),
		Messages:  msgs,
	})
}

// UnmarshalJSON decodes a document written by MarshalJSON.
func (e *ConversationExport) UnmarshalJSON(data []byte) error {
	var raw struct {
		Timestamp time.Time `json:"timestamp"`
		Messages  []Message `json:"messages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Timestamp = raw.Timestamp.UTC()
	e.Messages = raw.Messages
	return nil
}
