// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the wire format for message timestamps: UTC with
// millisecond precision and a trailing Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Support"
	default:
		return string(s)
	}
}

// =============================================================================
// DISPLAY TYPE
// =============================================================================

// DisplayType selects how a message is styled.
type DisplayType string

const (
	TypeNormal  DisplayType = "normal"
	TypeError   DisplayType = "error"
	TypeSuccess DisplayType = "success"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in the conversation log. Messages are values and
// are never mutated after they are appended.
type Message struct {
	Text      string      `json:"text"`
	Sender    Sender      `json:"sender"`
	Type      DisplayType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
}

// now is swapped in tests.
var now = time.Now

// NewMessage creates a message stamped with the current time.
func NewMessage(text string, sender Sender, typ DisplayType) Message {
	if typ == "" {
		typ = TypeNormal
	}
	return Message{
		Text:      text,
		Sender:    sender,
		Type:      typ,
		Timestamp: now().UTC(),
	}
}

// NewUserMessage creates a normal message from the user.
func NewUserMessage(text string) Message {
	return NewMessage(text, SenderUser, TypeNormal)
}

// NewBotMessage creates a bot message of the given display type.
func NewBotMessage(text string, typ DisplayType) Message {
	return NewMessage(text, SenderBot, typ)
}

// IsUser returns true if the user authored the message.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// IsBot returns true if the bot authored the message.
func (m Message) IsBot() bool {
	return m.Sender == SenderBot
}

// IsError returns true if the message is styled as an error.
func (m Message) IsError() bool {
	return m.Type == TypeError
}

// FormatTime returns the timestamp as shown next to a message bubble.
func (m Message) FormatTime() string {
	return m.Timestamp.Local().Format("15:04")
}

type messageJSON struct {
	Text      string      `json:"text"`
	Sender    Sender      `json:"sender"`
	Type      DisplayType `json:"type"`
	Timestamp string      `json:"timestamp"`
}

// MarshalJSON encodes the timestamp with TimestampLayout.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{
		Text:      m.Text,
		Sender:    m.Sender,
		Type:      m.Type,
		Timestamp: m.Timestamp.UTC().Format(TimestampLayout),
	})
}

// UnmarshalJSON accepts any RFC 3339 timestamp.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw messageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ts, err := time.Parse(time.RFC3339Nano, raw.Timestamp)
	if err != nil {
		return fmt.Errorf("invalid message timestamp %q: %w", raw.Timestamp, err)
	}
	*m = Message{Text: raw.Text, Sender: raw.Sender, Type: raw.Type, Timestamp: ts.UTC()}
	return nil
}
