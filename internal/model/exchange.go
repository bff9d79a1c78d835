// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// SENTIMENT
// =============================================================================

// Sentiment is the backend's coarse sentiment label. Unknown labels are kept
// verbatim so they can still be displayed.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Known returns true for the three labels the backend documents.
func (s Sentiment) Known() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// =============================================================================
// CHAT ENDPOINT
// =============================================================================

// ChatRequest is the body posted to the chat endpoint. A nil Language asks
// the backend to auto-detect.
type ChatRequest struct {
	Message  string  `json:"message"`
	Language *string `json:"language"`
}

// Entity is a named entity extracted by the backend. On the wire it is a
// two-element array: [text, label].
type Entity struct {
	Text  string
	Label string
}

// UnmarshalJSON accepts either [text, label] or {"text":..,"label":..}.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("entity: want 2 elements, got %d", len(pair))
		}
		e.Text, e.Label = pair[0], pair[1]
		return nil
	}
	var obj struct {
		Text  string `json:"text"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("entity: %w", err)
	}
	e.Text, e.Label = obj.Text, obj.Label
	return nil
}

// MarshalJSON encodes the entity as [text, label].
func (e Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Text, e.Label})
}

// Entities is the entity list of a reply. Entities are informational only,
// so decoding never fails: malformed entries are skipped and a value that is
// not a list decodes as empty.
type Entities []Entity

// UnmarshalJSON decodes the list, dropping entries that are not entities.
func (es *Entities) UnmarshalJSON(data []byte) error {
	*es = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, r := range raw {
		var e Entity
		if err := json.Unmarshal(r, &e); err != nil {
			continue
		}
		*es = append(*es, e)
	}
	return nil
}

// ExchangeResult is the structured reply of the chat endpoint. A non-empty
// Error marks a backend-handled failure; the other fields are then ignored.
type ExchangeResult struct {
	Response   string    `json:"response"`
	Language   string    `json:"language"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Sentiment  Sentiment `json:"sentiment,omitempty"`
	Entities   Entities  `json:"entities,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Failed returns true if the backend reported an error.
func (r *ExchangeResult) Failed() bool {
	return r.Error != ""
}

// =============================================================================
// TRAIN ENDPOINT
// =============================================================================

// RetrainResult is the reply of the train endpoint. An empty Error means the
// model was retrained.
type RetrainResult struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failed returns true if the backend reported an error.
func (r *RetrainResult) Failed() bool {
	return r.Error != ""
}
