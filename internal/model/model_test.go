// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage_DefaultsType(t *testing.T) {
	msg := NewMessage("hi", SenderBot, "")
	assert.Equal(t, TypeNormal, msg.Type)
	assert.True(t, msg.IsBot())
	assert.False(t, msg.IsUser())
}

func TestSender_DisplayName(t *testing.T) {
	tests := []struct {
		sender Sender
		want   string
	}{
		{SenderUser, "You"},
		{SenderBot, "Support"},
		{Sender("agent"), "agent"},
	}
	for _, tc := range tests {
		t.Run(string(tc.sender), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sender.DisplayName())
		})
	}
}

func TestMessage_JSONFieldNames(t *testing.T) {
	fixedNow(t, time.Date(2025, 3, 4, 10, 11, 12, 345_000_000, time.FixedZone("X", 3600)))

	data, err := json.Marshal(NewBotMessage("Sorry", TypeError))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"text":"Sorry","sender":"bot","type":"error","timestamp":"2025-03-04T09:11:12.345Z"}`,
		string(data))

	var back Message
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "Sorry", back.Text)
	assert.True(t, back.IsError())
	assert.Equal(t, 345_000_000, back.Timestamp.Nanosecond())
}

func TestMessage_UnmarshalBadTimestamp(t *testing.T) {
	var msg Message
	err := json.Unmarshal([]byte(`{"text":"x","sender":"user","type":"normal","timestamp":"yesterday"}`), &msg)
	assert.Error(t, err)
}

// =============================================================================
// CONVERSATION LOG TESTS
// =============================================================================

func TestConversationLog_AppendAndOrder(t *testing.T) {
	log := NewConversationLog(NewBotMessage("welcome", TypeNormal))
	log.Append(NewUserMessage("one"))
	log.Append(NewBotMessage("two", TypeNormal))

	msgs := log.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"welcome", "one", "two"}, []string{msgs[0].Text, msgs[1].Text, msgs[2].Text})

	// Returned slice is a copy.
	msgs[0].Text = "mutated"
	assert.Equal(t, "welcome", log.Messages()[0].Text)
}

func TestConversationLog_LastFrom(t *testing.T) {
	log := NewConversationLog()
	_, ok := log.Last()
	assert.False(t, ok)

	log.Append(NewBotMessage("a", TypeNormal))
	log.Append(NewUserMessage("b"))

	bot, ok := log.LastFrom(SenderBot)
	require.True(t, ok)
	assert.Equal(t, "a", bot.Text)

	last, ok := log.Last()
	require.True(t, ok)
	assert.Equal(t, "b", last.Text)
}

func TestConversationLog_Reset(t *testing.T) {
	log := NewConversationLog()
	for i := 0; i < 5; i++ {
		log.Append(NewUserMessage("x"))
	}
	log.Reset(NewBotMessage("welcome", TypeNormal))
	assert.Equal(t, 1, log.Len())

	log.Reset()
	assert.Equal(t, 0, log.Len())
}

func TestConversationLog_ConcurrentAppend(t *testing.T) {
	log := NewConversationLog()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Append(NewUserMessage("x"))
			_ = log.Messages()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, log.Len())
}

// =============================================================================
// EXCHANGE TESTS
// =============================================================================

func TestExchangeResult_Decode(t *testing.T) {
	body := `{"response":"Let me check","language":"en","intent":"order_status",
		"confidence":0.92,"sentiment":"neutral","entities":[["AB1234","ORDER"]]}`

	var res ExchangeResult
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.False(t, res.Failed())
	assert.Equal(t, "order_status", res.Intent)
	assert.InDelta(t, 0.92, res.Confidence, 1e-9)
	assert.Equal(t, SentimentNeutral, res.Sentiment)
	require.Len(t, res.Entities, 1)
	assert.Equal(t, Entity{Text: "AB1234", Label: "ORDER"}, res.Entities[0])
}

func TestExchangeResult_MalformedEntitiesIgnored(t *testing.T) {
	tests := []struct {
		name     string
		entities string
		want     int
	}{
		{name: "bad entries skipped", entities: `[["AB1234","ORDER"],["lonely"],[1,2],"x",{"text":"Paris","label":"GPE"}]`, want: 2},
		{name: "not a list", entities: `"AB1234"`, want: 0},
		{name: "null", entities: `null`, want: 0},
		{name: "object", entities: `{"AB1234":"ORDER"}`, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := `{"response":"ok","language":"en","intent":"greeting","confidence":0.5,"entities":` + tc.entities + `}`
			var res ExchangeResult
			require.NoError(t, json.Unmarshal([]byte(body), &res))
			assert.Equal(t, "ok", res.Response)
			assert.Len(t, res.Entities, tc.want)
		})
	}
}

func TestExchangeResult_ErrorField(t *testing.T) {
	var res ExchangeResult
	require.NoError(t, json.Unmarshal([]byte(`{"error":"Message is required"}`), &res))
	assert.True(t, res.Failed())
}

func TestEntity_Forms(t *testing.T) {
	var e Entity
	require.NoError(t, json.Unmarshal([]byte(`{"text":"Paris","label":"GPE"}`), &e))
	assert.Equal(t, "GPE", e.Label)

	assert.Error(t, json.Unmarshal([]byte(`["only-one"]`), &e))

	data, err := json.Marshal(Entity{Text: "Paris", Label: "GPE"})
	require.NoError(t, err)
	assert.JSONEq(t, `["Paris","GPE"]`, string(data))
}

func TestSentiment_Known(t *testing.T) {
	assert.True(t, SentimentNegative.Known())
	assert.False(t, Sentiment("ecstatic").Known())
}

func TestChatRequest_NullLanguage(t *testing.T) {
	data, err := json.Marshal(ChatRequest{Message: "hola"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"hola","language":null}`, string(data))
}

func TestConversationLog_ExportRoundTrip(t *testing.T) {
	log := NewConversationLog(NewBotMessage("welcome", TypeNormal))
	log.Append(NewUserMessage("a"))
	log.Append(NewBotMessage("b", TypeError))

	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	doc := log.Export(at)
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"timestamp":"2025-06-01T08:00:00.000Z"`)

	var back ConversationExport
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back.Messages, 3)
	assert.Equal(t, []string{"welcome", "a", "b"},
		[]string{back.Messages[0].Text, back.Messages[1].Text, back.Messages[2].Text})
	assert.True(t, back.Timestamp.Equal(at))
}

func TestConversationExport_EmptyMessagesArray(t *testing.T) {
	data, err := json.Marshal(ConversationExport{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"messages":[]`)
}
