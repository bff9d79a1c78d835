// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for support conversations.
//
// This package defines the domain types shared by the transport, the widget
// controller, the renderers and the exporters.
//
// # Key Types
//
//   - Message: One immutable chat entry (text, sender, display type, timestamp)
//   - ConversationLog: Ordered, append-only message log, safe for concurrent use
//   - ExchangeResult: Structured reply returned by the backend chat endpoint
//   - RetrainResult: Reply returned by the backend train endpoint
//   - Sender, DisplayType, Sentiment: Small string enumerations
//
// # Usage
//
// Build a log seeded with the welcome message:
//
//	log := model.NewConversationLog(model.NewBotMessage(welcome, model.TypeNormal))
//	log.Append(model.NewUserMessage("Where is my order #AB1234?"))
//	for _, msg := range log.Messages() {
//	    fmt.Println(msg.Sender.DisplayName(), msg.Text)
//	}
package model
