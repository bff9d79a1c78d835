// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mockbackend serves the chat backend HTTP contract from a TOML
// fixture file, for developing and demoing the client without the NLU
// service.
//
// It does no language detection or classification: the first rule whose
// keyword appears in the message wins, otherwise the [default] fixture is
// returned.
//
// # Key Types
//
//   - Fixtures: Parsed rule set
//   - FixtureStore: Thread-safe holder that reloads from disk
//   - RateLimiter: Per-client-IP token buckets
//   - Server: gin router for /chat, /train and /health
//
// # Fixture Format
//
//	[default]
//	response = "I'm not sure what you mean. Can you try asking differently?"
//	intent = "unknown"
//	confidence = 0.3
//
//	[[rule]]
//	keywords = ["order", "package"]
//	response = "Let me check the status of your order."
//	language = "en"
//	intent = "order_status"
//	confidence = 0.92
//	sentiment = "neutral"
//
// # Usage
//
//	srv, err := mockbackend.New(mockbackend.Options{FixturePath: "fixtures.toml"})
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx, ":5000")
package mockbackend
