// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transport is the HTTP client for the support backend.
//
// It posts user messages to the chat endpoint and retrain requests to the
// train endpoint, and decodes their JSON replies into model types. The client
// never retries: every failure is reported once to the caller.
//
// # Key Types
//
//   - Client: Backend client configured with functional options
//   - Error: Categorised failure (network, api, decode) wrapping the cause
//
// # Usage
//
//	client := transport.NewClient("http://127.0.0.1:5000",
//	    transport.WithTimeout(30*time.Second),
//	    transport.WithLogger(logger),
//	)
//	res, err := client.Send(ctx, "Where is my order?", "")
//	if errors.Is(err, transport.ErrNetwork) {
//	    // backend unreachable
//	}
package transport
