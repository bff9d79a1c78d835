// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"

	"github.com/jeranaias/supportchat/internal/model"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Renderer turns controller state changes into visible output. Calls may come
// from any goroutine; implementations that own a UI loop must marshal them.
type Renderer interface {
	AppendMessage(msg model.Message)
	ShowTyping()
	HideTyping()
	UpdateStatus(status Status)
	Reset(welcome model.Message, status Status)
	Notice(text string)
}

// Transport sends exchanges to the backend.
type Transport interface {
	Send(ctx context.Context, text, override string) (*model.ExchangeResult, error)
	Retrain(ctx context.Context) (*model.RetrainResult, error)
}

// Analytics records completed exchanges.
type Analytics interface {
	Record(language, intent string, confidence *float64)
}

// NopRenderer discards every call.
type NopRenderer struct{}

func (NopRenderer) AppendMessage(model.Message) {}
func (NopRenderer) ShowTyping()                 {}
func (NopRenderer) HideTyping()                 {}
func (NopRenderer) UpdateStatus(Status)         {}
func (NopRenderer) Reset(model.Message, Status) {}
func (NopRenderer) Notice(string)               {}

type nopAnalytics struct{}

func (nopAnalytics) Record(string, string, *float64) {}
