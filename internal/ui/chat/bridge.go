// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/supportchat/internal/model"
	"github.com/jeranaias/supportchat/internal/widget"
)

// Bridge is a widget.Renderer that forwards every call to a running Bubble
// Tea program. Calls made before Attach are dropped.
type Bridge struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

var _ widget.Renderer = (*Bridge)(nil)

// NewBridge creates a detached bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach routes messages to p.
func (b *Bridge) Attach(p *tea.Program) {
	b.AttachFunc(p.Send)
}

// AttachFunc routes messages to send.
func (b *Bridge) AttachFunc(send func(tea.Msg)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = send
}

func (b *Bridge) forward(msg tea.Msg) {
	b.mu.RLock()
	send := b.send
	b.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}

func (b *Bridge) AppendMessage(m model.Message) { b.forward(AppendMsg{Message: m}) }
func (b *Bridge) ShowTyping()                   { b.forward(TypingMsg{Visible: true}) }
func (b *Bridge) HideTyping()                   { b.forward(TypingMsg{Visible: false}) }
func (b *Bridge) UpdateStatus(s widget.Status)  { b.forward(StatusMsg{Status: s}) }
func (b *Bridge) Notice(text string)            { b.forward(NoticeMsg{Text: text}) }

func (b *Bridge) Reset(welcome model.Message, s widget.Status) {
	b.forward(ResetMsg{Welcome: welcome, Status: s})
}
