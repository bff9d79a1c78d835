// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/supportchat/internal/model"
	"github.com/jeranaias/supportchat/internal/widget"
)

// =============================================================================
// RENDERER MESSAGES
// =============================================================================

// AppendMsg adds a message to the transcript.
type AppendMsg struct {
	Message model.Message
}

// TypingMsg shows or hides the typing indicator.
type TypingMsg struct {
	Visible bool
}

// StatusMsg replaces the status bar fields.
type StatusMsg struct {
	Status widget.Status
}

// ResetMsg replaces the transcript with the welcome message.
type ResetMsg struct {
	Welcome model.Message
	Status  widget.Status
}

// NoticeMsg shows an inline notice that is not part of the conversation.
type NoticeMsg struct {
	Text string
}

// =============================================================================
// COMMAND RESULTS
// =============================================================================

// exchangeDoneMsg is returned when a Submit call has finished. Sent is false
// if the controller refused the text.
type exchangeDoneMsg struct {
	Text string
	Sent bool
}

// actionDoneMsg is returned when a registry action has finished.
type actionDoneMsg struct {
	Action string
	Err    error
}

// voiceResultMsg carries a voice transcript or failure.
type voiceResultMsg struct {
	Text string
	Err  error
}

// TranscriptMsg fills the input with a voice transcript from the /voice
// command. It is never sent automatically.
type TranscriptMsg struct {
	Text string
}
