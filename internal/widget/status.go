// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"github.com/jeranaias/supportchat/internal/analytics"
	"github.com/jeranaias/supportchat/internal/model"
)

// Status holds the live fields shown next to the chat.
type Status struct {
	// Language is the code behind the language label. Empty means the
	// override is auto-detect and no exchange has reported a language yet.
	Language string

	// Set is true once an exchange has filled Intent and Confidence.
	Set        bool
	Intent     string
	Sentiment  model.Sentiment
	Confidence float64
}

// placeholderStatus returns the unset status for the given override.
func placeholderStatus(override string) Status {
	return Status{Language: override}
}

// statusFromResult builds the status reported by a successful exchange.
func statusFromResult(res *model.ExchangeResult) Status {
	return Status{
		Language:   res.Language,
		Set:        true,
		Intent:     res.Intent,
		Sentiment:  res.Sentiment,
		Confidence: res.Confidence,
	}
}

// AutoDetect returns true if the language label should read "Auto-detect".
func (s Status) AutoDetect() bool {
	return s.Language == ""
}

// Band returns the confidence band, or "" if no exchange has completed.
func (s Status) Band() analytics.Band {
	if !s.Set {
		return ""
	}
	return analytics.BandOf(s.Confidence)
}
