// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transport

import (
	"errors"
	"fmt"
)

// Error categories. Every *Error wraps exactly one of these.
var (
	// ErrNetwork indicates the request never produced an HTTP response.
	ErrNetwork = errors.New("network error")

	// ErrStatus indicates the backend answered with a non-2xx status.
	ErrStatus = errors.New("unexpected status")

	// ErrDecode indicates the body could not be read or did not match the schema.
	ErrDecode = errors.New("malformed response")
)

// Error is a transport failure. It unwraps to both its category and cause.
type Error struct {
	Op     string // "chat" or "train"
	Kind   error  // ErrNetwork, ErrStatus or ErrDecode
	Status int    // HTTP status, 0 if none was received
	Err    error  // underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Op, e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the category and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Category returns a short label for logging: network, api or decode.
func (e *Error) Category() string {
	switch e.Kind {
	case ErrNetwork:
		return "network"
	case ErrStatus:
		return "api"
	case ErrDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Category returns the category label of err, or "unknown" if err is not a
// transport error.
func Category(err error) string {
	var te *Error
	if errors.As(err, &te) {
		return te.Category()
	}
	return "unknown"
}
