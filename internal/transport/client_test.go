// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSend_PostsMessageAndLanguage(t *testing.T) {
	tests := []struct {
		name     string
		override string
		wantLang any
	}{
		{name: "auto detect sends null", override: "", wantLang: nil},
		{name: "explicit override", override: "es", wantLang: "es"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, ChatPath, r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "sess-1", r.Header.Get("X-Session-ID"))
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.Write([]byte(`{"response":"ok","language":"en","intent":"greeting","confidence":0.9}`))
			}))
			defer server.Close()

			client := NewClient(server.URL+"/", WithSessionID("sess-1"))
			res, err := client.Send(context.Background(), "hello", tc.override)
			require.NoError(t, err)
			assert.Equal(t, "ok", res.Response)

			assert.Equal(t, "hello", got["message"])
			lang, present := got["language"]
			assert.True(t, present, "language key must always be sent")
			assert.Equal(t, tc.wantLang, lang)
		})
	}
}

func TestSend_ScenarioDecode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"Let me check...","language":"en","intent":"order_status","confidence":0.92,"sentiment":"neutral","entities":[]}`))
	}))
	defer server.Close()

	res, err := NewClient(server.URL).Send(context.Background(), "Where is my order #AB1234?", "")
	require.NoError(t, err)
	assert.Equal(t, "Let me check...", res.Response)
	assert.Equal(t, "en", res.Language)
	assert.Equal(t, "order_status", res.Intent)
	assert.InDelta(t, 0.92, res.Confidence, 1e-9)
	assert.False(t, res.Failed())
}

func TestSend_MalformedEntitiesAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"Let me check...","language":"en","intent":"order_status","confidence":0.92,"entities":[["AB1234"],["AB1234","ORDER","extra"],42]}`))
	}))
	defer server.Close()

	res, err := NewClient(server.URL).Send(context.Background(), "order AB1234", "")
	require.NoError(t, err)
	assert.Equal(t, "Let me check...", res.Response)
	assert.Empty(t, res.Entities)
}

func TestSend_HandledErrorIsNotTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Message too long"}`))
	}))
	defer server.Close()

	res, err := NewClient(server.URL).Send(context.Background(), "x", "")
	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Equal(t, "Message too long", res.Error)
}

func TestSend_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind error
		category string
	}{
		{name: "server error", status: 500, body: `{"error":"Internal server error"}`, wantKind: ErrStatus, category: "api"},
		{name: "rate limited", status: 429, body: ``, wantKind: ErrStatus, category: "api"},
		{name: "not json", status: 200, body: `<html>`, wantKind: ErrDecode, category: "decode"},
		{name: "wrong schema", status: 200, body: `{"status":"healthy"}`, wantKind: ErrDecode, category: "decode"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}))
			defer server.Close()

			res, err := NewClient(server.URL).Send(context.Background(), "x", "")
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tc.wantKind)
			assert.Equal(t, tc.category, Category(err))
		})
	}
}

func TestSend_StatusErrorCarriesBackendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Message is required"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Send(context.Background(), "x", "")
	var te *Error
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusBadRequest, te.Status)
	assert.Contains(t, err.Error(), "Message is required")
}

func TestSend_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url).Send(context.Background(), "x", "")
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "network", Category(err))
}

func TestSend_OversizeBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"`))
		w.Write([]byte(strings.Repeat("a", MaxResponseSize)))
		w.Write([]byte(`"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Send(context.Background(), "x", "")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestSend_NeverRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Send(context.Background(), "x", "")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSend_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewClient(server.URL, WithTimeout(50*time.Millisecond)).Send(context.Background(), "x", "")
	assert.ErrorIs(t, err, ErrNetwork)
}

// =============================================================================
// RETRAIN TESTS
// =============================================================================

func TestRetrain(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    error
		wantFailed bool
	}{
		{name: "empty object", status: 200, body: `{}`},
		{name: "message", status: 200, body: `{"message":"Model trained successfully"}`},
		{name: "empty body", status: 200, body: ``},
		{name: "backend error", status: 200, body: `{"error":"no data"}`, wantFailed: true},
		{name: "http 500 with error", status: 500, body: `{"error":"Training failed: boom"}`, wantFailed: true},
		{name: "http 500 without error", status: 500, body: `{"message":"oops"}`, wantErr: ErrStatus},
		{name: "http 502 html", status: 502, body: `<html>bad gateway</html>`, wantErr: ErrStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, TrainPath, r.URL.Path)
				assert.Empty(t, r.Header.Get("Content-Type"))
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}))
			defer server.Close()

			res, err := NewClient(server.URL).Retrain(context.Background())
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantFailed, res.Failed())
		})
	}
}

func TestRetrain_FailureDetailKept(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"Training failed: no training data"}`)
	}))
	defer server.Close()

	res, err := NewClient(server.URL).Retrain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Training failed: no training data", res.Error)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("  ").BaseURL())
}

func TestError_Message(t *testing.T) {
	err := &Error{Op: "chat", Kind: ErrStatus, Status: 502}
	assert.Equal(t, "chat: unexpected status (HTTP 502)", err.Error())
	assert.Equal(t, "unknown", Category(errors.New("other")))
}
