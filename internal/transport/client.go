// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/supportchat/internal/model"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is the development address of the backend.
	DefaultBaseURL = "http://127.0.0.1:5000"

	// ChatPath and TrainPath are the backend endpoints.
	ChatPath  = "/chat"
	TrainPath = "/train"

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "supportchat/1.0"
)

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the support backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	sessionID  string
	userAgent  string
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithSessionID sets the X-Session-ID header value.
func WithSessionID(id string) Option {
	return func(c *Client) {
		c.sessionID = id
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l.Named("transport")
		}
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		userAgent:  DefaultUserAgent,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// ENDPOINTS
// =============================================================================

// chatReply mirrors model.ExchangeResult with presence tracking for the two
// fields that decide whether a body matches the schema.
type chatReply struct {
	Response *string `json:"response"`
	Error    *string `json:"error"`
}

// Send posts text to the chat endpoint. An empty override asks the backend to
// auto-detect the language. A backend-handled failure is returned as a result
// with Error set and a nil error.
func (c *Client) Send(ctx context.Context, text, override string) (*model.ExchangeResult, error) {
	req := model.ChatRequest{Message: text}
	if override != "" {
		lang := override
		req.Language = &lang
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &Error{Op: "chat", Kind: ErrDecode, Err: err}
	}

	body, status, err := c.post(ctx, "chat", ChatPath, payload)
	if err != nil {
		return nil, err
	}

	var shape chatReply
	if err := json.Unmarshal(body, &shape); err != nil {
		return nil, &Error{Op: "chat", Kind: ErrDecode, Status: status, Err: err}
	}
	if shape.Response == nil && shape.Error == nil {
		return nil, &Error{Op: "chat", Kind: ErrDecode, Status: status,
			Err: errors.New("body has neither response nor error")}
	}

	var res model.ExchangeResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, &Error{Op: "chat", Kind: ErrDecode, Status: status, Err: err}
	}
	return &res, nil
}

// Retrain asks the backend to retrain its intent model. The backend reports
// a failed training run as a non-2xx reply with an error field; that is
// returned as a result with Error set and a nil error.
func (c *Client) Retrain(ctx context.Context) (*model.RetrainResult, error) {
	body, status, err := c.post(ctx, "train", TrainPath, nil)
	if err != nil {
		var terr *Error
		if errors.As(err, &terr) && terr.Kind == ErrStatus {
			var res model.RetrainResult
			if json.Unmarshal(body, &res) == nil && res.Failed() {
				c.logger.Info("backend reported training failure",
					zap.Int("status", status),
					zap.String("error", res.Error),
				)
				return &res, nil
			}
		}
		return nil, err
	}
	var res model.RetrainResult
	if len(bytes.TrimSpace(body)) == 0 {
		return &res, nil
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, &Error{Op: "train", Kind: ErrDecode, Status: status, Err: err}
	}
	return &res, nil
}

// post performs a single POST and returns the response body. A non-2xx
// status yields an ErrStatus error alongside the body.
func (c *Client) post(ctx context.Context, op, path string, payload []byte) ([]byte, int, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, &Error{Op: op, Kind: ErrNetwork, Err: err}
	}
	c.setHeaders(req, payload != nil)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &Error{Op: op, Kind: ErrNetwork, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("backend response",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	body, err := readResponse(resp)
	if err != nil {
		return nil, resp.StatusCode, &Error{Op: op, Kind: ErrDecode, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, resp.StatusCode, &Error{Op: op, Kind: ErrStatus, Status: resp.StatusCode,
			Err: statusDetail(body)}
	}
	return body, resp.StatusCode, nil
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.sessionID != "" {
		req.Header.Set("X-Session-ID", c.sessionID)
	}
}

// readResponse reads the response body, rejecting bodies over MaxResponseSize.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// statusDetail extracts the backend's error message from a non-2xx body.
func statusDetail(body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return errors.New(e.Error)
	}
	return nil
}
