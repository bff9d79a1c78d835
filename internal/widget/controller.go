// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/supportchat/internal/model"
	"github.com/jeranaias/supportchat/internal/transport"
)

// User-facing texts.
const (
	WelcomeText        = "Hello! I'm your multilingual customer support assistant. How can I help you today?"
	BackendErrorText   = "Sorry, I encountered an error. Please try again."
	TransportErrorText = "Sorry, I'm having trouble connecting. Please try again."

	TrainingStartText   = "Training model... This may take a moment."
	TrainingSuccessText = "Model trained successfully!"
	TrainingRetryText   = "Training failed. Please try again."
	trainingFailedFmt   = "Training failed: %s"
)

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller drives one chat conversation.
type Controller struct {
	transport Transport
	renderer  Renderer
	analytics Analytics
	logger    *zap.Logger
	now       func() time.Time

	welcome string
	log     *model.ConversationLog

	// inFlight is true while a Submit is waiting for the backend.
	inFlight atomic.Bool

	mu       sync.RWMutex
	status   Status
	override string
	hooks    []func(model.Message)

	actions  *Registry
	features []Feature
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l.Named("widget")
		}
	}
}

// WithWelcome replaces the welcome text.
func WithWelcome(text string) Option {
	return func(c *Controller) {
		if strings.TrimSpace(text) != "" {
			c.welcome = text
		}
	}
}

// WithLanguage sets the initial language override. Invalid codes fall back
// to auto-detect.
func WithLanguage(code string) Option {
	return func(c *Controller) {
		if norm, err := NormalizeLanguage(code); err == nil {
			c.override = norm
		}
	}
}

// WithFeatures attaches feature modules in order.
func WithFeatures(features ...Feature) Option {
	return func(c *Controller) {
		c.features = append(c.features, features...)
	}
}

// WithClock overrides the time source used for export timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a controller. A nil renderer or analytics discards output.
func New(t Transport, r Renderer, a Analytics, opts ...Option) *Controller {
	if r == nil {
		r = NopRenderer{}
	}
	if a == nil {
		a = nopAnalytics{}
	}
	c := &Controller{
		transport: t,
		renderer:  r,
		analytics: a,
		logger:    zap.NewNop(),
		now:       time.Now,
		welcome:   WelcomeText,
		actions:   NewRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log = model.NewConversationLog(c.welcomeMessage())
	c.status = placeholderStatus(c.override)
	c.registerBuiltins()

	for _, f := range c.features {
		f.Attach(c)
	}
	return c
}

func (c *Controller) welcomeMessage() model.Message {
	return model.NewBotMessage(c.welcome, model.TypeNormal)
}

func (c *Controller) registerBuiltins() {
	c.actions.Register(&Action{
		Name:        ActionClear,
		Aliases:     []string{"c"},
		Description: "Clear the conversation",
		Handler: func(ctx context.Context, args []string) error {
			c.Clear()
			return nil
		},
	})
	c.actions.Register(&Action{
		Name:        ActionTrain,
		Description: "Retrain the backend intent model",
		Handler: func(ctx context.Context, args []string) error {
			c.Retrain(ctx)
			return nil
		},
	})
	c.actions.Register(&Action{
		Name:        ActionLanguage,
		Aliases:     []string{"language"},
		Description: "Set the reply language (auto to detect)",
		Usage:       "lang <code|auto>",
		Handler: func(ctx context.Context, args []string) error {
			code := AutoLanguage
			if len(args) > 0 {
				code = args[0]
			}
			return c.SetLanguageOverride(code)
		},
	})
}

// =============================================================================
// EXCHANGES
// =============================================================================

// Submit sends text with the current language override. It returns false
// without side effects if the trimmed text is empty or a request is already
// in flight.
func (c *Controller) Submit(ctx context.Context, text string) bool {
	return c.SubmitWithLanguage(ctx, text, c.LanguageOverride())
}

// SubmitWithLanguage is Submit with an explicit override ("" = auto-detect).
func (c *Controller) SubmitWithLanguage(ctx context.Context, text, override string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return false
	}

	c.record(model.NewUserMessage(text))
	c.renderer.ShowTyping()

	res, err := c.transport.Send(ctx, text, override)
	c.renderer.HideTyping()

	var reply model.Message
	switch {
	case err != nil:
		c.logger.Warn("chat request failed",
			zap.String("category", transport.Category(err)),
			zap.Error(err),
		)
		reply = model.NewBotMessage(TransportErrorText, model.TypeError)
		c.record(reply)
	case res.Failed():
		c.logger.Info("backend reported error", zap.String("error", res.Error))
		reply = model.NewBotMessage(BackendErrorText, model.TypeError)
		c.record(reply)
	default:
		status := statusFromResult(res)
		c.mu.Lock()
		c.status = status
		c.mu.Unlock()

		reply = model.NewBotMessage(res.Response, model.TypeNormal)
		c.record(reply)
		c.renderer.UpdateStatus(status)
		confidence := res.Confidence
		c.analytics.Record(res.Language, res.Intent, &confidence)
		c.logger.Debug("exchange completed",
			zap.String("language", res.Language),
			zap.String("intent", res.Intent),
			zap.Float64("confidence", res.Confidence),
		)
	}

	// Hooks run after the exchange is over so a slow adapter never holds the
	// input busy.
	c.inFlight.Store(false)
	c.fireHooks(reply)
	return true
}

// Retrain asks the backend to retrain its model and reports progress in the
// conversation. It ignores the in-flight flag.
func (c *Controller) Retrain(ctx context.Context) {
	c.append(model.NewBotMessage(TrainingStartText, model.TypeNormal))

	res, err := c.transport.Retrain(ctx)
	switch {
	case err != nil:
		c.logger.Warn("train request failed",
			zap.String("category", transport.Category(err)),
			zap.Error(err),
		)
		c.append(model.NewBotMessage(TrainingRetryText, model.TypeError))
	case res.Failed():
		c.append(model.NewBotMessage(fmt.Sprintf(trainingFailedFmt, res.Error), model.TypeError))
	default:
		c.append(model.NewBotMessage(TrainingSuccessText, model.TypeSuccess))
	}
}

// append adds msg to the log, renders it and fires bot hooks.
func (c *Controller) append(msg model.Message) {
	c.record(msg)
	c.fireHooks(msg)
}

// record adds msg to the log and renders it.
func (c *Controller) record(msg model.Message) {
	c.log.Append(msg)
	c.renderer.AppendMessage(msg)
}

func (c *Controller) fireHooks(msg model.Message) {
	if !msg.IsBot() {
		return
	}
	c.mu.RLock()
	hooks := make([]func(model.Message), len(c.hooks))
	copy(hooks, c.hooks)
	c.mu.RUnlock()
	for _, h := range hooks {
		h(msg)
	}
}

// =============================================================================
// LOG OPERATIONS
// =============================================================================

// Clear resets the conversation to the welcome message and the status to
// its placeholder.
func (c *Controller) Clear() {
	welcome := c.welcomeMessage()
	c.log.Reset(welcome)

	c.mu.Lock()
	c.status = placeholderStatus(c.override)
	status := c.status
	c.mu.Unlock()

	c.renderer.Reset(welcome, status)
}

// ExportLog returns a timestamped copy of the conversation.
func (c *Controller) ExportLog() model.ConversationExport {
	return c.log.Export(c.now())
}

// Messages returns a copy of the conversation.
func (c *Controller) Messages() []model.Message {
	return c.log.Messages()
}

// LastBotMessage returns the newest bot message.
func (c *Controller) LastBotMessage() (model.Message, bool) {
	return c.log.LastFrom(model.SenderBot)
}

// =============================================================================
// STATE
// =============================================================================

// SetLanguageOverride changes the language sent with each message. "" and
// "auto" select auto-detect. The language label is refreshed.
func (c *Controller) SetLanguageOverride(code string) error {
	norm, err := NormalizeLanguage(code)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.override = norm
	c.status.Language = norm
	status := c.status
	c.mu.Unlock()

	c.renderer.UpdateStatus(status)
	return nil
}

// LanguageOverride returns the current override, "" for auto-detect.
func (c *Controller) LanguageOverride() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.override
}

// Status returns the live status fields.
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// InFlight returns true while a Submit is waiting for the backend.
func (c *Controller) InFlight() bool {
	return c.inFlight.Load()
}

// Welcome returns the welcome message text.
func (c *Controller) Welcome() string {
	return c.welcome
}

// OnBotMessage registers fn to run after every bot message is appended.
func (c *Controller) OnBotMessage(fn func(model.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, fn)
}

// Actions returns the action registry.
func (c *Controller) Actions() *Registry {
	return c.actions
}

// Notice forwards an inline notice to the renderer without touching the log.
func (c *Controller) Notice(text string) {
	c.renderer.Notice(text)
}

// Features returns the attached features in attach order.
func (c *Controller) Features() []Feature {
	out := make([]Feature, len(c.features))
	copy(out, c.features)
	return out
}

// Feature returns the attached feature with the given name.
func (c *Controller) Feature(name string) (Feature, bool) {
	for _, f := range c.features {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}
