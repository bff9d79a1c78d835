// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockbackend

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/supportchat/internal/model"
)

// Handled error texts.
const (
	ErrEmptyMessage   = "empty message"
	ErrMessageTooLong = "Message too long. Please keep it under 500 characters."
	ErrRateLimited    = "rate limit exceeded"

	// MaxMessageLength is the longest accepted message, in runes.
	MaxMessageLength = 500

	// TrainedMessage is returned by a successful /train.
	TrainedMessage = "Model trained successfully"
)

// Options configures the server.
type Options struct {
	// FixturePath is the TOML fixture file. Empty serves BuiltinFixtures.
	FixturePath string

	// RatePerSecond and Burst bound requests per client IP. Zero uses the
	// defaults; a negative rate disables limiting.
	RatePerSecond float64
	Burst         int

	// Latency delays every /chat reply, to exercise the typing indicator.
	Latency time.Duration

	Logger *zap.Logger
}

// Server is the mock chat backend.
type Server struct {
	store   *FixtureStore
	limiter *RateLimiter
	latency time.Duration
	logger  *zap.Logger
	engine  *gin.Engine
}

// New loads the fixtures and builds the router.
func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := NewFixtureStore(opts.FixturePath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:   store,
		latency: opts.Latency,
		logger:  logger.Named("mockbackend"),
	}
	if opts.RatePerSecond >= 0 {
		perSecond, burst := opts.RatePerSecond, opts.Burst
		if perSecond == 0 {
			perSecond = DefaultRate
		}
		if burst <= 0 {
			burst = DefaultBurst
		}
		s.limiter = NewRateLimiter(perSecond, burst)
	}
	s.engine = s.setupRouter()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Store returns the fixture store.
func (s *Server) Store() *FixtureStore {
	return s.store
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rules": s.store.Len()})
	})

	api := r.Group("/")
	if s.limiter != nil {
		api.Use(s.rateLimit())
	}
	api.POST("/chat", s.chat)
	api.POST("/train", s.train)
	return r
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusOK, gin.H{"error": ErrEmptyMessage})
		return
	}
	if len([]rune(message)) > MaxMessageLength {
		c.JSON(http.StatusOK, gin.H{"error": ErrMessageTooLong})
		return
	}

	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-c.Request.Context().Done():
			return
		}
	}

	language := ""
	if req.Language != nil && *req.Language != "auto" {
		language = *req.Language
	}
	fixture, matched := s.store.Match(message)
	s.logger.Debug("chat",
		zap.Bool("matched", matched),
		zap.String("intent", fixture.Intent),
		zap.String("session", c.GetHeader("X-Session-ID")),
	)
	c.JSON(http.StatusOK, fixture.Result(language))
}

func (s *Server) train(c *gin.Context) {
	if err := s.store.Reload(); err != nil {
		s.logger.Warn("fixture reload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Training failed: " + err.Error()})
		return
	}
	s.logger.Info("fixtures reloaded", zap.Int("rules", s.store.Len()))
	c.JSON(http.StatusOK, gin.H{"message": TrainedMessage})
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(c.ClientIP()) {
			s.logger.Debug("rate limited", zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": ErrRateLimited})
			return
		}
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)
		c.Next()
		s.logger.Info("request",
			zap.String("id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
// Fixture files are watched and the limiter is swept while running.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if s.store.Path() != "" {
		w, err := NewWatcher(s.store, s.logger)
		if err != nil {
			s.logger.Warn("fixture watch disabled", zap.Error(err))
		} else {
			defer w.Close()
			go w.Run(ctx)
		}
	}
	if s.limiter != nil {
		go s.sweepLimiters(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting mock backend", zap.String("address", addr), zap.Int("rules", s.store.Len()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down mock backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) sweepLimiters(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.limiter.Cleanup(); n > 0 {
				s.logger.Debug("dropped idle rate limiters", zap.Int("count", n))
			}
		}
	}
}
