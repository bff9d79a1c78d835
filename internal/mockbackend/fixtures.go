// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockbackend

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/supportchat/internal/model"
)

// =============================================================================
// FIXTURES
// =============================================================================

// Fixture is one canned reply.
type Fixture struct {
	Response   string   `toml:"response"`
	Language   string   `toml:"language"`
	Intent     string   `toml:"intent"`
	Confidence float64  `toml:"confidence"`
	Sentiment  string   `toml:"sentiment"`
	Entities   []string `toml:"entities"`
}

// Rule is a fixture selected by keyword.
type Rule struct {
	Keywords []string `toml:"keywords"`
	Fixture
}

// Fixtures is a parsed fixture file.
type Fixtures struct {
	Default Fixture `toml:"default"`
	Rules   []Rule  `toml:"rule"`
}

// BuiltinFixtures is served when no fixture file is given.
const BuiltinFixtures = `
[default]
response = "I'm not sure what you mean. Can you try asking differently?"
intent = "unknown"
confidence = 0.3
sentiment = "neutral"

[[rule]]
keywords = ["hello", "hi", "hola", "bonjour", "hallo"]
response = "Hello! How can I help you today?"
intent = "greeting"
confidence = 0.95
sentiment = "positive"

[[rule]]
keywords = ["order", "package", "delivery", "pedido"]
response = "Let me check the status of your order. You can also track it at https://example.com/track"
intent = "order_status"
confidence = 0.92
sentiment = "neutral"

[[rule]]
keywords = ["refund", "return", "money back"]
response = "I can help with a refund. Please email support@example.com with your order number."
intent = "refund_request"
confidence = 0.74
sentiment = "negative"

[[rule]]
keywords = ["phone", "call", "agent", "human"]
response = "You can reach an agent at +1 (555) 123-4567."
intent = "contact_agent"
confidence = 0.61
sentiment = "neutral"

[[rule]]
keywords = ["bye", "goodbye", "adios"]
response = "Goodbye! Have a great day!"
intent = "goodbye"
confidence = 0.88
sentiment = "positive"
`

// ParseFixtures decodes fixture TOML and validates it.
func ParseFixtures(data string) (*Fixtures, error) {
	var f Fixtures
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFixtures reads and parses a fixture file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return ParseFixtures(string(data))
}

// Validate checks that every fixture has a response and a sane confidence.
func (f *Fixtures) Validate() error {
	var errs []error
	if strings.TrimSpace(f.Default.Response) == "" {
		errs = append(errs, errors.New("[default] response is required"))
	}
	for i, r := range f.Rules {
		if len(r.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("rule %d: at least one keyword is required", i+1))
		}
		if strings.TrimSpace(r.Response) == "" {
			errs = append(errs, fmt.Errorf("rule %d: response is required", i+1))
		}
		if r.Confidence < 0 || r.Confidence > 1 {
			errs = append(errs, fmt.Errorf("rule %d: confidence %v outside [0, 1]", i+1, r.Confidence))
		}
	}
	return errors.Join(errs...)
}

// Match returns the first rule whose keyword occurs in message
// (case-insensitive), or the default fixture.
func (f *Fixtures) Match(message string) (Fixture, bool) {
	lower := strings.ToLower(message)
	for _, r := range f.Rules {
		for _, kw := range r.Keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return r.Fixture, true
			}
		}
	}
	return f.Default, false
}

// Result renders a fixture as an exchange result. A requested language
// wins over the fixture's; with neither, "en" is reported.
func (fx Fixture) Result(language string) *model.ExchangeResult {
	lang := language
	if lang == "" {
		lang = fx.Language
	}
	if lang == "" {
		lang = "en"
	}
	res := &model.ExchangeResult{
		Response:   fx.Response,
		Language:   lang,
		Intent:     fx.Intent,
		Confidence: fx.Confidence,
		Sentiment:  model.Sentiment(fx.Sentiment),
	}
	for _, e := range fx.Entities {
		if text, label, ok := strings.Cut(e, ":"); ok {
			res.Entities = append(res.Entities, model.Entity{Text: text, Label: label})
		}
	}
	return res
}

// =============================================================================
// FIXTURE STORE
// =============================================================================

// FixtureStore holds the live fixtures and reloads them from disk.
type FixtureStore struct {
	mu       sync.RWMutex
	path     string
	fixtures *Fixtures
}

// NewFixtureStore loads path, or the built-in fixtures when path is empty.
func NewFixtureStore(path string) (*FixtureStore, error) {
	s := &FixtureStore{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the fixture file path ("" for built-in fixtures).
func (s *FixtureStore) Path() string {
	return s.path
}

// Reload re-reads the fixture file. On error the previous fixtures stay live.
func (s *FixtureStore) Reload() error {
	var (
		f   *Fixtures
		err error
	)
	if s.path == "" {
		f, err = ParseFixtures(BuiltinFixtures)
	} else {
		f, err = LoadFixtures(s.path)
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.fixtures = f
	s.mu.Unlock()
	return nil
}

// Match matches message against the live fixtures.
func (s *FixtureStore) Match(message string) (Fixture, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fixtures.Match(message)
}

// Len returns the number of keyword rules.
func (s *FixtureStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fixtures.Rules)
}
