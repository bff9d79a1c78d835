// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/supportchat/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete supportchat configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Chat    ChatConfig    `toml:"chat"`
	UI      UIConfig      `toml:"ui"`
	Voice   VoiceConfig   `toml:"voice"`
	Export  ExportConfig  `toml:"export"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// BackendConfig locates the chat backend.
type BackendConfig struct {
	// URL is the base URL; /chat and /train are appended.
	URL string `toml:"url"`

	// TimeoutSecs bounds each request. 0 means no timeout.
	TimeoutSecs int `toml:"timeout_secs"`
}

// Timeout returns the request timeout as a duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// ChatConfig holds conversation defaults.
type ChatConfig struct {
	// Language is the initial reply language: "auto" or a language code.
	Language string `toml:"language"`

	// Welcome overrides the greeting shown on start and after clear.
	Welcome string `toml:"welcome"`
}

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	// Theme forces "light" or "dark". Empty follows the saved preference,
	// then the terminal background.
	Theme string `toml:"theme"`

	// Notifications enables desktop notifications while unfocused.
	Notifications bool `toml:"notifications"`

	// ShowTimestamps shows the time under each message.
	ShowTimestamps bool `toml:"show_timestamps"`
}

// VoiceConfig configures the external speech-to-text command.
type VoiceConfig struct {
	// Command prints one transcript to stdout. Empty disables voice input.
	Command string `toml:"command"`

	// Args are passed to Command; "{locale}" is replaced with e.g. "es-ES".
	Args []string `toml:"args"`
}

// ExportConfig controls where exports are written.
type ExportConfig struct {
	Dir            string `toml:"dir"`
	TimestampNames bool   `toml:"timestamp_names"`
}

// StorageConfig locates the preference database.
type StorageConfig struct {
	PrefsPath string `toml:"prefs_path"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	Level string `toml:"level"`

	// File receives JSON log lines. Empty disables logging.
	File string `toml:"file"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL: "http://127.0.0.1:5000",
		},
		Chat: ChatConfig{
			Language: "auto",
		},
		UI: UIConfig{
			Notifications:  true,
			ShowTimestamps: true,
		},
		Export: ExportConfig{
			Dir:            ".",
			TimestampNames: true,
		},
		Storage: StorageConfig{
			PrefsPath: "~/.supportchat/prefs.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.supportchat/supportchat.log",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the supportchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".supportchat"), nil
}

// DefaultPath returns the path to the TOML config file.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the config file at path (the default path when empty), applies
// defaults and environment overrides, then validates. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys absent from the file keep the
// values already in cfg; empty strings fall back to defaults.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults fills in any empty string values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Backend.URL == "" {
		cfg.Backend.URL = defaults.Backend.URL
	}
	if cfg.Chat.Language == "" {
		cfg.Chat.Language = defaults.Chat.Language
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = defaults.Export.Dir
	}
	if cfg.Storage.PrefsPath == "" {
		cfg.Storage.PrefsPath = defaults.Storage.PrefsPath
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration as TOML to path with 0600 permissions.
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	data, err := cfg.EncodeTOML()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("# supportchat configuration file\n")
	buf.WriteString("# Generated by supportchat - edit with care\n\n")
	buf.Write(data)

	if err := util.WriteFileAtomic(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EncodeTOML renders the configuration as TOML.
func (c *Config) EncodeTOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate validates the configuration and returns ValidateErrors listing
// every invalid field.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Backend.URL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "backend.url",
			Message: fmt.Sprintf("invalid URL '%s', must be http(s)://host[:port]", c.Backend.URL),
		})
	}
	if c.Backend.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "backend.timeout_secs",
			Message: "must be >= 0 (0 disables the timeout)",
		})
	}

	if c.Chat.Language == "" || strings.ContainsAny(c.Chat.Language, " \t/") {
		errs = append(errs, ValidationError{
			Field:   "chat.language",
			Message: fmt.Sprintf("invalid language '%s', must be auto or a language code", c.Chat.Language),
		})
	}

	switch strings.ToLower(c.UI.Theme) {
	case "", "light", "dark":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: light, dark (or empty)", c.UI.Theme),
		})
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if strings.TrimSpace(c.Storage.PrefsPath) == "" {
		errs = append(errs, ValidationError{
			Field:   "storage.prefs_path",
			Message: "must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//   - SUPPORTCHAT_BACKEND_URL: overrides backend.url
//   - SUPPORTCHAT_LANGUAGE: overrides chat.language
//   - SUPPORTCHAT_THEME: overrides ui.theme
//   - SUPPORTCHAT_LOG_LEVEL: overrides log.level
//   - SUPPORTCHAT_VOICE_COMMAND: overrides voice.command
//   - SUPPORTCHAT_EXPORT_DIR: overrides export.dir
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SUPPORTCHAT_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("SUPPORTCHAT_LANGUAGE"); v != "" {
		c.Chat.Language = v
	}
	if v := os.Getenv("SUPPORTCHAT_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("SUPPORTCHAT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SUPPORTCHAT_VOICE_COMMAND"); v != "" {
		c.Voice.Command = v
	}
	if v := os.Getenv("SUPPORTCHAT_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "backend.url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.theme").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(strVal == "1" || lower == "true" || lower == "yes")
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				field.Set(reflect.ValueOf(strings.Fields(strVal)))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// Keys returns all configuration keys in dot notation.
func Keys() []string {
	return []string{
		"backend.url",
		"backend.timeout_secs",
		"chat.language",
		"chat.welcome",
		"ui.theme",
		"ui.notifications",
		"ui.show_timestamps",
		"voice.command",
		"voice.args",
		"export.dir",
		"export.timestamp_names",
		"storage.prefs_path",
		"log.level",
		"log.file",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Voice.Args != nil {
		clone.Voice.Args = append([]string(nil), c.Voice.Args...)
	}
	return &clone
}

// String returns the configuration as TOML.
func (c *Config) String() string {
	data, err := c.EncodeTOML()
	if err != nil {
		return err.Error()
	}
	return string(data)
}
