// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for supportchat.
//
// Configuration is TOML, with built-in defaults, environment variable
// overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - BackendConfig: Chat backend URL and request timeout
//   - UIConfig: Theme and notification settings
//   - ValidateErrors: All field errors found by Validate
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (SUPPORTCHAT_*)
//   - ~/.supportchat/config.toml (or --config PATH)
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	client := transport.NewClient(cfg.Backend.URL, transport.WithTimeout(cfg.Backend.Timeout()))
package config
