// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/supportchat/internal/util"
)

// ThemeKey is the preference key of the saved theme.
const ThemeKey = "chatbotTheme"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("preference store closed")

// Preferences is a small persistent key/value store.
type Preferences interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// =============================================================================
// SQLITE STORE
// =============================================================================

const prefsSchema = `
CREATE TABLE IF NOT EXISTS preferences (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL
) WITHOUT ROWID;
`

// SQLitePrefs stores preferences in a SQLite database.
type SQLitePrefs struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the preference database at path.
// A leading ~ is expanded to the home directory.
func OpenSQLite(path string) (*SQLitePrefs, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preference database path is empty")
	}
	path, err := util.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create preference directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(prefsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLitePrefs{db: db, path: path}, nil
}

// Path returns the database file path.
func (p *SQLitePrefs) Path() string {
	return p.path
}

// Get returns the value stored under key.
func (p *SQLitePrefs) Get(key string) (string, bool, error) {
	var value string
	err := p.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("failed to read preference %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (p *SQLitePrefs) Set(key, value string) error {
	_, err := p.db.Exec(`
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write preference %q: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (p *SQLitePrefs) Close() error {
	return p.db.Close()
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// MemoryPrefs keeps preferences in memory only.
type MemoryPrefs struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// NewMemoryPrefs creates an empty in-memory store.
func NewMemoryPrefs() *MemoryPrefs {
	return &MemoryPrefs{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryPrefs) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryPrefs) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	return nil
}

// Close marks the store closed.
func (m *MemoryPrefs) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
