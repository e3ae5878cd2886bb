// Package store is the persistence adapter: a two-key durable store for
// the theme preference and the serialized prompt history, backed by a
// local sqlite database. Reads fail open — malformed or missing content
// never blocks startup.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/link2dawood/Free-AI-Prompt-Generator/internal/models"
)

// Storage keys, kept compatible with the original web app's local storage.
const (
	themeKey   = "appTheme"
	historyKey = "promptHistory"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
    key    TEXT PRIMARY KEY,
    value  TEXT NOT NULL
);
`

// DataDir returns the promptgen state directory, creating it if needed.
// override takes precedence; the fallback is ~/.promptgen.
func DataDir(override string) (string, error) {
	dir := override
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".promptgen")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return dir, nil
}

type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (or creates) the database at dbPath and applies the schema.
func Open(dbPath string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running schema migration: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// LoadTheme returns the stored theme, or light when absent or unrecognized.
func (s *Store) LoadTheme() models.Theme {
	value, ok, err := s.get(themeKey)
	if err != nil {
		s.logger.Warn("loading theme", zap.Error(err))
		return models.ThemeLight
	}
	if !ok {
		return models.ThemeLight
	}
	return models.ParseTheme(value)
}

// SaveTheme persists the theme. Storage failures are non-fatal and only logged.
func (s *Store) SaveTheme(theme models.Theme) {
	if err := s.set(themeKey, string(theme)); err != nil {
		s.logger.Warn("saving theme", zap.Error(err))
	}
}

// LoadHistory returns the stored history, or an empty list when the key is
// absent or its content does not decode.
func (s *Store) LoadHistory() []models.GeneratedPrompt {
	value, ok, err := s.get(historyKey)
	if err != nil {
		s.logger.Warn("loading history", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var history []models.GeneratedPrompt
	if err := json.Unmarshal([]byte(value), &history); err != nil {
		s.logger.Warn("discarding malformed history", zap.Error(err))
		return nil
	}
	return history
}

// SaveHistory overwrites the stored history with the given list.
func (s *Store) SaveHistory(history []models.GeneratedPrompt) error {
	if history == nil {
		history = []models.GeneratedPrompt{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return s.set(historyKey, string(data))
}
