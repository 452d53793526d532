// Package store persists game records and user notification preferences in
// a local SQLite database. The notification pipeline consumes it through
// narrow interfaces declared at the point of use (icon.GameSource,
// dispatch.PreferenceSource); the concrete Store also carries the write
// side used by the rest of the application.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// preferencesID is the singleton row id for user preferences.
const preferencesID = 1

// Game is a locally stored game record.
type Game struct {
	ID    int64
	Title string

	// IconURL is a base64 data URI for the game's icon, or "" when the
	// game has no stored icon.
	IconURL string
}

// Preferences holds user notification preferences.
type Preferences struct {
	DownloadNotificationsEnabled bool
}

// Store provides access to the games and preferences tables.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the database at path.
// Use ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			icon_url TEXT
		);
		CREATE TABLE IF NOT EXISTS user_preferences (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			download_notifications_enabled INTEGER NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// FindGame returns the game with the given id, or (nil, nil) when absent.
func (s *Store) FindGame(ctx context.Context, id int64) (*Game, error) {
	var (
		g       Game
		iconURL sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, icon_url FROM games WHERE id = ?`, id,
	).Scan(&g.ID, &g.Title, &iconURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query game: %w", err)
	}
	g.IconURL = iconURL.String
	return &g, nil
}

// GameIconURL returns the stored icon data URI for a game, or "" when the
// game or its icon field is absent. Implements icon.GameSource.
func (s *Store) GameIconURL(ctx context.Context, gameID int64) (string, error) {
	g, err := s.FindGame(ctx, gameID)
	if err != nil {
		return "", err
	}
	if g == nil {
		return "", nil
	}
	return g.IconURL, nil
}

// UpsertGame inserts or replaces a game record.
func (s *Store) UpsertGame(ctx context.Context, g Game) error {
	iconURL := sql.NullString{String: g.IconURL, Valid: g.IconURL != ""}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, title, icon_url) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, icon_url = excluded.icon_url
	`, g.ID, g.Title, iconURL)
	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}
	return nil
}

// GetPreferences returns the singleton preferences row, or (nil, nil) when
// no preferences have been saved yet. Callers treat absence as every
// optional notification feature being disabled.
func (s *Store) GetPreferences(ctx context.Context) (*Preferences, error) {
	var enabled int
	err := s.db.QueryRowContext(ctx,
		`SELECT download_notifications_enabled FROM user_preferences WHERE id = ?`, preferencesID,
	).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	return &Preferences{DownloadNotificationsEnabled: enabled != 0}, nil
}

// SetPreferences saves the singleton preferences row.
func (s *Store) SetPreferences(ctx context.Context, p Preferences) error {
	enabled := 0
	if p.DownloadNotificationsEnabled {
		enabled = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_preferences (id, download_notifications_enabled) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET download_notifications_enabled = excluded.download_notifications_enabled
	`, preferencesID, enabled)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
