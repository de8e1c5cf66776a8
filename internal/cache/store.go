package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lumina/internal/db"
	"lumina/internal/palette"
)

// Store persists palettes in SQLite so they survive process restarts. It
// backs the memory cache and is consulted on a memory miss.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) *Store {
	return &Store{db: database}
}

// OpenStore bootstraps the database at path, running pending migrations.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	database, err := db.Bootstrap(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open palette store: %w", err)
	}
	return NewStore(database), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the palette stored under key together with the source
// modification time recorded when it was saved.
func (s *Store) Load(ctx context.Context, key string) (palette.ColorPalette, int64, bool, error) {
	var (
		payload     string
		modUnixNano int64
	)
	err := s.db.QueryRowContext(
		ctx,
		"SELECT palette_json, source_mod_unix_nano FROM palette_cache WHERE cache_key = ?",
		key,
	).Scan(&payload, &modUnixNano)
	if errors.Is(err, sql.ErrNoRows) {
		return palette.ColorPalette{}, 0, false, nil
	}
	if err != nil {
		return palette.ColorPalette{}, 0, false, fmt.Errorf("load cached palette: %w", err)
	}

	var value palette.ColorPalette
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return palette.ColorPalette{}, 0, false, fmt.Errorf("decode cached palette: %w", err)
	}

	if _, err := s.db.ExecContext(
		ctx,
		"UPDATE palette_cache SET last_hit_at = ? WHERE cache_key = ?",
		time.Now().UTC().Format(time.RFC3339),
		key,
	); err != nil {
		return palette.ColorPalette{}, 0, false, fmt.Errorf("touch cached palette: %w", err)
	}

	return value, modUnixNano, true, nil
}

func (s *Store) Save(ctx context.Context, key string, source string, sourceModUnixNano int64, value palette.ColorPalette) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode palette: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO palette_cache(cache_key, source_key, source_mod_unix_nano, palette_json, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			source_key = excluded.source_key,
			source_mod_unix_nano = excluded.source_mod_unix_nano,
			palette_json = excluded.palette_json,
			created_at = excluded.created_at,
			last_hit_at = NULL
	`, key, source, sourceModUnixNano, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save palette: %w", err)
	}

	return nil
}

// DeleteSource removes every entry recorded for source.
func (s *Store) DeleteSource(ctx context.Context, source string) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM palette_cache WHERE source_key = ?", source)
	if err != nil {
		return 0, fmt.Errorf("delete palettes for %s: %w", source, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted palettes: %w", err)
	}
	return removed, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM palette_cache"); err != nil {
		return fmt.Errorf("clear palette store: %w", err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM palette_cache").Scan(&count); err != nil {
		return 0, fmt.Errorf("count palettes: %w", err)
	}
	return count, nil
}
