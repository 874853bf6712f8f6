// Package sqlite provides a SQLite-backed rating cache for deployments
// that prefer a relational store over Badger.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cinepick/cinepick-server/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// Store provides SQLite-backed persistence for the rating cache.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates a new SQLite store at the given path.
// It configures WAL mode, sets pragmas, and runs schema migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Mostly-read workload; a small pool is plenty (SQLite allows one writer).
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	// Run schema migration.
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	if logger != nil {
		logger.Info("SQLite database opened successfully", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetRating retrieves the cached rating record for a TMDB id.
// Returns nil, nil if no record exists.
func (s *Store) GetRating(ctx context.Context, tmdbID int) (*domain.RatingRecord, error) {
	var (
		imdbID sql.NullString
		rating sql.NullFloat64
	)

	key := strconv.Itoa(tmdbID)
	err := s.db.QueryRowContext(ctx,
		`SELECT imdb_id, imdb_rating FROM movie_ratings WHERE tmdb_id = ?`,
		key).Scan(&imdbID, &rating)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}

	rec := &domain.RatingRecord{TMDBID: key}
	if imdbID.Valid {
		rec.IMDBID = &imdbID.String
	}
	if rating.Valid {
		rec.IMDBRating = &rating.Float64
	}

	return rec, nil
}

// PutRating inserts or overwrites the record for its TMDB id.
func (s *Store) PutRating(ctx context.Context, rec domain.RatingRecord) error {
	if rec.TMDBID == "" {
		return errors.New("rating record requires a tmdb id")
	}
	if _, err := strconv.Atoi(rec.TMDBID); err != nil {
		return fmt.Errorf("invalid tmdb id %q: %w", rec.TMDBID, err)
	}

	var (
		imdbID sql.NullString
		rating sql.NullFloat64
	)
	if rec.IMDBID != nil {
		imdbID = sql.NullString{String: *rec.IMDBID, Valid: true}
	}
	if rec.IMDBRating != nil {
		rating = sql.NullFloat64{Float64: *rec.IMDBRating, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO movie_ratings (tmdb_id, imdb_id, imdb_rating) VALUES (?, ?, ?)
		 ON CONFLICT(tmdb_id) DO UPDATE SET imdb_id = excluded.imdb_id, imdb_rating = excluded.imdb_rating`,
		rec.TMDBID, imdbID, rating)
	if err != nil {
		return fmt.Errorf("put rating: %w", err)
	}

	return nil
}
