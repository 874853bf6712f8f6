package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/cinepick/cinepick-server/internal/domain"
)

const (
	genreListKey = "genres:list"

	// The TMDB genre catalog changes rarely; a day of staleness is fine.
	genreCacheDuration = 24 * time.Hour
)

// CachedGenres wraps the fetched genre list with cache info.
type CachedGenres struct {
	Genres    []domain.Genre `json:"genres"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// GetGenreList retrieves the cached genre list.
// Returns nil, nil if not found or expired.
func (s *Store) GetGenreList(ctx context.Context) (*CachedGenres, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var cached CachedGenres
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(genreListKey))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cached)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get genre list: %w", err)
	}

	// Check if expired
	if time.Since(cached.FetchedAt) > genreCacheDuration {
		return nil, nil // Treat as cache miss
	}

	return &cached, nil
}

// SetGenreList stores the genre list in cache.
func (s *Store) SetGenreList(ctx context.Context, genres []domain.Genre) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cached := CachedGenres{
		Genres:    genres,
		FetchedAt: time.Now(),
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal genre list: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(genreListKey), data)
	})
}
