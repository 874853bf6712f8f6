package store

import (
	"context"

	"github.com/cinepick/cinepick-server/internal/domain"
)

// RatingCache is the persistent rating cache shared by all discovery runs.
// Implementations: the Badger Store in this package and the SQLite store in
// the sqlite subpackage.
type RatingCache interface {
	// GetRating returns the cached record for a TMDB id, or nil if absent.
	// A non-nil record with a nil rating is an authoritative "no rating
	// available" and must not trigger re-resolution.
	GetRating(ctx context.Context, tmdbID int) (*domain.RatingRecord, error)

	// PutRating inserts or overwrites the record for its TMDB id.
	// Idempotent; concurrent writers for the same id resolve last-write-wins.
	PutRating(ctx context.Context, rec domain.RatingRecord) error

	Close() error
}
