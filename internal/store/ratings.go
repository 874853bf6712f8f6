package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"

	"github.com/cinepick/cinepick-server/internal/domain"
)

const ratingPrefix = "rating:movie:"

// GetRating retrieves the cached rating record for a TMDB id.
// Returns nil, nil if no record exists. Cached records never expire: ratings
// are treated as static, so a record written once is authoritative forever.
func (s *Store) GetRating(ctx context.Context, tmdbID int) (*domain.RatingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := fmt.Appendf(nil, "%s%d", ratingPrefix, tmdbID)

	var rec domain.RatingRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}

	return &rec, nil
}

// PutRating stores a rating record, overwriting any existing record for the
// same TMDB id. Writes are idempotent; concurrent enrichments of the same
// movie resolve identical values, so last-write-wins is safe.
func (s *Store) PutRating(ctx context.Context, rec domain.RatingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if rec.TMDBID == "" {
		return errors.New("rating record requires a tmdb id")
	}
	if _, err := strconv.Atoi(rec.TMDBID); err != nil {
		return fmt.Errorf("invalid tmdb id %q: %w", rec.TMDBID, err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal rating record: %w", err)
	}

	key := fmt.Appendf(nil, "%s%s", ratingPrefix, rec.TMDBID)

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}
