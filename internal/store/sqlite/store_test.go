package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinepick/cinepick-server/internal/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "ratings.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

func TestRatingCache(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Initially empty
	rec, err := store.GetRating(ctx, 603)
	require.NoError(t, err)
	assert.Nil(t, rec)

	err = store.PutRating(ctx, domain.RatingRecord{
		TMDBID:     "603",
		IMDBID:     strPtr("tt0133093"),
		IMDBRating: f64Ptr(8.7),
	})
	require.NoError(t, err)

	rec, err = store.GetRating(ctx, 603)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "603", rec.TMDBID)
	require.NotNil(t, rec.IMDBID)
	assert.Equal(t, "tt0133093", *rec.IMDBID)
	require.NotNil(t, rec.IMDBRating)
	assert.Equal(t, 8.7, *rec.IMDBRating)
}

func TestRatingCache_NullColumns(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutRating(ctx, domain.RatingRecord{TMDBID: "42"}))

	rec, err := store.GetRating(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Nil(t, rec.IMDBID)
	assert.Nil(t, rec.IMDBRating)
}

func TestRatingCache_UpsertOverwrites(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutRating(ctx, domain.RatingRecord{TMDBID: "603"}))
	require.NoError(t, store.PutRating(ctx, domain.RatingRecord{
		TMDBID:     "603",
		IMDBID:     strPtr("tt0133093"),
		IMDBRating: f64Ptr(8.7),
	}))

	rec, err := store.GetRating(ctx, 603)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, rec.IMDBRating)
	assert.Equal(t, 8.7, *rec.IMDBRating)

	// Upserting the same values again leaves a single row.
	require.NoError(t, store.PutRating(ctx, domain.RatingRecord{
		TMDBID:     "603",
		IMDBID:     strPtr("tt0133093"),
		IMDBRating: f64Ptr(8.7),
	}))

	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM movie_ratings`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRatingCache_RejectsInvalidID(t *testing.T) {
	store := setupTestStore(t)

	assert.Error(t, store.PutRating(context.Background(), domain.RatingRecord{TMDBID: ""}))
	assert.Error(t, store.PutRating(context.Background(), domain.RatingRecord{TMDBID: "abc"}))
}
