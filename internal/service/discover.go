// Package service provides the business logic layer for movie discovery and enrichment.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/cinepick/cinepick-server/internal/config"
	"github.com/cinepick/cinepick-server/internal/domain"
	"github.com/cinepick/cinepick-server/internal/errors"
	"github.com/cinepick/cinepick-server/internal/metadata/tmdb"
	"github.com/cinepick/cinepick-server/internal/store"
)

// Catalog is the slice of the TMDB client the discovery pipeline uses.
type Catalog interface {
	Discover(ctx context.Context, q tmdb.DiscoverQuery) (*tmdb.DiscoverPage, error)
	ExternalIDs(ctx context.Context, movieID int) (string, error)
}

// RatingSource resolves IMDb ratings. A nil rating with a nil error means
// "no rating available" and is a valid outcome.
type RatingSource interface {
	Rating(ctx context.Context, imdbID string) (*float64, error)
}

// DiscoverService orchestrates movie discovery: random page sampling,
// concurrent per-movie rating enrichment, deduplication, and final
// shuffle-and-truncate.
type DiscoverService struct {
	catalog Catalog
	ratings RatingSource
	cache   store.RatingCache
	cfg     config.DiscoverConfig
	logger  *slog.Logger
}

// NewDiscoverService creates a new discover service.
func NewDiscoverService(
	catalog Catalog,
	ratings RatingSource,
	cache store.RatingCache,
	cfg config.DiscoverConfig,
	logger *slog.Logger,
) *DiscoverService {
	return &DiscoverService{
		catalog: catalog,
		ratings: ratings,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
	}
}

// Discover returns up to f.Count movies matching the filter, each carrying a
// resolved display rating that meets f.MinRating.
//
// The initial page-1 call exists only to learn the catalog's total page
// count; its failure is fatal because nothing can be sampled without it. The
// sampling loop then fetches random pages sequentially and enriches each
// page's movies concurrently, stopping once enough movies are found or the
// attempt budget runs out. A short (or empty) result is not an error.
func (s *DiscoverService) Discover(ctx context.Context, f domain.DiscoverFilter) ([]domain.EnrichedMovie, error) {
	log := s.logger.With("run_id", uuid.NewString())

	count := f.Count
	if count < 1 {
		count = 1
	}

	q := tmdb.DiscoverQuery{
		Genres:    f.Genres,
		MinRating: f.MinRating,
		GteYear:   f.GteYear,
		LteYear:   f.LteYear,
		Language:  f.Language,
		Page:      1,
	}

	initial, err := s.catalog.Discover(ctx, q)
	if err != nil {
		return nil, errors.Upstream("movie catalog unavailable").WithCause(err)
	}

	totalPages := initial.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}

	log.Debug("discovery run started",
		"genres", f.Genres,
		"min_rating", f.MinRating,
		"count", count,
		"total_pages", totalPages,
	)

	// seen holds the caller's exclusions plus every movie id encountered in
	// this run, so a movie appearing on two sampled pages is processed once.
	seen := make(map[int]struct{}, len(f.ExcludeIDs))
	for _, id := range f.ExcludeIDs {
		seen[id] = struct{}{}
	}

	var (
		mu    sync.Mutex
		found []domain.EnrichedMovie
	)

	for attempt := 0; attempt < s.cfg.MaxAttempts && len(found) < count; attempt++ {
		page := s.randomPage(totalPages)
		q.Page = page

		pageResult, err := s.catalog.Discover(ctx, q)
		if err != nil {
			// Mid-run catalog failures abort the whole request: continuing
			// to sample against a catalog we can no longer see is pointless.
			return nil, errors.Upstream("movie catalog unavailable").WithCause(err)
		}

		var wg sync.WaitGroup
		for _, movie := range pageResult.Results {
			mu.Lock()
			if _, dup := seen[movie.ID]; dup {
				mu.Unlock()
				continue
			}
			seen[movie.ID] = struct{}{}
			mu.Unlock()

			wg.Go(func() {
				enriched, keep := s.enrich(ctx, log, movie, f.MinRating)
				if !keep {
					return
				}
				mu.Lock()
				found = append(found, enriched)
				mu.Unlock()
			})
		}
		wg.Wait()

		log.Debug("sampling attempt finished",
			"attempt", attempt+1,
			"page", page,
			"found", len(found),
		)
	}

	rand.Shuffle(len(found), func(i, j int) {
		found[i], found[j] = found[j], found[i]
	})
	if len(found) > count {
		found = found[:count]
	}

	log.Info("discovery run finished",
		"requested", count,
		"returned", len(found),
	)

	return found, nil
}

// randomPage picks a page uniformly from [1, min(totalPages, MaxSamplePages)].
// The cap keeps sampling out of deep low-popularity pages where TMDB results
// get unreliable.
func (s *DiscoverService) randomPage(totalPages int) int {
	usable := min(totalPages, s.cfg.MaxSamplePages)
	if usable < 1 {
		usable = 1
	}
	return rand.IntN(usable) + 1
}

// enrich resolves the display rating for one movie and applies the minimum
// rating filter. Enrichment failures never propagate: the movie falls back
// to its TMDB vote average and is filtered on that instead.
func (s *DiscoverService) enrich(ctx context.Context, log *slog.Logger, movie domain.Movie, minRating float64) (domain.EnrichedMovie, bool) {
	imdbRating, err := s.resolveRating(ctx, log, movie.ID)
	if err != nil {
		log.Warn("rating enrichment failed, falling back to catalog rating",
			"movie_id", movie.ID,
			"error", err,
		)
		imdbRating = nil
	}

	resolved := movie.VoteAverage
	if imdbRating != nil {
		resolved = *imdbRating
	}

	if resolved < minRating {
		return domain.EnrichedMovie{}, false
	}

	return domain.EnrichedMovie{Movie: movie, IMDBRating: resolved}, true
}

// resolveRating returns the IMDb rating for a movie, consulting the
// persistent cache first. A cached record short-circuits resolution even
// when its rating is nil: "no rating available" is an authoritative answer.
// On a miss the resolution outcome is persisted, nil results included, so no
// future run repeats the lookup.
func (s *DiscoverService) resolveRating(ctx context.Context, log *slog.Logger, movieID int) (*float64, error) {
	cached, err := s.cache.GetRating(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}
	if cached != nil {
		return cached.IMDBRating, nil
	}

	imdbID, err := s.catalog.ExternalIDs(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("resolve imdb id: %w", err)
	}

	rec := domain.RatingRecord{TMDBID: strconv.Itoa(movieID)}

	var rating *float64
	if imdbID != "" {
		rec.IMDBID = &imdbID

		rating, err = s.ratings.Rating(ctx, imdbID)
		if err != nil {
			// Transport failures must not poison the cache with a permanent
			// "no rating": skip persisting and fall back for this run only.
			return nil, fmt.Errorf("fetch imdb rating: %w", err)
		}
		rec.IMDBRating = rating
	}

	if err := s.cache.PutRating(ctx, rec); err != nil {
		log.Warn("failed to persist rating record",
			"movie_id", movieID,
			"error", err,
		)
		// Don't fail the enrichment; the rating is still usable this run.
	}

	return rating, nil
}
