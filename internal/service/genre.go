package service

import (
	"context"
	"log/slog"

	"github.com/cinepick/cinepick-server/internal/domain"
	"github.com/cinepick/cinepick-server/internal/store"
)

// GenreLister is the slice of the TMDB client the genre service uses.
type GenreLister interface {
	Genres(ctx context.Context) ([]domain.Genre, error)
}

// GenreCache caches the TMDB genre list. Only the Badger store implements
// it; with the SQLite backend the service runs without a cache.
type GenreCache interface {
	GetGenreList(ctx context.Context) (*store.CachedGenres, error)
	SetGenreList(ctx context.Context, genres []domain.Genre) error
}

// GenreService serves the TMDB genre list with caching.
type GenreService struct {
	catalog GenreLister
	cache   GenreCache // may be nil
	logger  *slog.Logger
}

// NewGenreService creates a new genre service. cache may be nil, in which
// case every call fetches from TMDB.
func NewGenreService(catalog GenreLister, cache GenreCache, logger *slog.Logger) *GenreService {
	return &GenreService{
		catalog: catalog,
		cache:   cache,
		logger:  logger,
	}
}

// List returns the movie genre list, using cache if fresh.
func (s *GenreService) List(ctx context.Context) ([]domain.Genre, error) {
	if s.cache != nil {
		cached, err := s.cache.GetGenreList(ctx)
		if err != nil {
			s.logger.Warn("genre cache lookup failed", "error", err)
			// Continue to fetch fresh
		}
		if cached != nil {
			s.logger.Debug("cache hit for genre list", "age", cached.FetchedAt)
			return cached.Genres, nil
		}
	}

	genres, err := s.catalog.Genres(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetGenreList(ctx, genres); err != nil {
			s.logger.Warn("failed to cache genre list", "error", err)
			// Don't fail the request
		}
	}

	return genres, nil
}
