package providers

import (
	"github.com/samber/do/v2"

	"github.com/cinepick/cinepick-server/internal/config"
	"github.com/cinepick/cinepick-server/internal/logger"
	"github.com/cinepick/cinepick-server/internal/metadata/omdb"
	"github.com/cinepick/cinepick-server/internal/metadata/tmdb"
)

// ProvideTMDBClient provides the TMDB API client.
func ProvideTMDBClient(i do.Injector) (*tmdb.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := tmdb.New(cfg.TMDB.AccessToken, tmdb.Options{
		RatingRelaxation: cfg.Discover.RatingRelaxation,
		MinVoteCount:     cfg.Discover.MinVoteCount,
	}, log.Logger)
	log.Info("TMDB client initialized")

	return client, nil
}

// ProvideOMDBClient provides the OMDB API client.
func ProvideOMDBClient(i do.Injector) (*omdb.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := omdb.New(cfg.OMDB.APIKey, log.Logger)
	if cfg.OMDB.APIKey == "" {
		log.Warn("OMDB API key not configured, IMDb ratings will fall back to TMDB vote averages")
	} else {
		log.Info("OMDB client initialized")
	}

	return client, nil
}
