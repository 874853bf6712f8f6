package providers

import (
	"github.com/samber/do/v2"

	"github.com/cinepick/cinepick-server/internal/config"
	"github.com/cinepick/cinepick-server/internal/logger"
	"github.com/cinepick/cinepick-server/internal/metadata/omdb"
	"github.com/cinepick/cinepick-server/internal/metadata/tmdb"
	"github.com/cinepick/cinepick-server/internal/service"
)

// ProvideDiscoverService provides the movie discovery service.
func ProvideDiscoverService(i do.Injector) (*service.DiscoverService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	tmdbClient := do.MustInvoke[*tmdb.Client](i)
	omdbClient := do.MustInvoke[*omdb.Client](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewDiscoverService(tmdbClient, omdbClient, storeHandle.RatingCache, cfg.Discover, log.Logger), nil
}

// ProvideGenreService provides the genre listing service.
func ProvideGenreService(i do.Injector) (*service.GenreService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	tmdbClient := do.MustInvoke[*tmdb.Client](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	// Only the Badger backend caches the genre list; with SQLite the
	// service fetches fresh on every call.
	cache, _ := storeHandle.RatingCache.(service.GenreCache)

	return service.NewGenreService(tmdbClient, cache, log.Logger), nil
}
