// Package di provides dependency injection configuration for the CinePick server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/cinepick/cinepick-server/internal/config"
	"github.com/cinepick/cinepick-server/internal/di/providers"
	"github.com/cinepick/cinepick-server/internal/logger"
	"github.com/cinepick/cinepick-server/internal/metadata/omdb"
	"github.com/cinepick/cinepick-server/internal/metadata/tmdb"
	"github.com/cinepick/cinepick-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideRatingCache)

	// Metadata layer
	do.Provide(injector, providers.ProvideTMDBClient)
	do.Provide(injector, providers.ProvideOMDBClient)

	// Business services
	do.Provide(injector, providers.ProvideDiscoverService)
	do.Provide(injector, providers.ProvideGenreService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap eagerly initializes all services in dependency order.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*tmdb.Client](injector)
	_ = do.MustInvoke[*omdb.Client](injector)

	// Business services
	_ = do.MustInvoke[*service.DiscoverService](injector)
	_ = do.MustInvoke[*service.GenreService](injector)

	// Server last: it starts listening once everything underneath is ready.
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
