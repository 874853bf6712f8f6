package providers

import (
	"fmt"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/cinepick/cinepick-server/internal/config"
	"github.com/cinepick/cinepick-server/internal/logger"
	"github.com/cinepick/cinepick-server/internal/store"
	"github.com/cinepick/cinepick-server/internal/store/sqlite"
)

// StoreHandle wraps the rating cache with shutdown capability.
type StoreHandle struct {
	store.RatingCache
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideRatingCache provides the persistent rating cache, backed by Badger
// or SQLite depending on configuration.
func ProvideRatingCache(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		cache store.RatingCache
		err   error
	)

	switch cfg.Store.Backend {
	case "sqlite":
		path := filepath.Join(cfg.Store.DataPath, "ratings.db")
		cache, err = sqlite.Open(path, log.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("Rating cache initialized", "backend", "sqlite", "path", path)
	case "badger":
		path := filepath.Join(cfg.Store.DataPath, "db")
		cache, err = store.New(path, log.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("Rating cache initialized", "backend", "badger", "path", path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	return &StoreHandle{RatingCache: cache}, nil
}
