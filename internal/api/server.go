// Package api provides the HTTP API server and handlers for the CinePick service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cinepick/cinepick-server/internal/service"
	"github.com/cinepick/cinepick-server/internal/store"
	"github.com/cinepick/cinepick-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	cache           store.RatingCache
	discoverService *service.DiscoverService
	genreService    *service.GenreService
	validator       *validation.Validator
	router          *chi.Mux
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cache store.RatingCache, discoverService *service.DiscoverService, genreService *service.GenreService, logger *slog.Logger) *Server {
	s := &Server{
		cache:           cache,
		discoverService: discoverService,
		genreService:    genreService,
		validator:       validation.New(),
		router:          chi.NewRouter(),
		logger:          logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/movies/discover", s.handleDiscoverMovies)
		r.Get("/genres", s.handleListGenres)
	})
}
