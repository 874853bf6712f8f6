package api

import (
	"net/http"

	"github.com/cinepick/cinepick-server/internal/http/response"
)

// handleListGenres returns the TMDB movie genre list.
func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.genreService.List(r.Context())
	if err != nil {
		s.logger.Error("Failed to list genres", "error", err)
		response.DomainError(w, err, s.logger)
		return
	}

	response.Success(w, genres, s.logger)
}
