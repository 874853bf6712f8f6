package api

import (
	"encoding/json/v2"
	"net/http"

	"golang.org/x/text/language"

	"github.com/cinepick/cinepick-server/internal/domain"
	"github.com/cinepick/cinepick-server/internal/http/response"
)

// DiscoverMoviesRequest represents the request body for movie discovery.
type DiscoverMoviesRequest struct {
	Genres     []int   `json:"genres" validate:"required,min=1,dive,gt=0"`
	MinRating  float64 `json:"minRating" validate:"omitempty,gte=0,lte=10"`
	Count      int     `json:"count" validate:"omitempty,gte=1,lte=50"`
	GteYear    *int    `json:"gteYear" validate:"omitempty,gte=1874,lte=2100"`
	LteYear    *int    `json:"lteYear" validate:"omitempty,gte=1874,lte=2100"`
	Language   string  `json:"language" validate:"omitempty,max=35"`
	ExcludeIDs []int   `json:"excludeIds" validate:"omitempty,dive,gt=0"`
}

// handleDiscoverMovies returns a random selection of movies matching the
// requested filter, each enriched with a display rating. The response body
// is the bare movie array.
func (s *Server) handleDiscoverMovies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req DiscoverMoviesRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.validator.Validate(req); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}

	if req.GteYear != nil && req.LteYear != nil && *req.GteYear > *req.LteYear {
		response.BadRequest(w, "gteYear must not exceed lteYear", s.logger)
		return
	}

	lang, ok := normalizeLanguage(req.Language)
	if !ok {
		response.BadRequest(w, "Invalid language code", s.logger)
		return
	}

	if req.Count == 0 {
		req.Count = 1
	}

	movies, err := s.discoverService.Discover(ctx, domain.DiscoverFilter{
		Genres:     req.Genres,
		MinRating:  req.MinRating,
		Count:      req.Count,
		GteYear:    req.GteYear,
		LteYear:    req.LteYear,
		Language:   lang,
		ExcludeIDs: req.ExcludeIDs,
	})
	if err != nil {
		s.logger.Error("Movie discovery failed", "error", err)
		response.DomainError(w, err, s.logger)
		return
	}

	// An empty result serializes as [], never null.
	if movies == nil {
		movies = []domain.EnrichedMovie{}
	}

	response.Success(w, movies, s.logger)
}

// normalizeLanguage canonicalizes a BCP 47 language tag to the bare
// ISO 639-1 base code TMDB expects ("en-US" becomes "en"). An empty input
// means no language filter.
func normalizeLanguage(input string) (string, bool) {
	if input == "" {
		return "", true
	}

	tag, err := language.Parse(input)
	if err != nil {
		return "", false
	}

	base, _ := tag.Base()
	return base.String(), true
}
