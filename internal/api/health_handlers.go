package api

import (
	"context"
	"net/http"
	"time"

	"github.com/cinepick/cinepick-server/internal/http/response"
)

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	cacheHealth := s.checkRatingCache(r.Context())
	components["cache"] = cacheHealth
	if cacheHealth.Status == "unhealthy" {
		overall = "unhealthy"
	} else if cacheHealth.Status == "degraded" && overall == "healthy" {
		overall = "degraded"
	}

	response.Success(w, HealthResponse{
		Status:     overall,
		Components: components,
	}, s.logger)
}

// checkRatingCache verifies the rating cache is readable.
func (s *Server) checkRatingCache(ctx context.Context) ComponentHealth {
	// Handle nil cache (e.g., in tests)
	if s.cache == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "cache not configured",
		}
	}

	start := time.Now()

	// Quick read to verify the backend is accessible. A miss is fine.
	_, err := s.cache.GetRating(ctx, 1)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "cache read failed",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}
