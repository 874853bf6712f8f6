// Package tmdb provides a client for The Movie Database discovery API.
package tmdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"

	// TMDB allows roughly 50 requests per second; we stay well under that.
	defaultRPS   = 20.0
	defaultBurst = 40

	defaultTimeout = 10 * time.Second
)

// Client is a rate-limited TMDB API client.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	token   string
	baseURL string
	logger  *slog.Logger

	ratingRelaxation float64
	minVoteCount     int
}

// Options tunes the discover query mapping.
type Options struct {
	// RatingRelaxation is subtracted from the requested minimum rating in
	// the upstream vote_average.gte filter. The final cutoff is enforced
	// per movie after IMDb enrichment.
	RatingRelaxation float64
	// MinVoteCount is the vote_count.gte floor applied to every query.
	MinVoteCount int
}

// New creates a new TMDB client authenticating with the given v4 read token.
func New(token string, opts Options, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:          rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		token:            token,
		baseURL:          defaultBaseURL,
		logger:           logger,
		ratingRelaxation: opts.RatingRelaxation,
		minVoteCount:     opts.MinVoteCount,
	}
}

// doRequest executes a GET request against the TMDB API with rate limiting.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
