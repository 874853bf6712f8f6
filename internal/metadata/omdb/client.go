// Package omdb provides a client for the OMDB API, used to look up IMDb ratings.
package omdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://www.omdbapi.com/"

	// The free OMDB tier is capped at 1000 requests per day; keep bursts gentle.
	defaultRPS   = 5.0
	defaultBurst = 10

	defaultTimeout = 10 * time.Second
)

// Client is a rate-limited OMDB API client.
//
// The client degrades gracefully: with no API key configured, Rating always
// returns nil without touching the network.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	apiKey  string
	baseURL string
	logger  *slog.Logger
}

// New creates a new OMDB client. An empty apiKey disables lookups.
func New(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		logger:  logger,
	}
}

// ratingResponse is the subset of the OMDB payload we read.
type ratingResponse struct {
	Response   string `json:"Response"`
	IMDBRating string `json:"imdbRating"`
}

// Rating fetches the IMDb rating for the given IMDb id.
//
// Returns nil (not an error) when the API key is unconfigured, OMDB has no
// record for the id, or the rating field is not a number ("N/A"). Errors are
// reserved for transport failures and unexpected statuses; callers are
// expected to treat those as "no rating available" too.
func (c *Client) Rating(ctx context.Context, imdbID string) (*float64, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	query := url.Values{}
	query.Set("i", imdbID)
	query.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("omdb request", "imdb_id", imdbID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed ratingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	// OMDB reports misses with Response "False" and a 200 status.
	if parsed.Response != "True" {
		return nil, nil
	}

	rating, err := strconv.ParseFloat(parsed.IMDBRating, 64)
	if err != nil {
		// "N/A" or similar
		return nil, nil
	}

	return &rating, nil
}
