package tmdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cinepick/cinepick-server/internal/domain"
)

// DiscoverQuery describes one page request against the TMDB discover endpoint.
type DiscoverQuery struct {
	Genres    []int
	MinRating float64
	GteYear   *int
	LteYear   *int
	Language  string
	Page      int // 1-indexed
}

// DiscoverPage is one page of discover results.
type DiscoverPage struct {
	Page       int            `json:"page"`
	Results    []domain.Movie `json:"results"`
	TotalPages int            `json:"total_pages"`
}

// Discover queries for a page of movies matching the filter.
//
// The upstream vote_average floor is relaxed by the configured offset: TMDB
// community scores and IMDb ratings diverge, and a strict floor here would
// drop movies that pass the IMDb threshold once enriched. Results are always
// sorted by descending popularity.
func (c *Client) Discover(ctx context.Context, q DiscoverQuery) (*DiscoverPage, error) {
	query := url.Values{}

	genres := make([]string, 0, len(q.Genres))
	for _, id := range q.Genres {
		genres = append(genres, strconv.Itoa(id))
	}
	query.Set("with_genres", strings.Join(genres, ","))

	floor := q.MinRating - c.ratingRelaxation
	if floor < 0 {
		floor = 0
	}
	query.Set("vote_average.gte", strconv.FormatFloat(floor, 'f', -1, 64))
	query.Set("vote_count.gte", strconv.Itoa(c.minVoteCount))
	query.Set("sort_by", "popularity.desc")

	if q.GteYear != nil {
		query.Set("primary_release_date.gte", fmt.Sprintf("%04d-01-01", *q.GteYear))
	}
	if q.LteYear != nil {
		query.Set("primary_release_date.lte", fmt.Sprintf("%04d-12-31", *q.LteYear))
	}
	if q.Language != "" {
		query.Set("with_original_language", q.Language)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	query.Set("page", strconv.Itoa(page))

	body, err := c.doRequest(ctx, "/discover/movie", query)
	if err != nil {
		return nil, wrapError("discover", 0, err)
	}

	var resp DiscoverPage
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("discover", 0, fmt.Errorf("parse response: %w", err))
	}

	return &resp, nil
}
