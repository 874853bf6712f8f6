package tmdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"

	"github.com/cinepick/cinepick-server/internal/domain"
)

// Genres fetches the full movie genre list.
func (c *Client) Genres(ctx context.Context) ([]domain.Genre, error) {
	query := url.Values{}
	query.Set("language", "en-US")

	body, err := c.doRequest(ctx, "/genre/movie/list", query)
	if err != nil {
		return nil, wrapError("genres", 0, err)
	}

	var resp struct {
		Genres []domain.Genre `json:"genres"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("genres", 0, fmt.Errorf("parse response: %w", err))
	}

	return resp.Genres, nil
}
