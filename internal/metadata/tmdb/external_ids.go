package tmdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
)

// ExternalIDs looks up the IMDb cross-reference id for a movie.
// An empty return value means TMDB has no IMDb id for this movie; that is
// not an error.
func (c *Client) ExternalIDs(ctx context.Context, movieID int) (string, error) {
	body, err := c.doRequest(ctx, fmt.Sprintf("/movie/%d/external_ids", movieID), nil)
	if err != nil {
		return "", wrapError("externalIDs", movieID, err)
	}

	var resp struct {
		IMDBID string `json:"imdb_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", wrapError("externalIDs", movieID, fmt.Errorf("parse response: %w", err))
	}

	return resp.IMDBID, nil
}
