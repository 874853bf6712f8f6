// Package domain contains the core types shared across the CinePick server.
package domain

// Movie is a candidate movie as returned by the TMDB discover endpoint.
// Immutable once fetched; it lives only for the duration of one discovery run.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	ReleaseDate  string  `json:"release_date"`
}

// EnrichedMovie is a Movie plus the resolved display rating.
// IMDBRating is the IMDb rating when one could be resolved, otherwise the
// TMDB vote average.
type EnrichedMovie struct {
	Movie
	IMDBRating float64 `json:"imdb_rating"`
}

// Genre is a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DiscoverFilter is one discovery request. Immutable for the lifetime of a
// single orchestration run.
type DiscoverFilter struct {
	Genres     []int
	MinRating  float64
	Count      int
	GteYear    *int
	LteYear    *int
	Language   string
	ExcludeIDs []int
}

// RatingRecord is a persisted rating-cache entry keyed by TMDB id. Both the
// IMDb id and the rating are nullable: a record with a nil rating is an
// authoritative "no rating available" and is never re-resolved.
type RatingRecord struct {
	TMDBID     string   `json:"tmdb_id"`
	IMDBID     *string  `json:"imdb_id"`
	IMDBRating *float64 `json:"imdb_rating"`
}
