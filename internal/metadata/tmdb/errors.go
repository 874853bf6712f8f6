package tmdb

import (
	"errors"
	"fmt"
)

// Sentinel errors for TMDB API operations.
var (
	ErrNotFound     = errors.New("tmdb: not found")
	ErrUnauthorized = errors.New("tmdb: unauthorized")
	ErrRateLimited  = errors.New("tmdb: rate limited by server")
	ErrServer       = errors.New("tmdb: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op      string // Operation: "discover", "genres", "externalIDs"
	MovieID int    // If applicable
	Err     error
}

func (e *Error) Error() string {
	if e.MovieID != 0 {
		return fmt.Sprintf("tmdb %s [%d]: %v", e.Op, e.MovieID, e.Err)
	}
	return fmt.Sprintf("tmdb %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op string, movieID int, err error) error {
	return &Error{
		Op:      op,
		MovieID: movieID,
		Err:     err,
	}
}
