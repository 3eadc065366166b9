package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed      = fmt.Errorf("authentication failed")
	ErrTooManyAttempts = fmt.Errorf("too many login attempts")
	ErrUserExists      = fmt.Errorf("username already registered")

	// Catalog and watchlist errors
	ErrMovieExists     = fmt.Errorf("movie already exists in the catalog")
	ErrMovieNotFound   = fmt.Errorf("movie not found")
	ErrNotInWatchlist  = fmt.Errorf("movie not in watchlist")
	ErrMalformedRecord = fmt.Errorf("malformed record")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
