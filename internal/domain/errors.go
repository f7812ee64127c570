package domain

import "errors"

var (
	// ErrProductNotFound is returned when no product exists for a handle
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidSelection is returned when a slug encodes an option selection
	// that no variant of the product satisfies
	ErrInvalidSelection = errors.New("option selection does not match any variant")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCommerceAPIFailure is returned when the commerce backend request fails
	ErrCommerceAPIFailure = errors.New("commerce API request failed")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
