package domain

import "errors"

var (
	// ErrImageDecode is returned when image bytes cannot be decoded.
	// Fatal for that one image only, never for the whole batch.
	ErrImageDecode = errors.New("image data could not be decoded")

	// ErrTableHeader is returned when the product table header row is
	// missing or unreadable. Structural, surfaced immediately.
	ErrTableHeader = errors.New("product table header row is missing or unreadable")

	// ErrNoImages is returned when matching or composition is invoked
	// with zero images.
	ErrNoImages = errors.New("no images provided")

	// ErrNoRecords is returned when matching is invoked with zero
	// product records.
	ErrNoRecords = errors.New("no product records provided")

	// ErrCacheMiss is returned when an analysis is not in the cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when a client exceeds its request budget.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request parameters")
)
