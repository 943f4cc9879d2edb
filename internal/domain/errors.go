package domain

import "errors"

var (
	// ErrInvalidInput marks a request rejected before any network call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDataAvailable is returned when neither category produced a
	// single item to recommend from. The only fatal data condition.
	ErrNoDataAvailable = errors.New("no catalog data available")

	// ErrUpstreamUnavailable marks a catalog backend that could not be
	// reached. The affected category degrades to empty.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamMalformed marks a catalog backend response that could
	// not be mapped to CatalogItem.
	ErrUpstreamMalformed = errors.New("upstream response malformed")
)
