package catalog

import "errors"

var (
	// ErrInvalidResponse is returned when the catalog API body cannot be decoded.
	ErrInvalidResponse = errors.New("invalid catalog response")

	// ErrBodyTooLarge is returned when a page response exceeds Config.MaxBodySize.
	ErrBodyTooLarge = errors.New("catalog response body too large")

	// ErrTimeout is returned when a page request exceeds Config.Timeout.
	ErrTimeout = errors.New("catalog request timeout")
)
