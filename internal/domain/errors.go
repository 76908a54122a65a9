package domain

import "errors"

// Error kinds surfaced by the pipeline. They are always attached with %w,
// so callers check them with errors.Is.
var (
	ErrNetwork           = errors.New("network error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCacheIO           = errors.New("cache io error")
)
