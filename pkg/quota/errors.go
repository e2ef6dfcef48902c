package quota

import "errors"

var (
	// ErrInvalidConfig is returned when the bucket configuration is not
	// internally consistent.
	ErrInvalidConfig = errors.New("invalid quota configuration")

	// ErrInvalidTokenCount is returned when a non-positive token count is
	// requested.
	ErrInvalidTokenCount = errors.New("invalid token count")

	// ErrEmptyIdentity is returned when the caller identity token is empty.
	ErrEmptyIdentity = errors.New("empty caller identity")
)
