package namegen

import "errors"

var (
	// ErrUnknownContentType is returned when no extension mapping exists for
	// the verified content type. Extensions are never derived from the
	// caller-supplied filename, so an unmapped type cannot be named.
	ErrUnknownContentType = errors.New("no extension mapping for content type")
)
