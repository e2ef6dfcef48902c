package svgsanitize

import "errors"

var (
	// ErrMalformedMarkup is returned when the input cannot be parsed and
	// rebuilt safely. The whole upload is rejected; there is no partial or
	// best-effort output.
	ErrMalformedMarkup = errors.New("markup cannot be safely rebuilt")

	// ErrMarkupTooComplex is returned when the input exceeds the token
	// budget. Guards against pathological documents crafted to stall the
	// parser.
	ErrMarkupTooComplex = errors.New("markup exceeds complexity limit")
)
