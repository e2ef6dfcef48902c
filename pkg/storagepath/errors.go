package storagepath

import "errors"

var (
	// ErrInvalidRoot is returned when the storage root cannot be resolved
	// to a usable absolute directory.
	ErrInvalidRoot = errors.New("invalid storage root")

	// ErrOutsideRoot is returned when a resolved path escapes the storage
	// root. This indicates a configuration defect, not caller input -
	// caller-controlled strings never reach path construction.
	ErrOutsideRoot = errors.New("path resolves outside storage root")

	// ErrFailedToCreateDirectory wraps directory creation failures.
	ErrFailedToCreateDirectory = errors.New("failed to create directory")
)
