package intake

import "errors"

// Fault taxonomy surfaced to the caller-facing layer. Messages never carry
// raw filesystem paths; collaborators map these to transport responses.
var (
	// ErrSizeOutOfBounds: declared or actual size outside [MinSize, MaxSize].
	// Recoverable by the caller.
	ErrSizeOutOfBounds = errors.New("file size outside allowed bounds")

	// ErrTypeRejected: sniffed content is not on the format allow-list.
	// Recoverable by the caller.
	ErrTypeRejected = errors.New("content type not allowed")

	// ErrPathViolation: an internal containment check failed. A server-side
	// configuration defect, not caller-triggerable in normal operation.
	ErrPathViolation = errors.New("storage path violation")

	// ErrSanitizationFailed: markup could not be safely rewritten.
	// Recoverable only by resubmitting a conformant file.
	ErrSanitizationFailed = errors.New("markup sanitization failed")

	// ErrIngestionFailed: generic I/O or filesystem fault. The caller may
	// retry.
	ErrIngestionFailed = errors.New("ingestion failed")
)
