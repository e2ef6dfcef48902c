package namegen

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timestampLayout keeps names sortable by creation time at a glance.
const timestampLayout = "20060102150405"

// extensions maps verified content types to their canonical extension.
// The mapping is intentionally closed: content types outside the ingestion
// allow-list have no entry and cannot be named.
var extensions = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
}

// Generate returns a storage name for content of the given verified type.
// The content type must come from signature sniffing, never from a
// caller-declared header.
func Generate(contentType string) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownContentType, contentType)
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate random name component: %w", err)
	}

	return time.Now().UTC().Format(timestampLayout) + "-" + id.String() + ext, nil
}

// Staging returns a name for a staged file awaiting classification. The
// .part suffix is outside the extension mapping, so a staged file can
// never be mistaken for a finalized asset.
func Staging() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate random name component: %w", err)
	}

	return time.Now().UTC().Format(timestampLayout) + "-" + id.String() + ".part", nil
}

// Extension returns the canonical extension for a verified content type,
// or false when the type has no mapping.
func Extension(contentType string) (string, bool) {
	ext, ok := extensions[contentType]
	return ext, ok
}
