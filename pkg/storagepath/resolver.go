package storagepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Root is the process-wide storage root. It is resolved once at startup and
// is immutable afterwards; every path produced by the ingestion pipeline
// must be contained within it.
type Root struct {
	dir string
}

// NewRoot resolves dir to an absolute path and creates it if absent.
// All subsequent path resolution is confined to the returned root.
func NewRoot(dir string) (Root, error) {
	if dir == "" {
		return Root{}, ErrInvalidRoot
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return Root{}, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}

	// 755 = rwxr-xr-x; assets below are created 0644
	if err := os.MkdirAll(abs, 0755); err != nil {
		return Root{}, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	return Root{dir: abs}, nil
}

// Dir returns the canonical absolute root directory.
func (r Root) Dir() string {
	return r.dir
}

// ResolveContainer joins a caller-independent subdirectory name to the root,
// verifies containment, and creates the directory if absent. Concurrent
// callers racing on first use are fine: "already exists" is success.
func (r Root) ResolveContainer(name string) (string, error) {
	abs, err := r.Join(name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	return abs, nil
}

// Join joins a root-relative candidate path and validates containment.
// The check runs on every call, even for names produced by trusted stages:
// container resolution and the write immediately after both go through here,
// so a defect introduced between the two cannot slip past.
func (r Root) Join(rel string) (string, error) {
	if r.dir == "" {
		return "", ErrInvalidRoot
	}

	abs, err := filepath.Abs(filepath.Join(r.dir, filepath.Clean(rel)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutsideRoot, err)
	}

	if abs != r.dir && !strings.HasPrefix(abs, r.dir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, rel)
	}

	return abs, nil
}

// Rel converts an absolute path under the root back to a root-relative,
// slash-separated form suitable for public URLs.
func (r Root) Rel(abs string) (string, error) {
	rel, err := filepath.Rel(r.dir, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, abs)
	}
	return filepath.ToSlash(rel), nil
}
