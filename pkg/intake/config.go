package intake

import "fmt"

// Config is the process-wide ingestion configuration. It is read once at
// startup (see pkg/config) and never mutated afterwards.
type Config struct {
	// StorageDir is the storage root; every artifact the pipeline writes
	// lives beneath it.
	StorageDir string `env:"UPLOAD_STORAGE_DIR" envDefault:"./uploads"`

	// PublicBaseURL prefixes the public path of finalized assets.
	PublicBaseURL string `env:"UPLOAD_PUBLIC_BASE_URL" envDefault:"/files"`

	// AssetsSubdir is the fixed subdirectory finalized assets live in.
	AssetsSubdir string `env:"UPLOAD_ASSETS_SUBDIR" envDefault:"assets"`

	// StagingSubdir holds staged files between write and finalization.
	StagingSubdir string `env:"UPLOAD_STAGING_SUBDIR" envDefault:"staging"`

	// MinSize and MaxSize bound accepted payloads in bytes.
	MinSize int64 `env:"UPLOAD_MIN_SIZE" envDefault:"2048"`
	MaxSize int64 `env:"UPLOAD_MAX_SIZE" envDefault:"10485760"`
}

func (c Config) validate() error {
	if c.StorageDir == "" {
		return fmt.Errorf("%w: storage dir is empty", ErrPathViolation)
	}
	if c.AssetsSubdir == "" || c.StagingSubdir == "" {
		return fmt.Errorf("%w: subdirectory names are empty", ErrPathViolation)
	}
	if c.AssetsSubdir == c.StagingSubdir {
		return fmt.Errorf("%w: staging and assets subdirectories collide", ErrPathViolation)
	}
	if c.MinSize < 0 || c.MaxSize <= 0 || c.MinSize >= c.MaxSize {
		return fmt.Errorf("%w: size bounds [%d, %d] are not usable", ErrSizeOutOfBounds, c.MinSize, c.MaxSize)
	}
	return nil
}
