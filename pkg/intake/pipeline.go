package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/uploadkit/uploadkit/pkg/logger"
	"github.com/uploadkit/uploadkit/pkg/namegen"
	"github.com/uploadkit/uploadkit/pkg/sniff"
	"github.com/uploadkit/uploadkit/pkg/storagepath"
	"github.com/uploadkit/uploadkit/pkg/svgsanitize"
)

// Upload is one caller-supplied payload. Every field is untrusted: the
// declared values are advisory metadata and never drive trust decisions or
// path construction.
type Upload struct {
	Body                io.Reader
	DeclaredContentType string
	DeclaredFilename    string
	DeclaredSize        int64
}

// Asset describes a finalized upload. OriginalName is carried only as a
// display label; deriving a filesystem path from it is a collaborator bug.
type Asset struct {
	StoredName   string
	PublicPath   string
	OriginalName string
	ContentType  string
	Size         int64
}

// Pipeline runs the ingestion state machine: stage, classify, sanitize
// (markup only), finalize. Invocations share nothing but the storage root,
// so concurrent Process calls need no synchronization.
type Pipeline struct {
	root storagepath.Root
	cfg  Config
	log  *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger, ignoring nil.
func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// New validates the configuration, resolves the storage root, and creates
// the staging and assets containers.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	root, err := storagepath.NewRoot(cfg.StorageDir)
	if err != nil {
		return nil, errors.Join(ErrPathViolation, err)
	}

	p := &Pipeline{root: root, cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}

	for _, subdir := range []string{cfg.StagingSubdir, cfg.AssetsSubdir} {
		if _, err := root.ResolveContainer(subdir); err != nil {
			return nil, errors.Join(ErrPathViolation, err)
		}
	}

	return p, nil
}

// Process ingests one upload. On success it returns the finalized asset
// descriptor; on any failure no staged bytes remain under the storage
// root. The declared content type never participates in the accept/reject
// decision - classification is by signature sniffing alone.
func (p *Pipeline) Process(ctx context.Context, up Upload) (*Asset, error) {
	if up.Body == nil {
		return nil, fmt.Errorf("%w: no payload", ErrIngestionFailed)
	}

	// Fast reject on the declared size where the transport supplies one.
	// The authoritative check runs against actual bytes written.
	if up.DeclaredSize > 0 && (up.DeclaredSize < p.cfg.MinSize || up.DeclaredSize > p.cfg.MaxSize) {
		return nil, fmt.Errorf("%w: declared %d bytes, allowed range [%d, %d]",
			ErrSizeOutOfBounds, up.DeclaredSize, p.cfg.MinSize, p.cfg.MaxSize)
	}

	stagedPath, size, err := p.stage(ctx, up.Body)
	if err != nil {
		return nil, err
	}

	// Single rollback point: every fault below discards the staged file
	// before it propagates.
	verdict, err := p.classify(ctx, stagedPath)
	if err != nil {
		p.discard(ctx, stagedPath)
		return nil, err
	}
	if !verdict.Allowed {
		p.discard(ctx, stagedPath)
		return nil, fmt.Errorf("%w: sniffed as %s", ErrTypeRejected, verdict.ContentType)
	}

	if verdict.Markup {
		size, err = p.sanitizeStaged(ctx, stagedPath)
		if err != nil {
			p.discard(ctx, stagedPath)
			return nil, err
		}
	}

	asset, err := p.finalize(ctx, stagedPath, verdict.ContentType, size, up.DeclaredFilename)
	if err != nil {
		p.discard(ctx, stagedPath)
		return nil, err
	}

	p.log.InfoContext(ctx, "upload finalized",
		logger.StoredName(asset.StoredName),
		logger.ContentType(asset.ContentType),
		logger.ByteSize(asset.Size),
	)

	return asset, nil
}

// stage writes the payload to a generated location under the staging
// container, enforcing the size bounds against actual bytes written.
func (p *Pipeline) stage(ctx context.Context, body io.Reader) (string, int64, error) {
	name, err := namegen.Staging()
	if err != nil {
		return "", 0, errors.Join(ErrIngestionFailed, err)
	}

	// Containment is re-validated here, immediately before the write.
	dst, err := p.root.Join(filepath.Join(p.cfg.StagingSubdir, name))
	if err != nil {
		p.log.ErrorContext(ctx, "staging path escaped storage root", logger.Error(err))
		return "", 0, ErrPathViolation
	}

	// O_EXCL: a name collision fails instead of overwriting.
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		p.log.ErrorContext(ctx, "failed to create staged file", logger.Error(err))
		return "", 0, ErrIngestionFailed
	}

	written := int64(0)
	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			_ = f.Close()
			p.discard(ctx, dst)
			return "", 0, errors.Join(ErrIngestionFailed, ctx.Err())
		default:
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			if written+int64(n) > p.cfg.MaxSize {
				_ = f.Close()
				p.discard(ctx, dst)
				return "", 0, fmt.Errorf("%w: payload exceeds %d bytes", ErrSizeOutOfBounds, p.cfg.MaxSize)
			}
			nw, writeErr := f.Write(buf[:n])
			if writeErr != nil {
				_ = f.Close()
				p.discard(ctx, dst)
				p.log.ErrorContext(ctx, "failed to write staged file", logger.Error(writeErr))
				return "", 0, ErrIngestionFailed
			}
			written += int64(nw)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = f.Close()
			p.discard(ctx, dst)
			return "", 0, errors.Join(ErrIngestionFailed, readErr)
		}
	}

	if err := f.Close(); err != nil {
		p.discard(ctx, dst)
		p.log.ErrorContext(ctx, "failed to close staged file", logger.Error(err))
		return "", 0, ErrIngestionFailed
	}

	if written < p.cfg.MinSize {
		p.discard(ctx, dst)
		return "", 0, fmt.Errorf("%w: %d bytes, minimum is %d", ErrSizeOutOfBounds, written, p.cfg.MinSize)
	}

	return dst, written, nil
}

// classify sniffs the staged bytes. Malformed content is a verdict, not an
// error; only I/O faults reading the staged file surface here.
func (p *Pipeline) classify(ctx context.Context, stagedPath string) (sniff.Verdict, error) {
	f, err := os.Open(stagedPath)
	if err != nil {
		p.log.ErrorContext(ctx, "failed to open staged file", logger.Error(err))
		return sniff.Verdict{}, ErrIngestionFailed
	}
	defer func() { _ = f.Close() }()

	verdict, err := sniff.Reader(f)
	if err != nil {
		p.log.ErrorContext(ctx, "failed to read staged file", logger.Error(err))
		return sniff.Verdict{}, ErrIngestionFailed
	}

	return verdict, nil
}

// sanitizeStaged rewrites the staged markup in place and returns the new
// byte length. A sanitizer rejection fails the whole upload - partially
// sanitized content is never finalized.
func (p *Pipeline) sanitizeStaged(ctx context.Context, stagedPath string) (int64, error) {
	raw, err := os.ReadFile(stagedPath)
	if err != nil {
		p.log.ErrorContext(ctx, "failed to read staged markup", logger.Error(err))
		return 0, ErrIngestionFailed
	}

	clean, err := svgsanitize.Sanitize(raw)
	if err != nil {
		return 0, errors.Join(ErrSanitizationFailed, err)
	}

	if err := os.WriteFile(stagedPath, clean, 0644); err != nil {
		p.log.ErrorContext(ctx, "failed to overwrite staged markup", logger.Error(err))
		return 0, ErrIngestionFailed
	}

	return int64(len(clean)), nil
}

// finalize moves the staged file into the assets container under a
// generated name. The link-then-remove sequence fails if the destination
// unexpectedly exists, rather than silently overwriting it.
func (p *Pipeline) finalize(ctx context.Context, stagedPath, contentType string, size int64, declaredName string) (*Asset, error) {
	name, err := namegen.Generate(contentType)
	if err != nil {
		// The classifier allow-list and the extension mapping cover the
		// same types; a gap between them is an internal defect.
		p.log.ErrorContext(ctx, "no extension mapping for allowed type", logger.ContentType(contentType), logger.Error(err))
		return nil, ErrIngestionFailed
	}

	dst, err := p.root.Join(filepath.Join(p.cfg.AssetsSubdir, name))
	if err != nil {
		p.log.ErrorContext(ctx, "asset path escaped storage root", logger.Error(err))
		return nil, ErrPathViolation
	}

	if err := os.Link(stagedPath, dst); err != nil {
		p.log.ErrorContext(ctx, "failed to finalize asset", logger.Error(err))
		return nil, ErrIngestionFailed
	}
	if err := os.Remove(stagedPath); err != nil {
		// The asset is already finalized; a lingering staged file is worth
		// a warning but not a failure.
		p.log.WarnContext(ctx, "failed to remove staged file after finalize", logger.Error(err))
	}

	return &Asset{
		StoredName:   name,
		PublicPath:   path.Join(p.cfg.PublicBaseURL, p.cfg.AssetsSubdir, name),
		OriginalName: displayName(declaredName),
		ContentType:  contentType,
		Size:         size,
	}, nil
}

// discard removes a staged file on a failure path. Removal failure is
// logged and never masks the fault being propagated.
func (p *Pipeline) discard(ctx context.Context, stagedPath string) {
	if err := os.Remove(stagedPath); err != nil && !os.IsNotExist(err) {
		p.log.WarnContext(ctx, "failed to remove staged file", logger.Error(err))
	}
}

// displayName reduces the caller-declared filename to a display label.
// The result is metadata only; path construction never consumes it.
func displayName(declared string) string {
	declared = strings.ReplaceAll(declared, "\\", "/")
	declared = path.Base(declared)
	declared = strings.ReplaceAll(declared, "\x00", "")

	if declared == "." || declared == ".." || declared == "" || declared == "/" {
		return "unnamed"
	}

	return declared
}
