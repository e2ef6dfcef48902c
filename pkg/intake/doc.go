// Package intake is the secure file-ingestion pipeline: it accepts an
// untrusted byte stream, determines its true content type independent of
// caller claims, stores it under a name and path it fully controls, and
// neutralizes embedded executable content in markup formats before the
// asset becomes servable.
//
// # Pipeline
//
// Each Process call walks a linear sequence of fallible steps:
//
//	Received -> Staged -> Classified -> (Sanitizing ->) Finalized
//
// Bytes are staged under a generated name in the staging container, the
// staged prefix is sniffed (pkg/sniff), markup formats are rewritten to a
// safe subset (pkg/svgsanitize), and the file is finalized into the assets
// container under a fresh generated name. Any fault after staging discards
// the staged file before the fault propagates: a rejected upload leaves
// zero residual bytes under the storage root.
//
// # Trust model
//
// The declared content type, filename, and size are advisory. Acceptance
// is decided by signature sniffing alone; storage names come from
// pkg/namegen and never incorporate caller strings; the declared filename
// survives only as the OriginalName display label on the returned Asset.
//
// # Concurrency
//
// Pipeline invocations share only the immutable storage root. Correctness
// under concurrency rests on generated-name collision resistance and on
// create-exclusive filesystem semantics at both the staging write and the
// finalize step.
//
// # Usage
//
//	var cfg intake.Config
//	config.MustLoad(&cfg)
//
//	pipe, err := intake.New(cfg, intake.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//
//	asset, err := pipe.Process(ctx, intake.Upload{
//	    Body:                r.Body,
//	    DeclaredContentType: r.Header.Get("Content-Type"),
//	    DeclaredFilename:    header.Filename,
//	    DeclaredSize:        r.ContentLength,
//	})
package intake
