// Package storagepath resolves and validates on-disk storage locations for
// the ingestion pipeline.
//
// The package is built around the Root type: an absolute directory resolved
// once at startup. Every path the pipeline writes to is produced by Join or
// ResolveContainer, both of which verify that the canonicalized result stays
// inside the root. The check defends against symlink and dot-dot escapes
// introduced by misconfiguration; caller input never reaches these
// functions.
//
// # Usage
//
//	root, err := storagepath.NewRoot("/var/lib/app/uploads")
//	if err != nil {
//	    return err
//	}
//
//	dir, err := root.ResolveContainer("assets")
//	if err != nil {
//	    return err
//	}
//
//	dst, err := root.Join(filepath.Join("assets", storedName))
//	if err != nil {
//	    return err
//	}
package storagepath
