// Package sniff determines the true content type of uploaded bytes,
// independent of any caller-declared header.
//
// Classification reads a bounded prefix of the staged bytes and matches it
// against known binary signatures via http.DetectContentType. Formats with
// no reliable signature (SVG, which is plain XML) are classified
// structurally by the presence of the expected root element; that check
// scans a larger prefix than signature detection, because editor exports
// often open with kilobytes of comments and doctype before the root. The
// caller-declared content type is advisory metadata only and never
// participates in the accept/reject decision.
//
// Malformed input is never an error - it simply yields a verdict with
// Allowed set to false. Only I/O failures reading the staged bytes are
// faults, and those belong to the caller.
//
// # Usage
//
//	prefix := make([]byte, sniff.MarkupScanLimit)
//	n, _ := io.ReadFull(f, prefix)
//
//	v := sniff.Classify(prefix[:n])
//	if !v.Allowed {
//	    // reject upload
//	}
package sniff
