// Package svgsanitize rewrites SVG documents to a safe subset before they
// become servable.
//
// The sanitizer parses the input permissively and rebuilds it using a
// strict allow-list of element names and attribute names. Anything not on
// the lists is removed outright: disallowed elements are discarded with
// their entire subtree (a <script> body never survives as text), event
// handler attributes and URL-bearing attributes are dropped, and comments,
// processing instructions, and doctype directives do not appear in the
// output at all.
//
// Serialization is deterministic, which makes Sanitize idempotent:
// running it on its own output returns byte-identical bytes. A parse
// failure is a hard rejection of the whole document - the package never
// produces partially sanitized output.
//
// # Usage
//
//	clean, err := svgsanitize.Sanitize(raw)
//	if err != nil {
//	    // reject the upload; do not serve raw
//	}
package svgsanitize
