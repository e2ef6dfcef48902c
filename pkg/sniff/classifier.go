package sniff

import (
	"bytes"
	"encoding/xml"
	"io"
	"net/http"
	"strings"
)

// SniffLimit is the number of leading bytes signature detection needs. It
// matches the maximum http.DetectContentType reads; every supported binary
// signature sits well within it.
const SniffLimit = 512

// MarkupScanLimit is the number of leading bytes the structural markup
// check may scan. Vector editors routinely emit a license comment, a
// doctype, and generator metadata ahead of the root element, pushing it
// well past SniffLimit.
const MarkupScanLimit = 4096

// utf8BOM is stripped before structural parsing; encoding/xml treats it as
// character data otherwise.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Verdict is the classification result for one upload.
type Verdict struct {
	// ContentType is the sniffed type, normalized without parameters.
	ContentType string
	// Allowed reports membership in the format allow-list.
	Allowed bool
	// Markup reports that the content is markup-bearing and must pass
	// through sanitization before it becomes servable.
	Markup bool
}

// allowed is the format allow-list. Acceptance requires the sniffed
// signature to be a member; declared types are never consulted.
var allowed = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// svgTokenScanCap bounds the structural check so that pathological inputs
// with thousands of leading comments or directives cannot stall it.
const svgTokenScanCap = 64

// Classify inspects a bounded byte prefix and returns the verdict.
// It never fails on malformed input; anything unrecognized is simply not
// allowed.
func Classify(prefix []byte) Verdict {
	head := prefix
	if len(head) > SniffLimit {
		head = head[:SniffLimit]
	}
	sniffed, _, _ := strings.Cut(http.DetectContentType(head), ";")
	sniffed = strings.TrimSpace(sniffed)

	if allowed[sniffed] {
		return Verdict{ContentType: sniffed, Allowed: true}
	}

	// SVG carries no magic bytes. DetectContentType labels it text/xml or
	// text/plain, so fall through to a structural root-element check over
	// the full prefix, which may run past the signature window.
	if strings.HasPrefix(sniffed, "text/") && isSVG(prefix) {
		return Verdict{ContentType: "image/svg+xml", Allowed: true, Markup: true}
	}

	return Verdict{ContentType: sniffed}
}

// isSVG reports whether the prefix opens a well-formed document whose root
// element is svg. Leading XML declarations, comments, and doctype
// directives are skipped.
func isSVG(prefix []byte) bool {
	prefix = bytes.TrimPrefix(prefix, utf8BOM)
	dec := xml.NewDecoder(bytes.NewReader(prefix))
	for i := 0; i < svgTokenScanCap; i++ {
		tok, err := dec.Token()
		if err != nil {
			// io.EOF included: prefix ended before any element appeared.
			return false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return strings.EqualFold(t.Name.Local, "svg")
		case xml.ProcInst, xml.Comment, xml.Directive:
			// skip prologue
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return false
			}
		}
	}
	return false
}

// Reader wraps classification of a stream: it reads at most MarkupScanLimit
// bytes and classifies them. Read errors other than a short prefix are
// returned to the caller as I/O faults.
func Reader(r io.Reader) (Verdict, error) {
	prefix := make([]byte, MarkupScanLimit)
	n, err := io.ReadFull(r, prefix)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Verdict{}, err
	}
	return Classify(prefix[:n]), nil
}
