package svgsanitize

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// maxTokens bounds parse work per document. A legitimate vector graphic
// stays far below this; only crafted inputs approach it.
const maxTokens = 100_000

// allowedElements is the closed set of element names the rebuilt document
// may contain. Everything else - script, foreignObject, animate, use,
// image, and anything unknown - is dropped together with its entire
// subtree. Names are matched case-sensitively: XML is case-sensitive and
// a <SCRIPT> element is simply not on the list.
var allowedElements = map[string]bool{
	"svg":            true,
	"g":              true,
	"defs":           true,
	"title":          true,
	"desc":           true,
	"path":           true,
	"rect":           true,
	"circle":         true,
	"ellipse":        true,
	"line":           true,
	"polyline":       true,
	"polygon":        true,
	"text":           true,
	"tspan":          true,
	"linearGradient": true,
	"radialGradient": true,
	"stop":           true,
	"clipPath":       true,
}

// allowedAttrs is the closed set of attribute names: geometry, styling,
// and document metadata only. URL-bearing attributes (href, xlink:href)
// and event handlers (on*) are absent and therefore dropped.
var allowedAttrs = map[string]bool{
	"xmlns":               true,
	"version":             true,
	"viewBox":             true,
	"preserveAspectRatio": true,
	"id":                  true,
	"width":               true,
	"height":              true,
	"x":                   true,
	"y":                   true,
	"x1":                  true,
	"y1":                  true,
	"x2":                  true,
	"y2":                  true,
	"cx":                  true,
	"cy":                  true,
	"r":                   true,
	"rx":                  true,
	"ry":                  true,
	"d":                   true,
	"points":              true,
	"transform":           true,
	"fill":                true,
	"fill-rule":           true,
	"fill-opacity":        true,
	"stroke":              true,
	"stroke-width":        true,
	"stroke-linecap":      true,
	"stroke-linejoin":     true,
	"stroke-dasharray":    true,
	"stroke-opacity":      true,
	"opacity":             true,
	"offset":              true,
	"stop-color":          true,
	"stop-opacity":        true,
	"font-family":         true,
	"font-size":           true,
	"font-weight":         true,
	"text-anchor":         true,
	"gradientUnits":       true,
	"gradientTransform":   true,
	"clip-path":           true,
	"clip-rule":           true,
}

// Sanitize rebuilds src using only allow-listed elements and attributes.
// Disallowed elements are discarded with their whole subtree, never
// escaped or commented out. The output is serialized deterministically, so
// sanitizing already-sanitized content yields byte-identical results.
//
// Any parse failure is a hard rejection: a document that cannot be rebuilt
// safely must never be served.
func Sanitize(src []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(src))
	dec.Strict = true

	var (
		buf      bytes.Buffer
		stack    []string // open elements already written to buf
		skip     int      // depth inside a discarded subtree
		seenRoot bool
		rootDone bool
	)

	for tokens := 0; ; tokens++ {
		if tokens > maxTokens {
			return nil, ErrMarkupTooComplex
		}

		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if skip > 0 {
				skip++
				continue
			}
			if rootDone {
				// A second top-level element is not a reconstructible SVG
				// document.
				return nil, fmt.Errorf("%w: content after root element", ErrMalformedMarkup)
			}
			if !seenRoot {
				if t.Name.Local != "svg" {
					return nil, fmt.Errorf("%w: root element is not svg", ErrMalformedMarkup)
				}
				seenRoot = true
			}
			if !allowedElements[t.Name.Local] {
				skip++
				continue
			}
			if err := writeStart(&buf, t); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
			}
			stack = append(stack, t.Name.Local)

		case xml.EndElement:
			if skip > 0 {
				skip--
				continue
			}
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unbalanced end element", ErrMalformedMarkup)
			}
			name := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			buf.WriteString("</")
			buf.WriteString(name)
			buf.WriteByte('>')
			if len(stack) == 0 {
				rootDone = true
			}

		case xml.CharData:
			if skip > 0 || len(stack) == 0 {
				continue
			}
			if err := xml.EscapeText(&buf, t); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
			}

		case xml.Comment, xml.ProcInst, xml.Directive:
			// Dropped: none of these survive into servable output.
		}
	}

	if skip != 0 || len(stack) != 0 || !seenRoot {
		return nil, fmt.Errorf("%w: truncated document", ErrMalformedMarkup)
	}

	return buf.Bytes(), nil
}

// writeStart serializes a start element keeping only allow-listed,
// non-namespaced attributes in source order.
func writeStart(buf *bytes.Buffer, t xml.StartElement) error {
	buf.WriteByte('<')
	buf.WriteString(t.Name.Local)

	for _, a := range t.Attr {
		if !keepAttr(a) {
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(a.Name.Local)
		buf.WriteString(`="`)
		if err := xml.EscapeText(buf, []byte(a.Value)); err != nil {
			return err
		}
		buf.WriteByte('"')
	}

	buf.WriteByte('>')
	return nil
}

func keepAttr(a xml.Attr) bool {
	// Namespaced attributes (xlink:href, xml:base, xmlns:* declarations)
	// never pass; the default xmlns declaration is the one exception.
	if a.Name.Space != "" {
		return false
	}
	if !allowedAttrs[a.Name.Local] {
		return false
	}
	// The allow-list holds no URL or handler attributes; a scheme smuggled
	// into a styling value is dropped as well.
	if v := strings.ToLower(strings.TrimSpace(a.Value)); strings.Contains(v, "javascript:") || strings.HasPrefix(v, "data:") {
		return false
	}
	return true
}
