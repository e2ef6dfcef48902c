package svgsanitize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uploadkit/uploadkit/pkg/svgsanitize"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	t.Run("script subtree fully discarded", func(t *testing.T) {
		t.Parallel()
		src := `<svg><script>alert(1)</script><rect width="1" height="1"/></svg>`

		out, err := svgsanitize.Sanitize([]byte(src))
		require.NoError(t, err)

		s := string(out)
		assert.NotContains(t, s, "<script")
		assert.NotContains(t, s, "alert(1)")
		assert.Contains(t, s, `<rect width="1" height="1">`)
	})

	t.Run("event handlers dropped", func(t *testing.T) {
		t.Parallel()
		src := `<svg onload="alert(1)"><circle cx="5" cy="5" r="4" onclick="evil()"/></svg>`

		out, err := svgsanitize.Sanitize([]byte(src))
		require.NoError(t, err)

		s := string(out)
		assert.NotContains(t, s, "onload")
		assert.NotContains(t, s, "onclick")
		assert.Contains(t, s, `cx="5"`)
	})

	t.Run("xlink href dropped", func(t *testing.T) {
		t.Parallel()
		src := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">` +
			`<text xlink:href="javascript:alert(1)">hi</text></svg>`

		out, err := svgsanitize.Sanitize([]byte(src))
		require.NoError(t, err)

		s := string(out)
		assert.NotContains(t, s, "href")
		assert.NotContains(t, s, "javascript")
		assert.Contains(t, s, ">hi</text>")
	})

	t.Run("foreignObject subtree discarded", func(t *testing.T) {
		t.Parallel()
		src := `<svg><foreignObject><body xmlns="http://www.w3.org/1999/xhtml">` +
			`<img src="x" onerror="alert(1)"/></body></foreignObject><path d="M0 0"/></svg>`

		out, err := svgsanitize.Sanitize([]byte(src))
		require.NoError(t, err)

		s := string(out)
		assert.NotContains(t, s, "foreignObject")
		assert.NotContains(t, s, "onerror")
		assert.NotContains(t, s, "img")
		assert.Contains(t, s, `<path d="M0 0">`)
	})

	t.Run("comments and processing instructions removed", func(t *testing.T) {
		t.Parallel()
		src := `<?xml version="1.0"?><!-- header --><svg><!-- inner --><rect width="2" height="2"/></svg>`

		out, err := svgsanitize.Sanitize([]byte(src))
		require.NoError(t, err)

		s := string(out)
		assert.NotContains(t, s, "<!--")
		assert.NotContains(t, s, "<?xml")
		assert.Contains(t, s, "<rect")
	})

	t.Run("gradient structure preserved", func(t *testing.T) {
		t.Parallel()
		src := `<svg><defs><linearGradient id="g"><stop offset="0" stop-color="red"/>` +
			`<stop offset="1" stop-color="blue"/></linearGradient></defs>` +
			`<rect fill="url(#g)" width="10" height="10"/></svg>`

		out, err := svgsanitize.Sanitize([]byte(src))
		require.NoError(t, err)

		s := string(out)
		assert.Contains(t, s, "<linearGradient id=\"g\">")
		assert.Contains(t, s, `stop-color="red"`)
		assert.Contains(t, s, `fill="url(#g)"`)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		src := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">` +
			`<script>alert(1)</script>` +
			`<g transform="translate(1,1)"><rect width="1" height="1" fill="#fff"/>` +
			`<text font-size="4">a &amp; b</text></g></svg>`

		once, err := svgsanitize.Sanitize([]byte(src))
		require.NoError(t, err)

		twice, err := svgsanitize.Sanitize(once)
		require.NoError(t, err)

		assert.Equal(t, once, twice)
	})

	t.Run("non-svg root rejected", func(t *testing.T) {
		t.Parallel()
		_, err := svgsanitize.Sanitize([]byte(`<html><script>x</script></html>`))
		assert.ErrorIs(t, err, svgsanitize.ErrMalformedMarkup)
	})

	t.Run("truncated document rejected", func(t *testing.T) {
		t.Parallel()
		_, err := svgsanitize.Sanitize([]byte(`<svg><rect width="1"`))
		assert.ErrorIs(t, err, svgsanitize.ErrMalformedMarkup)
	})

	t.Run("unbalanced markup rejected", func(t *testing.T) {
		t.Parallel()
		_, err := svgsanitize.Sanitize([]byte(`<svg><g></svg>`))
		assert.ErrorIs(t, err, svgsanitize.ErrMalformedMarkup)
	})

	t.Run("content after root rejected", func(t *testing.T) {
		t.Parallel()
		_, err := svgsanitize.Sanitize([]byte(`<svg></svg><svg onload="x"></svg>`))
		assert.ErrorIs(t, err, svgsanitize.ErrMalformedMarkup)
	})

	t.Run("empty input rejected", func(t *testing.T) {
		t.Parallel()
		_, err := svgsanitize.Sanitize(nil)
		assert.ErrorIs(t, err, svgsanitize.ErrMalformedMarkup)
	})

	t.Run("token budget enforced", func(t *testing.T) {
		t.Parallel()
		var b strings.Builder
		b.WriteString("<svg>")
		for i := 0; i < 60_000; i++ {
			b.WriteString(`<rect width="1" height="1"/>`)
		}
		b.WriteString("</svg>")

		_, err := svgsanitize.Sanitize([]byte(b.String()))
		assert.ErrorIs(t, err, svgsanitize.ErrMarkupTooComplex)
	})

	t.Run("style and class dropped", func(t *testing.T) {
		t.Parallel()
		src := `<svg><rect style="fill:red" class="x" width="3" height="3"/></svg>`

		out, err := svgsanitize.Sanitize([]byte(src))
		require.NoError(t, err)

		s := string(out)
		assert.NotContains(t, s, "style=")
		assert.NotContains(t, s, "class=")
		assert.Contains(t, s, `width="3"`)
	})
}

// Re-parsing the sanitized output must show zero execution-capable
// elements regardless of how the attack is nested.
func TestSanitize_NoExecutableContentSurvives(t *testing.T) {
	t.Parallel()

	payloads := []string{
		`<svg><script href="data:x">alert(1)</script></svg>`,
		`<svg><g><g><script>nested()</script></g></g></svg>`,
		`<svg><animate attributeName="href" values="javascript:alert(1)"/></svg>`,
		`<svg><set attributeName="onmouseover" to="alert(1)"/></svg>`,
		`<svg><use href="#x"/><image href="http://evil/x.svg"/></svg>`,
	}

	for _, src := range payloads {
		out, err := svgsanitize.Sanitize([]byte(src))
		require.NoError(t, err, "payload: %s", src)

		s := string(out)
		for _, bad := range []string{"<script", "<animate", "<set", "<use", "<image", "javascript:", "alert("} {
			assert.NotContains(t, s, bad, "payload: %s", src)
		}
	}
}
