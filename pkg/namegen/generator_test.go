package namegen_test

import (
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uploadkit/uploadkit/pkg/namegen"
)

var namePattern = regexp.MustCompile(`^[a-z0-9.-]+$`)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("png name", func(t *testing.T) {
		t.Parallel()
		name, err := namegen.Generate("image/png")
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(name, ".png"), "got %q", name)
		assert.Regexp(t, namePattern, name)
		assert.NotContains(t, name, "/")
		assert.NotContains(t, name, "\\")
		assert.NotContains(t, name, "..")
	})

	t.Run("all mapped types", func(t *testing.T) {
		t.Parallel()
		types := map[string]string{
			"image/png":       ".png",
			"image/jpeg":      ".jpg",
			"image/gif":       ".gif",
			"image/webp":      ".webp",
			"image/svg+xml":   ".svg",
			"application/pdf": ".pdf",
		}
		for ct, ext := range types {
			name, err := namegen.Generate(ct)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(name, ext), "type %s: got %q", ct, name)
		}
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		t.Parallel()
		_, err := namegen.Generate("application/x-msdownload")
		assert.ErrorIs(t, err, namegen.ErrUnknownContentType)
	})

	t.Run("empty type rejected", func(t *testing.T) {
		t.Parallel()
		_, err := namegen.Generate("")
		assert.ErrorIs(t, err, namegen.ErrUnknownContentType)
	})
}

func TestGenerate_Uniqueness(t *testing.T) {
	t.Parallel()

	const (
		workers   = 8
		perWorker = 1250 // 10k names total
	)

	var (
		mu    sync.Mutex
		seen  = make(map[string]struct{}, workers*perWorker)
		wg    sync.WaitGroup
		errCh = make(chan error, workers)
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for j := 0; j < perWorker; j++ {
				name, err := namegen.Generate("image/png")
				if err != nil {
					errCh <- err
					return
				}
				local = append(local, name)
			}
			mu.Lock()
			for _, n := range local {
				seen[n] = struct{}{}
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	assert.Len(t, seen, workers*perWorker, "name collision detected")
}

func TestStaging(t *testing.T) {
	t.Parallel()

	name, err := namegen.Staging()
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, ".part"))
	assert.Regexp(t, namePattern, name)
	assert.NotContains(t, name, "/")

	other, err := namegen.Staging()
	require.NoError(t, err)
	assert.NotEqual(t, name, other)
}

func TestExtension(t *testing.T) {
	t.Parallel()

	ext, ok := namegen.Extension("image/svg+xml")
	assert.True(t, ok)
	assert.Equal(t, ".svg", ext)

	_, ok = namegen.Extension("text/html")
	assert.False(t, ok)
}
