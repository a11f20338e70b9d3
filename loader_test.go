package icon

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Recolors(t *testing.T) {
	path := writeSquare(t, t.TempDir(), "icon.svg", white)
	l := &Loader{Documents: NewDocumentCache(10)}

	doc, err := l.Load(path, map[string]string{FillEntity: hex(green)}, false)
	require.NoError(t, err)
	assert.Equal(t, 100, doc.Width())
	assert.Equal(t, 100, doc.Height())
	assertPixel(t, doc.Rasterize(), 50, 50, green)

	doc, err = l.Load(path, nil, false)
	require.NoError(t, err)
	assertPixel(t, doc.Rasterize(), 50, 50, white)
}

func TestLoader_CacheFlag(t *testing.T) {
	assert := assert.New(t)
	path := writeSquare(t, t.TempDir(), "icon.svg", red)
	l := &Loader{Documents: NewDocumentCache(10)}

	_, err := l.Load(path, nil, false)
	require.NoError(t, err)
	assert.Equal(0, l.Documents.Len(), "uncached loads must not populate the cache")

	_, err = l.Load(path, nil, true)
	require.NoError(t, err)
	assert.True(l.Documents.Contains(path))

	// Rewrite the file: cached loads keep the first text, uncached ones
	// read the new one.
	writeSquare(t, filepath.Dir(path), "icon.svg", blue)

	doc, err := l.Load(path, nil, true)
	require.NoError(t, err)
	assertPixel(t, doc.Rasterize(), 50, 50, red)

	doc, err = l.Load(path, nil, false)
	require.NoError(t, err)
	assertPixel(t, doc.Rasterize(), 50, 50, blue)

	// Recoloring a cached document does not alter the cached text.
	doc, err = l.Load(path, map[string]string{FillEntity: hex(green)}, true)
	require.NoError(t, err)
	assertPixel(t, doc.Rasterize(), 50, 50, green)
	doc, err = l.Load(path, nil, true)
	require.NoError(t, err)
	assertPixel(t, doc.Rasterize(), 50, 50, red)
}

func TestLoader_SkipsInvalidEntity(t *testing.T) {
	path := writeSquare(t, t.TempDir(), "icon.svg", red)
	l := &Loader{Documents: NewDocumentCache(10)}

	doc, err := l.Load(path, map[string]string{FillEntity: `#00FF00"/><rect fill="`}, false)
	require.NoError(t, err)
	assertPixel(t, doc.Rasterize(), 50, 50, red)
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	l := &Loader{Documents: NewDocumentCache(10)}

	_, err := l.Load(filepath.Join(dir, "missing.svg"), nil, false)
	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, ErrNotFound)

	broken := writeFile(t, filepath.Join(dir, "broken.svg"), "<svg><rect")
	_, err = l.Load(broken, nil, false)
	assert.ErrorAs(t, err, &loadErr)
	assert.NotErrorIs(t, err, ErrNotFound)

	empty := writeFile(t, filepath.Join(dir, "empty.svg"), `<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	_, err = l.Load(empty, nil, false)
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, empty, loadErr.Path)
}

func TestLoader_UnreadableFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	path := writeSquare(t, t.TempDir(), "icon.svg", red)
	require.NoError(t, os.Chmod(path, 0))

	_, err := (&Loader{Documents: NewDocumentCache(10)}).Load(path, nil, false)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), path)
}

func TestLoader_NaturalSize(t *testing.T) {
	testCases := []struct {
		name          string
		attrs         string
		width, height int
	}{
		{"width overrides view box", `width="48" height="48" viewBox="0 0 24 24"`, 48, 48},
		{"units", `width="36pt" height="1in" viewBox="0 0 24 24"`, 48, 96},
		{"view box only", `viewBox="0 0 24 12"`, 24, 12},
		{"relative width", `width="100%" height="30px" viewBox="0 0 24 24"`, 24, 30},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text := `<svg xmlns="http://www.w3.org/2000/svg" ` + tc.attrs + `>` +
				`<rect x="0" y="0" width="24" height="24" fill="#00FF00"/></svg>`
			path := writeFile(t, filepath.Join(t.TempDir(), "icon.svg"), text)

			doc, err := (&Loader{Documents: NewDocumentCache(10)}).Load(path, nil, false)
			require.NoError(t, err)
			assert.Equal(t, tc.width, doc.Width())
			assert.Equal(t, tc.height, doc.Height())
		})
	}

	// The view box is stretched over the natural size.
	text := `<svg xmlns="http://www.w3.org/2000/svg" width="48" height="48" viewBox="0 0 24 24">` +
		`<rect x="0" y="0" width="12" height="24" fill="#00FF00"/></svg>`
	path := writeFile(t, filepath.Join(t.TempDir(), "half.svg"), text)
	doc, err := (&Loader{Documents: NewDocumentCache(10)}).Load(path, nil, false)
	require.NoError(t, err)
	img := doc.Rasterize()
	assertPixel(t, img, 20, 24, green)
	assertPixel(t, img, 30, 24, color.RGBA{})
}
