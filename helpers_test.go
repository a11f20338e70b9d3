package icon

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugarlabs/icon/theme"
)

// squareIcon is a Sugar style icon covering its whole 100×100 box with
// the fill color.
const squareIcon = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd" [
	<!ENTITY stroke_color "#010101">
	<!ENTITY fill_color "%s">
]>
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100">
	<rect x="0" y="0" width="100" height="100" fill="&fill_color;"/>
</svg>
`

// halfIcon only covers the left half of its box.
const halfIcon = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd" [
	<!ENTITY fill_color "#FF0000">
]>
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100">
	<rect x="0" y="0" width="50" height="100" fill="&fill_color;"/>
</svg>
`

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writeSquare writes a square icon filled with c into dir.
func writeSquare(t *testing.T, dir, name string, c color.RGBA) string {
	t.Helper()
	return writeFile(t, filepath.Join(dir, name), fmt.Sprintf(squareIcon, hex(c)))
}

func assertPixel(t *testing.T, img *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	got := img.RGBAAt(x, y)
	const delta = 2
	assert.InDelta(t, want.R, got.R, delta, "red at %d,%d", x, y)
	assert.InDelta(t, want.G, got.G, delta, "green at %d,%d", x, y)
	assert.InDelta(t, want.B, got.B, delta, "blue at %d,%d", x, y)
	assert.InDelta(t, want.A, got.A, delta, "alpha at %d,%d", x, y)
}

// stubTheme maps icon names straight to theme entries.
type stubTheme map[string]theme.Info

func (s stubTheme) LookupIcon(name string, size int) (theme.Info, bool) {
	info, ok := s[name]
	return info, ok
}

// newTestBuffer returns a buffer with private caches, isolated from the
// process-wide ones.
func newTestBuffer(lookup theme.Lookup) *Buffer {
	return &Buffer{
		Theme:    lookup,
		Loader:   &Loader{Documents: NewDocumentCache(10)},
		Surfaces: NewSurfaceCache(10),
	}
}
