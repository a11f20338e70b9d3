package icon

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugarlabs/icon/theme"
)

func TestResolver_ExplicitFile(t *testing.T) {
	r := &Resolver{Theme: stubTheme{}}

	ri, err := r.Resolve("/tmp/activity.svg", "ignored", 55)
	require.NoError(t, err)
	assert.Equal(t, ResolvedIcon{Path: "/tmp/activity.svg", IsVector: true}, ri)

	ri, err = r.Resolve("/tmp/photo.PNG", "", 0)
	require.NoError(t, err)
	assert.False(t, ri.IsVector)
}

func TestResolver_ThemeAttachPoints(t *testing.T) {
	r := &Resolver{Theme: stubTheme{
		"computer-xo": {Path: "/icons/computer-xo.svg", AttachPoints: []image.Point{{X: 85, Y: 40}}},
	}}

	ri, err := r.Resolve("", "computer-xo", 100)
	require.NoError(t, err)
	assert.Equal(t, "/icons/computer-xo.svg", ri.Path)
	assert.InDelta(t, 0.85, ri.AttachX, 1e-9)
	assert.InDelta(t, 0.40, ri.AttachY, 1e-9)
}

func TestResolver_Sidecar(t *testing.T) {
	dir := t.TempDir()
	good := writeSquare(t, dir, "good.svg", red)
	writeFile(t, filepath.Join(dir, "good.icon"), "[Icon Data]\nAttachPoints=850,900\n")
	bad := writeSquare(t, dir, "bad.svg", red)
	writeFile(t, filepath.Join(dir, "bad.icon"), "[Icon Data]\nAttachPoints=far,away\n")
	bare := writeSquare(t, dir, "bare.svg", red)

	r := &Resolver{Theme: stubTheme{
		"good": {Path: good},
		"bad":  {Path: bad},
		"bare": {Path: bare},
	}}

	testCases := []struct {
		name   string
		ax, ay float64
	}{
		{"good", 0.85, 0.9},
		{"bad", 0, 0},
		{"bare", 0, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ri, err := r.Resolve("", tc.name, 0)
			require.NoError(t, err)
			assert.InDelta(t, tc.ax, ri.AttachX, 1e-9)
			assert.InDelta(t, tc.ay, ri.AttachY, 1e-9)
		})
	}
}

func TestReadAttachPoints_CaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"lower.icon": "[icon data]\nattachpoints=250,750\n",
		"upper.icon": "[ICON DATA]\nATTACHPOINTS = 250, 750\n",
	} {
		x, y, err := ReadAttachPoints(writeFile(t, filepath.Join(dir, name), content))
		require.NoError(t, err, name)
		assert.InDelta(t, 0.25, x, 1e-9, name)
		assert.InDelta(t, 0.75, y, 1e-9, name)
	}
}

func TestReadAttachPoints_Errors(t *testing.T) {
	dir := t.TempDir()
	testCases := map[string]string{
		"nosection.icon": "AttachPoints=1,2\n",
		"nokey.icon":     "[Icon Data]\nDisplayName=x\n",
		"single.icon":    "[Icon Data]\nAttachPoints=500\n",
	}
	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ReadAttachPoints(writeFile(t, filepath.Join(dir, name), content))
			var metaErr *MetadataParseError
			assert.ErrorAs(t, err, &metaErr)
		})
	}
}

func TestResolver_NotFound(t *testing.T) {
	r := &Resolver{Theme: theme.Chain{stubTheme{}}}

	_, err := r.Resolve("", "no-such-icon", 55)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Resolve("", "", 55)
	assert.ErrorIs(t, err, ErrNotFound)
}
