package theme

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/exp/shiny/iconvg"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

// MaterialIcons maps theme icon names to Material Design icons.
var MaterialIcons = map[string][]byte{
	"document-generic":   icons.ActionDescription,
	"emblem-favorite":    icons.ActionGrade,
	"emblem-warning":     icons.AlertWarning,
	"dialog-warning":     icons.AlertWarning,
	"dialog-information": icons.ActionInfo,
	"emblem-question":    icons.ActionHelp,
	"dialog-ok":          icons.ActionDone,
	"dialog-cancel":      icons.NavigationCancel,
	"folder":             icons.FileFolder,
}

const defaultMaterialSize = 48

// Material is a fallback theme that renders the built-in Material Design
// icons to PNG files below Dir, one sub-directory per pixel size.
// Files already present are reused.
type Material struct {
	Dir string

	mu sync.Mutex
}

// NewMaterial returns a Material theme writing into dir.
func NewMaterial(dir string) *Material {
	return &Material{Dir: dir}
}

// LookupIcon implements Lookup.
func (m *Material) LookupIcon(name string, size int) (Info, bool) {
	data, ok := MaterialIcons[name]
	if !ok {
		return Info{}, false
	}
	if size <= 0 {
		size = defaultMaterialSize
	}

	path := filepath.Join(m.Dir, fmt.Sprintf("%dx%d", size, size), name+".png")

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		return Info{Path: path}, true
	}
	if err := materialize(path, data, size); err != nil {
		return Info{}, false
	}
	return Info{Path: path}, true
}

// materialize rasterizes the IconVG data to a size×size PNG at path.
func materialize(path string, data []byte, size int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "cannot create material theme directory")
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	var z iconvg.Rasterizer
	z.SetDstImage(dst, dst.Bounds(), draw.Src)
	if err := iconvg.Decode(&z, data, nil); err != nil {
		return errors.Wrapf(err, "cannot decode material icon %s", filepath.Base(path))
	}
	return imaging.Save(dst, path)
}
