package icon

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sugarlabs/icon/theme"
	"gopkg.in/ini.v1"
)

// DefaultLookupSize is the pixel size names are looked up at when the
// request carries no width.
const DefaultLookupSize = 50

// ResolvedIcon is a concrete icon file plus the point a badge is centered on.
type ResolvedIcon struct {
	Path string
	// AttachX and AttachY are fractions of the icon size.
	AttachX, AttachY float64
	IsVector         bool
}

// Resolver turns explicit paths and symbolic names into icon files.
type Resolver struct {
	// Theme looks up symbolic names. Nil selects theme.Default.
	Theme theme.Lookup
}

func (r *Resolver) theme() theme.Lookup {
	if r.Theme != nil {
		return r.Theme
	}
	return defaultTheme()
}

// Resolve returns the icon for an explicit file, or else for a symbolic
// name looked up at size pixels. It fails with ErrNotFound when neither
// yields a file.
func (r *Resolver) Resolve(file, name string, size int) (ResolvedIcon, error) {
	if file != "" {
		return ResolvedIcon{Path: file, IsVector: isVector(file)}, nil
	}
	if name == "" {
		return ResolvedIcon{}, errors.Wrap(ErrNotFound, "no icon name")
	}
	if size <= 0 {
		size = DefaultLookupSize
	}

	info, ok := r.theme().LookupIcon(name, size)
	if !ok || info.Path == "" {
		log().Warn("no icon with the name was found in the theme", "name", name)
		return ResolvedIcon{}, errors.Wrapf(ErrNotFound, "icon %q", name)
	}

	ri := ResolvedIcon{Path: info.Path, IsVector: isVector(info.Path)}
	ri.AttachX, ri.AttachY = attachPoints(info, size)

	return ri, nil
}

func isVector(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".svg")
}

// attachPoints prefers the points reported by the theme and falls back on
// the .icon side-car of SVG files.
func attachPoints(info theme.Info, size int) (float64, float64) {
	if len(info.AttachPoints) > 0 {
		p := info.AttachPoints[0]
		return float64(p.X) / float64(size), float64(p.Y) / float64(size)
	}

	meta := sidecarPath(info.Path)
	if meta == "" {
		return 0, 0
	}
	if _, err := os.Stat(meta); err != nil {
		return 0, 0
	}

	x, y, err := ReadAttachPoints(meta)
	if err != nil {
		log().Error("exception reading icon info", "path", meta, "error", err)
		return 0, 0
	}
	return x, y
}

// sidecarPath returns the .icon file belonging to an SVG icon,
// or the empty string for other formats.
func sidecarPath(path string) string {
	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, ".svg") {
		return ""
	}
	return strings.TrimSuffix(path, ext) + ".icon"
}

// ReadAttachPoints parses the AttachPoints entry of an .icon file:
//
//	[Icon Data]
//	AttachPoints=850,850
//
// The values are per-mille of the icon size.
func ReadAttachPoints(path string) (float64, float64, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, path)
	if err != nil {
		return 0, 0, &MetadataParseError{Path: path, Err: err}
	}
	// Insensitive loading lowers section and key names.
	sec, err := cfg.GetSection("icon data")
	if err != nil {
		return 0, 0, &MetadataParseError{Path: path, Err: err}
	}
	if !sec.HasKey("attachpoints") {
		return 0, 0, &MetadataParseError{Path: path, Err: errors.New("missing AttachPoints")}
	}

	parts := strings.Split(sec.Key("attachpoints").String(), ",")
	if len(parts) < 2 {
		return 0, 0, &MetadataParseError{Path: path, Err: errors.New("AttachPoints needs two values")}
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, &MetadataParseError{Path: path, Err: err}
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, &MetadataParseError{Path: path, Err: err}
	}
	return x / 1000, y / 1000, nil
}
