package icon

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/sugarlabs/icon/theme"
)

// FallbackName is the theme icon rendered when the requested icon
// cannot be found or loaded.
const FallbackName = "document-generic"

// Change tells a widget what a parameter update invalidated.
type Change uint8

const (
	// NeedsRedraw is set when the pixels of the icon may change.
	NeedsRedraw Change = 1 << iota
	// NeedsResize is set when the size of the icon may change.
	NeedsResize
)

// NoChange is returned by setters called with the current value.
const NoChange Change = 0

var (
	themeOnce   sync.Once
	sharedTheme theme.Lookup
)

func defaultTheme() theme.Lookup {
	themeOnce.Do(func() {
		sharedTheme = theme.Default()
	})
	return sharedTheme
}

// Buffer holds the parameters of an icon and renders them into a cached
// surface. A Buffer is not safe for concurrent use; the caches it draws
// from are.
type Buffer struct {
	// Theme looks up symbolic names. Nil selects theme.Default.
	Theme theme.Lookup
	// Loader loads vector documents. Nil selects a loader over
	// DefaultDocuments.
	Loader *Loader
	// Surfaces caches rendered surfaces. Nil selects DefaultSurfaces.
	Surfaces *SurfaceCache

	req Request
}

// NewBuffer returns a buffer using the shared theme and caches.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) loader() *Loader {
	if b.Loader != nil {
		return b.Loader
	}
	return defaultLoader
}

func (b *Buffer) surfaces() *SurfaceCache {
	if b.Surfaces != nil {
		return b.Surfaces
	}
	return DefaultSurfaces()
}

func (b *Buffer) resolver() *Resolver {
	return &Resolver{Theme: b.Theme}
}

// Request returns a copy of the current parameters.
func (b *Buffer) Request() Request { return b.req }

func setString(field *string, value string, change Change) Change {
	if *field == value {
		return NoChange
	}
	*field = value
	return change
}

// SetIconName sets the symbolic theme name of the icon.
func (b *Buffer) SetIconName(name string) Change {
	return setString(&b.req.IconName, name, NeedsRedraw|NeedsResize)
}

// IconName returns the symbolic theme name.
func (b *Buffer) IconName() string { return b.req.IconName }

// SetFile sets an explicit icon path, which takes precedence over the name.
func (b *Buffer) SetFile(path string) Change {
	return setString(&b.req.File, path, NeedsRedraw|NeedsResize)
}

// File returns the explicit icon path.
func (b *Buffer) File() string { return b.req.File }

// SetImage renders img instead of loading an icon file. A nil image
// clears the raster source.
func (b *Buffer) SetImage(img image.Image) Change {
	if img == nil {
		return b.setRaster(nil)
	}
	if cur, ok := b.req.Raster.(ImageSource); ok && cur.Image == img {
		return NoChange
	}
	return b.setRaster(NewImageSource(img))
}

// SetPixels renders a raw pixel buffer instead of loading an icon file.
// A buffer failing Validate renders nothing.
func (b *Buffer) SetPixels(src PixelSource) Change {
	if src.id == 0 {
		src.id = sourceIDs.Add(1)
	}
	return b.setRaster(src)
}

func (b *Buffer) setRaster(src Source) Change {
	if src == nil && b.req.Raster == nil {
		return NoChange
	}
	b.req.Raster = src
	return NeedsRedraw | NeedsResize
}

// Image returns the raster source set with SetImage or SetPixels, if any.
func (b *Buffer) Image() image.Image {
	if rs, ok := b.req.Raster.(rasterSource); ok {
		if img, err := rs.bitmap(); err == nil {
			return img
		}
	}
	return nil
}

// SetFillColor sets the value of the fill_color entity.
func (b *Buffer) SetFillColor(c string) Change {
	return setString(&b.req.FillColor, c, NeedsRedraw)
}

// FillColor returns the fill color.
func (b *Buffer) FillColor() string { return b.req.FillColor }

// SetStrokeColor sets the value of the stroke_color entity.
func (b *Buffer) SetStrokeColor(c string) Change {
	return setString(&b.req.StrokeColor, c, NeedsRedraw)
}

// StrokeColor returns the stroke color.
func (b *Buffer) StrokeColor() string { return b.req.StrokeColor }

// SetXoColor sets stroke and fill from an XO color string "stroke,fill".
// An empty string clears both colors.
func (b *Buffer) SetXoColor(xo string) (Change, error) {
	if xo == "" {
		return b.SetStrokeColor("") | b.SetFillColor(""), nil
	}
	parts := strings.Split(xo, ",")
	if len(parts) != 2 {
		return NoChange, errors.Errorf("invalid xo color %q", xo)
	}
	stroke, fill := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	return b.SetStrokeColor(stroke) | b.SetFillColor(fill), nil
}

// XoColor returns "stroke,fill", or the empty string unless both are set.
func (b *Buffer) XoColor() string {
	if b.req.StrokeColor == "" || b.req.FillColor == "" {
		return ""
	}
	return b.req.StrokeColor + "," + b.req.FillColor
}

// SetBackground makes the icon opaque over c. A nil color keeps it
// transparent.
func (b *Buffer) SetBackground(c color.Color) Change {
	if sameColor(b.req.Background, c) {
		return NoChange
	}
	b.req.Background = c
	return NeedsRedraw
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return opaqueRGB(a) == opaqueRGB(b)
}

// Background returns the background color, nil when transparent.
func (b *Buffer) Background() color.Color { return b.req.Background }

// SetBadgeName sets the theme name of the badge drawn over the icon.
func (b *Buffer) SetBadgeName(name string) Change {
	return setString(&b.req.BadgeName, name, NeedsRedraw|NeedsResize)
}

// BadgeName returns the badge theme name.
func (b *Buffer) BadgeName() string { return b.req.BadgeName }

// SetSize sets the target pixel size. Zero keeps the natural size of
// the icon on that axis.
func (b *Buffer) SetSize(width, height int) Change {
	if b.req.Width == width && b.req.Height == height {
		return NoChange
	}
	b.req.Width, b.req.Height = width, height
	return NeedsRedraw | NeedsResize
}

// Size returns the target pixel size.
func (b *Buffer) Size() (int, int) { return b.req.Width, b.req.Height }

// SetCacheLoads allows the unmodified icon document to be cached across
// recolorings.
func (b *Buffer) SetCacheLoads(cache bool) Change {
	b.req.CacheLoads = cache
	return NoChange
}

// baseIcon is the loaded, not yet painted base image.
type baseIcon struct {
	resolved ResolvedIcon
	doc      *Document
	bitmap   image.Image
	width    int
	height   int
}

func (b *Buffer) entities() map[string]string {
	entities := map[string]string{}
	if b.req.FillColor != "" {
		entities[FillEntity] = b.req.FillColor
	}
	if b.req.StrokeColor != "" {
		entities[StrokeEntity] = b.req.StrokeColor
	}
	return entities
}

// load resolves and loads file or name.
func (b *Buffer) load(file, name string) (*baseIcon, error) {
	ri, err := b.resolver().Resolve(file, name, b.req.Width)
	if err != nil {
		return nil, err
	}

	if ri.IsVector {
		doc, err := b.loader().Load(ri.Path, b.entities(), b.req.CacheLoads)
		if err != nil {
			return nil, err
		}
		return &baseIcon{resolved: ri, doc: doc, width: doc.Width(), height: doc.Height()}, nil
	}

	img, err := imaging.Open(ri.Path)
	if err != nil {
		return nil, &LoadError{Path: ri.Path, Err: err}
	}
	bounds := img.Bounds()
	return &baseIcon{resolved: ri, bitmap: img, width: bounds.Dx(), height: bounds.Dy()}, nil
}

// base finds the image the icon is painted from. The requested icon is
// tried first, then FallbackName. It returns nil when neither works.
// Raster sources never fall back.
func (b *Buffer) base() *baseIcon {
	var file, name string
	switch src := b.req.Source().(type) {
	case rasterSource:
		return b.raster(src)
	case FileSource:
		file = string(src)
	case NameSource:
		name = string(src)
	}

	attempts := [][2]string{
		{file, name},
		{"", FallbackName},
	}
	for _, a := range attempts {
		if a[0] == "" && a[1] == "" {
			continue
		}
		base, err := b.load(a[0], a[1])
		if err == nil {
			return base
		}
		log().Debug("icon attempt failed", "file", a[0], "name", a[1], "error", err)
	}
	return nil
}

// raster wraps a raster source. The attach points still come from the
// file or name, when one resolves.
func (b *Buffer) raster(src rasterSource) *baseIcon {
	img, err := src.bitmap()
	if err != nil {
		log().Error("invalid raster source", "error", err)
		return nil
	}
	bounds := img.Bounds()
	base := &baseIcon{bitmap: img, width: bounds.Dx(), height: bounds.Dy()}
	if b.req.File != "" || b.req.IconName != "" {
		if ri, err := b.resolver().Resolve(b.req.File, b.req.IconName, b.req.Width); err == nil {
			base.resolved = ri
		}
	}
	return base
}

// GetSurface renders the icon, or returns the surface cached for the same
// parameters. When sensitive is false the icon is painted through st;
// a nil styler paints it unmodified. GetSurface returns nil when no icon
// can be rendered, callers then draw nothing.
func (b *Buffer) GetSurface(sensitive bool, st Styler) *Surface {
	key := b.req.Key(sensitive)
	if s, ok := b.surfaces().Get(key); ok {
		return s
	}

	base := b.base()
	if base == nil || base.width <= 0 || base.height <= 0 {
		return nil
	}

	var badge BadgePlacement
	if b.req.BadgeName != "" {
		badge = PlaceBadge(base.resolved.AttachX, base.resolved.AttachY, base.width, base.height)
	}
	padding := badge.Padding

	width, height := b.req.Width, b.req.Height
	if width <= 0 {
		width = base.width
	}
	if height <= 0 {
		height = base.height
	}
	width += 2 * padding
	height += 2 * padding

	format := FormatARGB32
	if b.req.Background != nil {
		format = FormatRGB24
	}
	surface := NewSurface(width, height, format, b.req.Background)

	c := NewCanvas(surface.Image())
	c.Scale(float64(width)/float64(base.width+2*padding),
		float64(height)/float64(base.height+2*padding))
	c.Save()

	c.Translate(float64(padding), float64(padding))
	b.paint(c, base.doc, base.bitmap, sensitive, st)

	if b.req.BadgeName != "" {
		c.Restore()
		c.Translate(float64(padding+badge.OffsetX), float64(padding+badge.OffsetY))
		b.drawBadge(c, badge.Size, sensitive, st)
	}

	b.surfaces().Add(key, surface)

	return surface
}

// paint paints either the document or the bitmap at the user space origin.
func (b *Buffer) paint(c *Canvas, doc *Document, bitmap image.Image, sensitive bool, st Styler) {
	if doc != nil {
		if sensitive {
			c.RenderDocument(doc)
			return
		}
		bitmap = doc.Rasterize()
	}
	if !sensitive {
		bitmap = insensitive(bitmap, st)
	}
	c.SetSourceImage(bitmap, 0, 0)
	c.Paint()
}

// drawBadge paints the badge icon scaled to size at the user space origin.
func (b *Buffer) drawBadge(c *Canvas, size int, sensitive bool, st Styler) {
	if size <= 0 {
		return
	}
	ri, err := b.resolver().Resolve("", b.req.BadgeName, size)
	if err != nil {
		return
	}

	var (
		doc    *Document
		bitmap image.Image
		w, h   int
	)
	if ri.IsVector {
		doc, err = b.loader().Load(ri.Path, nil, b.req.CacheLoads)
		if err != nil {
			log().Warn("cannot load badge", "name", b.req.BadgeName, "error", err)
			return
		}
		w, h = doc.Width(), doc.Height()
	} else {
		bitmap, err = imaging.Open(ri.Path)
		if err != nil {
			log().Warn("cannot load badge", "name", b.req.BadgeName, "error", err)
			return
		}
		w, h = bitmap.Bounds().Dx(), bitmap.Bounds().Dy()
	}
	if w <= 0 || h <= 0 {
		return
	}

	c.Scale(float64(size)/float64(w), float64(size)/float64(h))
	b.paint(c, doc, bitmap, sensitive, st)
}
