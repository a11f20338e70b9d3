// Package widget displays icons rendered by an icon.Buffer.
//
// An Icon keeps the properties a toolkit sets on it (name, size class,
// alignment, alpha) apart from the buffer, and copies them into the
// buffer right before it is measured or drawn.
package widget

import (
	"image"
	"math"

	"github.com/sugarlabs/icon"
)

// Sugar icon sizes in pixels.
const (
	SmallIconSize    = 33
	StandardIconSize = 55
)

// IconSize is a symbolic size class, used when no pixel size is set.
type IconSize int

const (
	IconSizeInvalid IconSize = iota
	IconSizeMenu
	IconSizeSmallToolbar
	IconSizeLargeToolbar
	IconSizeButton
	IconSizeDnd
	IconSizeDialog
)

// small reports whether the class is rendered at SmallIconSize.
func (s IconSize) small() bool {
	switch s {
	case IconSizeMenu, IconSizeDnd, IconSizeSmallToolbar, IconSizeButton:
		return true
	}
	return false
}

// Direction is the text direction of the widget.
type Direction int

const (
	LTR Direction = iota
	RTL
)

// Drawer is the drawing context an Icon paints into.
type Drawer interface {
	Save()
	Restore()
	Scale(sx, sy float64)
	SetSourceImage(img image.Image, x, y float64)
	Paint()
	PaintWithAlpha(alpha float64)
}

// Icon is a widget showing a single icon.
type Icon struct {
	buf *icon.Buffer

	iconName  string
	file      string
	pixelSize int
	iconSize  IconSize

	alpha     float64
	scale     float64
	xalign    float64
	yalign    float64
	xpad      int
	ypad      int
	dir       Direction
	sensitive bool
	styler    icon.Styler
}

// New returns a sensitive, centered icon using the shared theme and caches.
func New() *Icon {
	return NewWithBuffer(icon.NewBuffer())
}

// NewWithBuffer returns an icon drawing from buf.
func NewWithBuffer(buf *icon.Buffer) *Icon {
	return &Icon{
		buf:       buf,
		pixelSize: -1,
		alpha:     1,
		scale:     1,
		xalign:    0.5,
		yalign:    0.5,
		sensitive: true,
		styler:    icon.DefaultStyler,
	}
}

// Buffer returns the buffer the icon renders with.
func (ic *Icon) Buffer() *icon.Buffer { return ic.buf }

// SetIconName sets the theme name of the icon.
func (ic *Icon) SetIconName(name string) icon.Change {
	if ic.iconName == name {
		return icon.NoChange
	}
	ic.iconName = name
	return icon.NeedsRedraw | icon.NeedsResize
}

// IconName returns the theme name of the icon.
func (ic *Icon) IconName() string { return ic.iconName }

// SetFile sets an explicit icon file.
func (ic *Icon) SetFile(path string) icon.Change {
	if ic.file == path {
		return icon.NoChange
	}
	ic.file = path
	return icon.NeedsRedraw | icon.NeedsResize
}

// File returns the explicit icon file.
func (ic *Icon) File() string { return ic.file }

// SetImage renders img instead of an icon file. The badge is still drawn.
func (ic *Icon) SetImage(img image.Image) icon.Change {
	return ic.buf.SetImage(img)
}

// SetPixelSize sets the icon size in pixels. A negative size selects the
// size of the IconSize class.
func (ic *Icon) SetPixelSize(size int) icon.Change {
	if size < 0 {
		size = -1
	}
	if ic.pixelSize == size {
		return icon.NoChange
	}
	ic.pixelSize = size
	return icon.NeedsRedraw | icon.NeedsResize
}

// SetIconSize sets the size class used when no pixel size is set.
func (ic *Icon) SetIconSize(size IconSize) icon.Change {
	if ic.iconSize == size {
		return icon.NoChange
	}
	ic.iconSize = size
	if ic.pixelSize >= 0 {
		return icon.NoChange
	}
	return icon.NeedsRedraw | icon.NeedsResize
}

// PixelSize returns the size the icon is rendered at.
func (ic *Icon) PixelSize() int {
	switch {
	case ic.pixelSize >= 0:
		return ic.pixelSize
	case ic.iconSize.small():
		return SmallIconSize
	default:
		return StandardIconSize
	}
}

// BadgeSize returns the size of the badge in pixels.
func (ic *Icon) BadgeSize() int {
	return icon.BadgeSize(ic.PixelSize())
}

// SetFillColor sets the fill color.
func (ic *Icon) SetFillColor(c string) icon.Change { return ic.buf.SetFillColor(c) }

// FillColor returns the fill color.
func (ic *Icon) FillColor() string { return ic.buf.FillColor() }

// SetStrokeColor sets the stroke color.
func (ic *Icon) SetStrokeColor(c string) icon.Change { return ic.buf.SetStrokeColor(c) }

// StrokeColor returns the stroke color.
func (ic *Icon) StrokeColor() string { return ic.buf.StrokeColor() }

// SetXoColor sets both colors from a "stroke,fill" pair.
func (ic *Icon) SetXoColor(xo string) (icon.Change, error) { return ic.buf.SetXoColor(xo) }

// SetBadgeName sets the theme name of the badge.
func (ic *Icon) SetBadgeName(name string) icon.Change { return ic.buf.SetBadgeName(name) }

// BadgeName returns the theme name of the badge.
func (ic *Icon) BadgeName() string { return ic.buf.BadgeName() }

// SetAlpha sets the opacity the icon is painted with, 1 is opaque.
func (ic *Icon) SetAlpha(alpha float64) icon.Change {
	if ic.alpha == alpha {
		return icon.NoChange
	}
	ic.alpha = alpha
	return icon.NeedsRedraw
}

// SetScale scales the painted icon around its top left corner. The
// rendered surface is not re-rendered, large scales pixelate.
func (ic *Icon) SetScale(scale float64) icon.Change {
	if ic.scale == scale || scale <= 0 {
		return icon.NoChange
	}
	ic.scale = scale
	return icon.NeedsRedraw
}

// SetAlign sets where the icon is placed inside a larger allocation,
// 0 is left or top and 1 is right or bottom.
func (ic *Icon) SetAlign(x, y float64) icon.Change {
	if ic.xalign == x && ic.yalign == y {
		return icon.NoChange
	}
	ic.xalign, ic.yalign = x, y
	return icon.NeedsRedraw
}

// SetPadding sets the distance of the icon to the allocation edges.
func (ic *Icon) SetPadding(x, y int) icon.Change {
	if ic.xpad == x && ic.ypad == y {
		return icon.NoChange
	}
	ic.xpad, ic.ypad = x, y
	return icon.NeedsRedraw
}

// SetDirection sets the text direction. RTL mirrors the horizontal alignment.
func (ic *Icon) SetDirection(dir Direction) icon.Change {
	if ic.dir == dir {
		return icon.NoChange
	}
	ic.dir = dir
	return icon.NeedsRedraw
}

// SetSensitive switches between the normal and the insensitive rendering.
func (ic *Icon) SetSensitive(sensitive bool) icon.Change {
	if ic.sensitive == sensitive {
		return icon.NoChange
	}
	ic.sensitive = sensitive
	return icon.NeedsRedraw
}

// Sensitive reports whether the icon is drawn in its normal state.
func (ic *Icon) Sensitive() bool { return ic.sensitive }

// SetStyler replaces the styler of the insensitive rendering.
// A nil styler draws insensitive icons unmodified.
func (ic *Icon) SetStyler(st icon.Styler) icon.Change {
	ic.styler = st
	if ic.sensitive {
		return icon.NoChange
	}
	return icon.NeedsRedraw
}

// Sync copies the widget properties into the buffer.
func (ic *Icon) Sync() {
	ic.buf.SetIconName(ic.iconName)
	ic.buf.SetFile(ic.file)
	size := ic.PixelSize()
	ic.buf.SetSize(size, size)
}

// PreferredSize returns the size of the rendered surface, or the pixel
// size when nothing can be rendered.
func (ic *Icon) PreferredSize() image.Point {
	ic.Sync()
	if s := ic.buf.GetSurface(true, nil); s != nil {
		return image.Pt(s.Width(), s.Height())
	}
	w, h := ic.buf.Size()
	return image.Pt(w, h)
}

// Draw paints the icon into an allocation of alloc pixels.
func (ic *Icon) Draw(d Drawer, alloc image.Point) {
	ic.Sync()
	surface := ic.buf.GetSurface(ic.sensitive, ic.styler)
	if surface == nil {
		return
	}

	req := image.Pt(surface.Width(), surface.Height())
	x, y := ic.offset(alloc, req)

	d.Save()
	defer d.Restore()

	if ic.scale != 1 {
		d.Scale(ic.scale, ic.scale)

		width, _ := ic.buf.Size()
		margin := float64(width) * (1 - ic.scale) / 2
		x, y = (x+margin)/ic.scale, (y+margin)/ic.scale
	}

	d.SetSourceImage(surface.Image(), x, y)
	if ic.alpha == 1 {
		d.Paint()
	} else {
		d.PaintWithAlpha(ic.alpha)
	}
}

// offset places a req sized icon inside alloc.
func (ic *Icon) offset(alloc, req image.Point) (float64, float64) {
	xalign := ic.xalign
	if ic.dir == RTL {
		xalign = 1 - xalign
	}
	x := math.Floor(float64(ic.xpad) + float64(alloc.X-req.X)*xalign)
	y := math.Floor(float64(ic.ypad) + float64(alloc.Y-req.Y)*ic.yalign)
	return x, y
}
