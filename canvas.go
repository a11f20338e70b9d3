package icon

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/sugarlabs/icon/imop"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Format is the pixel layout of a surface.
type Format int

const (
	// FormatARGB32 surfaces carry an alpha channel and start transparent.
	FormatARGB32 Format = iota
	// FormatRGB24 surfaces are opaque.
	FormatRGB24
)

func (f Format) String() string {
	if f == FormatRGB24 {
		return "RGB24"
	}
	return "ARGB32"
}

// Surface is a rendered icon. It must not be modified once it was
// returned by a Buffer, since it is shared through the surface cache.
type Surface struct {
	img    *image.RGBA
	format Format
}

// NewSurface allocates a width×height surface. RGB24 surfaces are filled
// with the background color made opaque, black when nil. ARGB32 surfaces
// are transparent.
func NewSurface(width, height int, format Format, background color.Color) *Surface {
	s := &Surface{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		format: format,
	}
	if format == FormatRGB24 {
		if background == nil {
			background = color.Black
		}
		bg := color.NRGBAModel.Convert(background).(color.NRGBA)
		NewCanvas(s.img).Fill(color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 0xff})
	}
	return s
}

// Image returns the alpha-premultiplied pixels of the surface.
func (s *Surface) Image() *image.RGBA { return s.img }

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Bounds().Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// Format returns the pixel layout of the surface.
func (s *Surface) Format() Format { return s.format }

// identity is the unit affine transform.
var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Canvas paints onto a destination image through an affine transform,
// with a save/restore stack for the transform state.
type Canvas struct {
	dst   *image.RGBA
	m     f64.Aff3
	stack []f64.Aff3

	src    image.Image
	srcPos [2]float64

	comp imop.Op
}

// NewCanvas returns a canvas painting onto dst with the identity transform.
func NewCanvas(dst *image.RGBA) *Canvas {
	return &Canvas{dst: dst, m: identity, comp: imop.SrcOver}
}

// Scale scales the user space.
func (c *Canvas) Scale(sx, sy float64) {
	c.m[0] *= sx
	c.m[3] *= sx
	c.m[1] *= sy
	c.m[4] *= sy
}

// Translate moves the origin of the user space.
func (c *Canvas) Translate(tx, ty float64) {
	c.m[2] += c.m[0]*tx + c.m[1]*ty
	c.m[5] += c.m[3]*tx + c.m[4]*ty
}

// Save pushes the current transform.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.m)
}

// Restore pops the transform pushed by the matching Save.
func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.m = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

// Transform returns the current user to device transform.
func (c *Canvas) Transform() f64.Aff3 { return c.m }

// SetSourceImage selects img, placed at (x, y) in user space, as the
// source of the following paint operations.
func (c *Canvas) SetSourceImage(img image.Image, x, y float64) {
	c.src = img
	c.srcPos = [2]float64{x, y}
}

// Paint paints the current source.
func (c *Canvas) Paint() {
	c.PaintWithAlpha(1)
}

// PaintWithAlpha paints the current source with its opacity multiplied by alpha.
func (c *Canvas) PaintWithAlpha(alpha float64) {
	if c.src == nil {
		return
	}
	m := c.m
	x, y := c.srcPos[0], c.srcPos[1]
	s2d := f64.Aff3{
		m[0], m[1], m[0]*x + m[1]*y + m[2],
		m[3], m[4], m[3]*x + m[4]*y + m[5],
	}

	layer := image.NewRGBA(c.dst.Bounds())
	xdraw.CatmullRom.Transform(layer, s2d, c.src, c.src.Bounds(), xdraw.Src, nil)
	c.composite(layer, alpha)
}

// Fill paints c over the whole destination, regardless of the transform.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{}, draw.Over)
}

// RenderDocument renders a vector document at the user space origin,
// at its natural size.
func (c *Canvas) RenderDocument(doc *Document) {
	m := c.m
	layer := image.NewRGBA(c.dst.Bounds())
	doc.draw(layer, m[2], m[5], m[0]*float64(doc.Width()), m[4]*float64(doc.Height()))
	c.composite(layer, 1)
}

func (c *Canvas) composite(layer *image.RGBA, alpha float64) {
	c.comp.Draw(c.dst, layer, alpha)
}
