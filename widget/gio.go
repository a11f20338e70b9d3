package widget

import (
	"image"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/sugarlabs/icon/imop"
)

// GioDrawer records the drawing of an Icon as Gio operations.
type GioDrawer struct {
	Ops *op.Ops

	tr    f32.Affine2D
	stack []f32.Affine2D

	src image.Image
	pos f32.Point
}

// NewGioDrawer returns a drawer adding its operations to ops.
func NewGioDrawer(ops *op.Ops) *GioDrawer {
	return &GioDrawer{Ops: ops}
}

// Save pushes the current transform.
func (g *GioDrawer) Save() {
	g.stack = append(g.stack, g.tr)
}

// Restore pops the transform pushed by the matching Save.
func (g *GioDrawer) Restore() {
	if n := len(g.stack); n > 0 {
		g.tr = g.stack[n-1]
		g.stack = g.stack[:n-1]
	}
}

// Scale scales the user space.
func (g *GioDrawer) Scale(sx, sy float64) {
	s := f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(float32(sx), float32(sy)))
	g.tr = g.tr.Mul(s)
}

// Transform returns the current user to device transform.
func (g *GioDrawer) Transform() f32.Affine2D { return g.tr }

// SetSourceImage selects img, placed at (x, y) in user space.
func (g *GioDrawer) SetSourceImage(img image.Image, x, y float64) {
	g.src = img
	g.pos = f32.Pt(float32(x), float32(y))
}

// Paint paints the current source.
func (g *GioDrawer) Paint() {
	g.PaintWithAlpha(1)
}

// PaintWithAlpha paints the current source with its opacity multiplied by alpha.
func (g *GioDrawer) PaintWithAlpha(alpha float64) {
	if g.src == nil {
		return
	}
	img := g.src
	if alpha < 1 {
		img = imop.Fade(img, alpha)
	}

	tr := g.tr.Mul(f32.Affine2D{}.Offset(g.pos))
	defer op.Affine(tr).Push(g.Ops).Pop()

	b := img.Bounds()
	defer clip.Rect(image.Rect(0, 0, b.Dx(), b.Dy())).Push(g.Ops).Pop()

	paint.NewImageOp(img).Add(g.Ops)
	paint.PaintOp{}.Add(g.Ops)
}

// Layout draws the icon at its preferred size, constrained by gtx. When the
// minimum constraint is larger the icon is placed as set by SetAlign.
func (ic *Icon) Layout(gtx layout.Context) layout.Dimensions {
	req := ic.PreferredSize()
	size := gtx.Constraints.Constrain(req)

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	ic.Draw(NewGioDrawer(gtx.Ops), size)

	return layout.Dimensions{Size: size}
}
