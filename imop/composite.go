// Package imop implements the Porter-Duff operators used for layering an
// icon over its backdrop. Unlike image/draw every operator takes a global
// opacity, which is how icons are painted with alpha.
package imop

import (
	"image"
	"image/draw"

	"github.com/sugarlabs/icon/utils"
)

// Op is a Porter-Duff composite operator.
type Op int

const (
	// SrcOver paints the source over the backdrop.
	SrcOver Op = iota
	// Copy replaces the backdrop with the source.
	Copy
)

func (op Op) String() string {
	switch op {
	case SrcOver:
		return "src_over"
	case Copy:
		return "copy"
	}
	return "unknown"
}

// factors returns the Porter-Duff fractions of the source and the backdrop
// for a source coverage of as.
func (op Op) factors(as float64) (fa, fb float64) {
	if op == Copy {
		return 1, 0
	}
	return 1, 1 - as
}

// Draw composites src onto dst in place over their common area.
// Both images hold alpha-premultiplied pixels. The source coverage
// is multiplied by alpha before the operator is applied.
func (op Op) Draw(dst *image.RGBA, src *image.RGBA, alpha float64) {
	alpha = utils.Clamp(alpha, 0, 1)
	r := dst.Bounds().Intersect(src.Bounds())

	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := src.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]

			fa, fb := op.factors(float64(s[3]) / 255 * alpha)
			for c := 0; c < 4; c++ {
				v := float64(s[c])*alpha*fa + float64(d[c])*fb
				d[c] = uint8(utils.Clamp(v+0.5, 0, 255))
			}
			di += 4
			si += 4
		}
	}
}

// Fade returns an alpha-premultiplied copy of img with its opacity
// multiplied by alpha.
func Fade(img image.Image, alpha float64) *image.RGBA {
	b := img.Bounds()
	src := image.NewRGBA(b)
	draw.Draw(src, b, img, b.Min, draw.Src)
	if alpha >= 1 {
		return src
	}

	dst := image.NewRGBA(b)
	Copy.Draw(dst, src, alpha)

	return dst
}
