package icon

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Styler produces the insensitive (disabled) variant of a bitmap.
type Styler interface {
	Insensitive(img image.Image) (image.Image, error)
}

// Desaturate greys a bitmap out and makes it translucent.
type Desaturate struct {
	// Saturation change in percent, -100 removes all color.
	Saturation float64
	// Opacity multiplies the alpha channel.
	Opacity float64
}

// DefaultStyler mimics the stock insensitive icon treatment of GTK:
// ten percent of the saturation at thirty percent opacity.
var DefaultStyler Styler = Desaturate{Saturation: -90, Opacity: 0.3}

// Insensitive implements Styler.
func (d Desaturate) Insensitive(img image.Image) (image.Image, error) {
	out := imaging.AdjustSaturation(img, d.Saturation)
	if d.Opacity >= 1 {
		return out, nil
	}
	return imaging.AdjustFunc(out, func(c color.NRGBA) color.NRGBA {
		c.A = uint8(float64(c.A)*d.Opacity + 0.5)
		return c
	}), nil
}

// insensitive applies the styler to img. Without a styler, or when the
// styler fails, the bitmap is returned unmodified.
func insensitive(img image.Image, st Styler) image.Image {
	if st == nil {
		return img
	}
	out, err := st.Insensitive(img)
	if err != nil || out == nil {
		log().Debug("insensitive rendering failed, painting icon unmodified", "error", err)
		return img
	}
	return out
}
