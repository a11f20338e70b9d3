package icon

import (
	"image"
	"image/color"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Source identifies the base image of an icon. It is one of NameSource,
// FileSource, ImageSource or PixelSource.
type Source interface {
	isSource()
}

// NameSource is a symbolic theme icon name.
type NameSource string

// FileSource is an explicit icon file path.
type FileSource string

// ImageSource is an already decoded bitmap.
type ImageSource struct {
	Image image.Image
	id    uint64
}

// PixelSource is a raw pixel buffer in RGB or RGBA byte order,
// not alpha-premultiplied.
type PixelSource struct {
	Pix      []byte
	Width    int
	Height   int
	Stride   int
	HasAlpha bool
	id       uint64
}

func (NameSource) isSource()  {}
func (FileSource) isSource()  {}
func (ImageSource) isSource() {}
func (PixelSource) isSource() {}

func (s ImageSource) rasterID() uint64 { return s.id }
func (s PixelSource) rasterID() uint64 { return s.id }

// rasterSource is implemented by the sources that bypass file loading.
type rasterSource interface {
	Source
	rasterID() uint64
	bitmap() (image.Image, error)
}

func (s ImageSource) bitmap() (image.Image, error) {
	if s.Image == nil {
		return nil, errors.New("nil image")
	}
	return s.Image, nil
}

// Validate reports whether Pix holds Height rows of Width pixels.
func (s PixelSource) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.Errorf("invalid pixel buffer size %dx%d", s.Width, s.Height)
	}
	bpp := 3
	if s.HasAlpha {
		bpp = 4
	}
	if s.Stride < s.Width*bpp {
		return errors.Errorf("stride %d is shorter than a row of %d pixels", s.Stride, s.Width)
	}
	if need := s.Stride*(s.Height-1) + s.Width*bpp; len(s.Pix) < need {
		return errors.Errorf("pixel buffer holds %d bytes, %d needed", len(s.Pix), need)
	}
	return nil
}

func (s PixelSource) bitmap() (image.Image, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	bpp := 3
	if s.HasAlpha {
		bpp = 4
	}
	for y := 0; y < s.Height; y++ {
		row := s.Pix[y*s.Stride:]
		di := img.PixOffset(0, y)
		for x := 0; x < s.Width; x++ {
			si := x * bpp
			img.Pix[di+0] = row[si+0]
			img.Pix[di+1] = row[si+1]
			img.Pix[di+2] = row[si+2]
			if s.HasAlpha {
				img.Pix[di+3] = row[si+3]
			} else {
				img.Pix[di+3] = 0xff
			}
			di += 4
		}
	}
	return img, nil
}

var sourceIDs atomic.Uint64

// NewImageSource wraps img in a source with a process-unique identity.
func NewImageSource(img image.Image) ImageSource {
	return ImageSource{Image: img, id: sourceIDs.Add(1)}
}

// NewPixelSource wraps a raw pixel buffer in a source with a
// process-unique identity. A zero stride is derived from the width.
func NewPixelSource(pix []byte, width, height, stride int, hasAlpha bool) PixelSource {
	if stride == 0 {
		stride = width * 3
		if hasAlpha {
			stride = width * 4
		}
	}
	return PixelSource{
		Pix:      pix,
		Width:    width,
		Height:   height,
		Stride:   stride,
		HasAlpha: hasAlpha,
		id:       sourceIDs.Add(1),
	}
}

// Request is the set of parameters an icon is rendered from.
type Request struct {
	IconName    string
	File        string
	Raster      Source // ImageSource or PixelSource, nil when unset
	FillColor   string
	StrokeColor string
	Background  color.Color
	BadgeName   string
	Width       int
	Height      int
	CacheLoads  bool
}

// Source returns the authoritative source of the base image: a raster
// source first, then the explicit file, then the symbolic name.
// It returns nil when nothing is set.
func (r *Request) Source() Source {
	switch {
	case r.Raster != nil:
		return r.Raster
	case r.File != "":
		return FileSource(r.File)
	case r.IconName != "":
		return NameSource(r.IconName)
	}
	return nil
}

// Key identifies a rendered surface. Two requests with the same key
// produce identical pixels.
type Key struct {
	IconName      string
	File          string
	Raster        uint64
	FillColor     string
	StrokeColor   string
	BadgeName     string
	Width         int
	Height        int
	HasBackground bool
	Background    [3]uint8
	Sensitive     bool
}

// Key returns the cache key of the request rendered with the given
// sensitivity.
func (r *Request) Key(sensitive bool) Key {
	k := Key{
		IconName:    r.IconName,
		File:        r.File,
		FillColor:   r.FillColor,
		StrokeColor: r.StrokeColor,
		BadgeName:   r.BadgeName,
		Width:       r.Width,
		Height:      r.Height,
		Sensitive:   sensitive,
	}
	if rs, ok := r.Raster.(rasterSource); ok {
		k.Raster = rs.rasterID()
	}
	if r.Background != nil {
		k.HasBackground = true
		k.Background = opaqueRGB(r.Background)
	}
	return k
}

// opaqueRGB drops the alpha channel of c, which only the opaque RGB24
// surfaces use.
func opaqueRGB(c color.Color) [3]uint8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return [3]uint8{n.R, n.G, n.B}
}
