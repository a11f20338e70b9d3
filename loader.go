package icon

import (
	"encoding/xml"
	"image"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/sugarlabs/icon/utils"
)

// Entity names of the recolorable slots of Sugar icons.
const (
	FillEntity   = "fill_color"
	StrokeEntity = "stroke_color"
)

// Document is a parsed, recolored vector icon.
type Document struct {
	svg    *oksvg.SvgIcon
	width  int
	height int
}

// Width returns the natural width of the document in pixels.
func (d *Document) Width() int { return d.width }

// Height returns the natural height of the document in pixels.
func (d *Document) Height() int { return d.height }

// Rasterize renders the document at its natural size.
func (d *Document) Rasterize() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	d.draw(img, 0, 0, float64(d.width), float64(d.height))
	return img
}

// draw renders the document into the box (x, y, w, h) of dst.
func (d *Document) draw(dst *image.RGBA, x, y, w, h float64) {
	dw, dh := dst.Bounds().Dx(), dst.Bounds().Dy()
	d.svg.SetTarget(x, y, w, h)
	scanner := rasterx.NewScannerGV(dw, dh, dst, dst.Bounds())
	raster := rasterx.NewDasher(dw, dh, scanner)
	d.svg.Draw(raster, 1.0)
}

// Loader reads vector icons and recolors them.
// The unmodified text of a file is cached per path when the caller
// allows it, so recoloring the same icon does not read it again.
type Loader struct {
	// Documents caches unmodified documents. Nil selects DefaultDocuments.
	Documents *DocumentCache
}

var defaultLoader = &Loader{}

func (l *Loader) documents() *DocumentCache {
	if l.Documents != nil {
		return l.Documents
	}
	return DefaultDocuments()
}

// Load reads the document at path, substitutes the given entity values and
// parses the result. Invalid entity values are logged and skipped.
func (l *Loader) Load(path string, entities map[string]string, cache bool) (*Document, error) {
	tmpl, err := l.template(path, cache)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	sort.Strings(names)

	overrides := make(map[string]string, len(entities))
	for _, name := range names {
		value := entities[name]
		if !utils.IsColorString(value) {
			err := &InvalidEntityError{Path: path, Entity: name, Value: value}
			log().Error("invalid icon entity", "path", path, "entity", name, "error", err)
			continue
		}
		overrides[name] = value
	}

	text := tmpl.Execute(overrides)
	svg, err := oksvg.ReadIconStream(strings.NewReader(text))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	width, height := naturalSize(text, svg.ViewBox.W, svg.ViewBox.H)
	if width <= 0 || height <= 0 {
		return nil, &LoadError{Path: path, Err: errors.New("document has no size")}
	}
	log().Debug("loaded icon", "path", path, "width", width, "height", height)

	return &Document{svg: svg, width: width, height: height}, nil
}

// naturalSize returns the width and height attributes of the root element,
// each falling back on the view box when absent or relative.
func naturalSize(text string, vbw, vbh float64) (int, int) {
	w, h := vbw, vbh

	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "width":
				if v, ok := parseLength(attr.Value); ok {
					w = v
				}
			case "height":
				if v, ok := parseLength(attr.Value); ok {
					h = v
				}
			}
		}
		break
	}
	return int(math.Round(w)), int(math.Round(h))
}

// pixelsPer holds the CSS absolute units at 96 dpi.
var pixelsPer = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96.0 / 72,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
}

// parseLength converts an absolute SVG length to pixels.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && (s[i-1] < '0' || s[i-1] > '9') && s[i-1] != '.' {
		i--
	}
	scale, ok := pixelsPer[strings.ToLower(s[i:])]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * scale, true
}

func (l *Loader) template(path string, cache bool) (*Template, error) {
	if cache {
		if t, ok := l.documents().Get(path); ok {
			return t, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Wrap(ErrNotFound, err.Error())
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	t := ParseTemplate(string(data))
	if cache {
		l.documents().Add(path, t)
	}
	return t, nil
}
