// Package rasterize turns polygon boundaries from GeoJSON documents into
// fixed-size binary masks.
//
// The mask samples pixel centers over the geometry bound, with row 0 the
// northernmost line. Masks serialize to numpy arrays and grayscale images
// so downstream consumers get a quick-look raster next to the vector file.
package rasterize

import (
	"github.com/json-iterator/go"
	"github.com/oneconcern/datacat/pkg/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
)

var (
	// ErrNoGeometry is returned when the document contains no features
	ErrNoGeometry = errors.New("no geometry found in document")

	// ErrNoPolygon is returned when no feature carries polygonal geometry
	ErrNoPolygon = errors.New("no polygonal geometry found")

	// ErrDegenerateBounds is returned when the geometry extent has no area
	ErrDegenerateBounds = errors.New("geometry bounds have no area")
)

// Default raster dimensions, in pixels
const (
	DefaultWidth  = 50
	DefaultHeight = 50
)

// Mask is a rasterized boundary. Pixels are laid out row-major with row 0
// the northernmost line and column 0 the westernmost. Values are 0 or 1.
type Mask struct {
	Width  int
	Height int
	Bound  orb.Bound
	Pixels []uint8
	_      struct{}
}

// At returns the value at the given row and column
func (m *Mask) At(row, col int) uint8 {
	return m.Pixels[row*m.Width+col]
}

// Count returns the number of set pixels
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pixels {
		if v != 0 {
			n++
		}
	}
	return n
}

// Option configures a rasterizer
type Option func(*Rasterizer)

// Width sets the raster width in pixels
func Width(w int) Option {
	return func(r *Rasterizer) {
		if w > 0 {
			r.width = w
		}
	}
}

// Height sets the raster height in pixels
func Height(h int) Option {
	return func(r *Rasterizer) {
		if h > 0 {
			r.height = h
		}
	}
}

// Invert flips mask values, so inside pixels read 0 and outside pixels 1
func Invert(enabled bool) Option {
	return func(r *Rasterizer) {
		r.invert = enabled
	}
}

// WebMercator reprojects lon/lat geometries to web mercator before
// sampling, for a more uniform ground distance per pixel
func WebMercator(enabled bool) Option {
	return func(r *Rasterizer) {
		r.mercator = enabled
	}
}

// Rasterizer converts polygonal GeoJSON to binary masks
type Rasterizer struct {
	width    int
	height   int
	invert   bool
	mercator bool
}

// New creates a rasterizer
func New(opts ...Option) *Rasterizer {
	r := &Rasterizer{
		width:  DefaultWidth,
		height: DefaultHeight,
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

// Projected reports whether masks are sampled in web mercator coordinates
func (r *Rasterizer) Projected() bool {
	return r.mercator
}

// Rasterize parses a GeoJSON document and samples its polygonal geometry
// into a mask. The document may be a feature collection, a single feature
// or a bare geometry. Non-polygonal parts are ignored.
func (r *Rasterizer) Rasterize(doc []byte) (*Mask, error) {
	mp, err := collectPolygons(doc)
	if err != nil {
		return nil, err
	}
	if len(mp) == 0 {
		return nil, ErrNoPolygon
	}

	if r.mercator {
		mp = project.MultiPolygon(mp, project.WGS84.ToMercator)
	}

	bound := mp.Bound()
	if bound.Min[0] == bound.Max[0] || bound.Min[1] == bound.Max[1] {
		return nil, ErrDegenerateBounds
	}
	mask := &Mask{
		Width:  r.width,
		Height: r.height,
		Bound:  bound,
		Pixels: make([]uint8, r.width*r.height),
	}

	spanX := bound.Max[0] - bound.Min[0]
	spanY := bound.Max[1] - bound.Min[1]
	for i := 0; i < r.height; i++ {
		y := bound.Max[1] - spanY*(float64(i)+0.5)/float64(r.height)
		for j := 0; j < r.width; j++ {
			x := bound.Min[0] + spanX*(float64(j)+0.5)/float64(r.width)
			if planar.MultiPolygonContains(mp, orb.Point{x, y}) {
				mask.Pixels[i*r.width+j] = 1
			}
		}
	}

	if r.invert {
		for idx, v := range mask.Pixels {
			mask.Pixels[idx] = 1 - v
		}
	}
	return mask, nil
}

func collectPolygons(doc []byte) (orb.MultiPolygon, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := jsoniter.Unmarshal(doc, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(doc)
		if err != nil {
			return nil, err
		}
		if len(fc.Features) == 0 {
			return nil, ErrNoGeometry
		}
		var mp orb.MultiPolygon
		for _, feature := range fc.Features {
			mp = appendPolygons(mp, feature.Geometry)
		}
		return mp, nil
	case "Feature":
		feature, err := geojson.UnmarshalFeature(doc)
		if err != nil {
			return nil, err
		}
		return appendPolygons(nil, feature.Geometry), nil
	case "":
		return nil, ErrNoGeometry
	default:
		geom, err := geojson.UnmarshalGeometry(doc)
		if err != nil {
			return nil, err
		}
		return appendPolygons(nil, geom.Geometry()), nil
	}
}

func appendPolygons(acc orb.MultiPolygon, g orb.Geometry) orb.MultiPolygon {
	switch geom := g.(type) {
	case orb.Polygon:
		return append(acc, geom)
	case orb.MultiPolygon:
		return append(acc, geom...)
	case orb.Collection:
		for _, sub := range geom {
			acc = appendPolygons(acc, sub)
		}
		return acc
	default:
		return acc
	}
}
