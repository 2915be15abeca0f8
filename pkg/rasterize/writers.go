package rasterize

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/json-iterator/go"
)

// Orientation documents the mask layout in produced metadata
const Orientation = "row 0 is North (top), col 0 is West (left)"

var npyMagic = []byte("\x93NUMPY")

// WriteNPY serializes the mask as a version 1.0 numpy array file, dtype
// uint8, shape (height, width), so numpy.load reads it back unchanged.
func WriteNPY(w io.Writer, m *Mask) error {
	header := fmt.Sprintf("{'descr': '|u1', 'fortran_order': False, 'shape': (%d, %d), }", m.Height, m.Width)

	// pad the header so the raw data starts on a 64 byte boundary
	unpadded := len(npyMagic) + 4 + len(header) + 1
	pad := (64 - unpadded%64) % 64
	header += strings.Repeat(" ", pad) + "\n"

	var lenb [2]byte
	binary.LittleEndian.PutUint16(lenb[:], uint16(len(header)))

	buf := make([]byte, 0, len(npyMagic)+4+len(header))
	buf = append(buf, npyMagic...)
	buf = append(buf, 1, 0)
	buf = append(buf, lenb[:]...)
	buf = append(buf, header...)
	if _, err := w.Write(buf); err != nil {
		return err
	}
	_, err := w.Write(m.Pixels)
	return err
}

// WritePNG serializes the mask as an 8 bit grayscale PNG, with inside
// pixels rendered white
func WritePNG(w io.Writer, m *Mask) error {
	return png.Encode(w, toGray(m))
}

// WriteJPEG serializes the mask as a grayscale JPEG
func WriteJPEG(w io.Writer, m *Mask) error {
	return jpeg.Encode(w, toGray(m), &jpeg.Options{Quality: 95})
}

func toGray(m *Mask) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i := 0; i < m.Height; i++ {
		for j := 0; j < m.Width; j++ {
			if m.At(i, j) != 0 {
				img.SetGray(j, i, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// Bounds describes the geometry extent a mask was sampled over
type Bounds struct {
	MinX float64 `json:"minx"`
	MinY float64 `json:"miny"`
	MaxX float64 `json:"maxx"`
	MaxY float64 `json:"maxy"`
	_    struct{}
}

// Metadata describes a produced mask, written alongside the raster outputs
type Metadata struct {
	SourceGeoJSON string `json:"source_geojson"`
	OutputNPY     string `json:"output_npy,omitempty"`
	OutputImage   string `json:"output_image,omitempty"`
	ImageFormat   string `json:"image_format,omitempty"`
	Height        int    `json:"height"`
	Width         int    `json:"width"`
	Bounds        Bounds `json:"bounds"`
	Projection    string `json:"projection"`
	InsideValue   int    `json:"inside_value"`
	OutsideValue  int    `json:"outside_value"`
	Orientation   string `json:"orientation"`
	_             struct{}
}

// NewMetadata fills in the metadata for a mask produced by this rasterizer
func (r *Rasterizer) NewMetadata(m *Mask, source string) Metadata {
	meta := Metadata{
		SourceGeoJSON: source,
		Height:        m.Height,
		Width:         m.Width,
		Bounds: Bounds{
			MinX: m.Bound.Min[0],
			MinY: m.Bound.Min[1],
			MaxX: m.Bound.Max[0],
			MaxY: m.Bound.Max[1],
		},
		Projection:   "EPSG:4326",
		InsideValue:  1,
		OutsideValue: 0,
		Orientation:  Orientation,
	}
	if r.mercator {
		meta.Projection = "EPSG:3857"
	}
	if r.invert {
		meta.InsideValue, meta.OutsideValue = 0, 1
	}
	return meta
}

// WriteMetadata serializes mask metadata as indented JSON
func WriteMetadata(w io.Writer, meta Metadata) error {
	data, err := jsoniter.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
