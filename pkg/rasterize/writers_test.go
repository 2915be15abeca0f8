package rasterize

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"strings"
	"testing"

	"github.com/json-iterator/go"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMask() *Mask {
	return &Mask{
		Width:  3,
		Height: 2,
		Bound:  orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{3, 2}},
		Pixels: []uint8{0, 1, 0, 1, 1, 1},
	}
}

func TestWriteNPY(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNPY(&buf, testMask()))

	data := buf.Bytes()
	require.True(t, len(data) > 10)
	assert.Equal(t, []byte("\x93NUMPY"), data[:6])
	assert.EqualValues(t, 1, data[6])
	assert.EqualValues(t, 0, data[7])

	headerLen := int(binary.LittleEndian.Uint16(data[8:10]))
	require.True(t, len(data) >= 10+headerLen)
	assert.Equal(t, 0, (10+headerLen)%64, "data must start on a 64 byte boundary")

	header := string(data[10 : 10+headerLen])
	assert.True(t, strings.HasSuffix(header, "\n"))
	assert.Contains(t, header, "'descr': '|u1'")
	assert.Contains(t, header, "'fortran_order': False")
	assert.Contains(t, header, "'shape': (2, 3)")

	assert.Equal(t, []byte{0, 1, 0, 1, 1, 1}, data[10+headerLen:])
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, testMask()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 3, bounds.Dx())
	assert.Equal(t, 2, bounds.Dy())

	r, _, _, _ := img.At(0, 0).RGBA()
	assert.EqualValues(t, 0, r)
	r, _, _, _ = img.At(1, 0).RGBA()
	assert.EqualValues(t, 0xffff, r)
	r, _, _, _ = img.At(2, 1).RGBA()
	assert.EqualValues(t, 0xffff, r)
}

func TestWriteJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJPEG(&buf, testMask()))
	assert.True(t, buf.Len() > 0)
}

func TestMetadata(t *testing.T) {
	r := New(Width(3), Height(2))
	m, err := r.Rasterize([]byte(squareDoc))
	require.NoError(t, err)

	meta := r.NewMetadata(m, "data/sf_boundary.geojson")
	assert.Equal(t, "data/sf_boundary.geojson", meta.SourceGeoJSON)
	assert.Equal(t, 2, meta.Height)
	assert.Equal(t, 3, meta.Width)
	assert.Equal(t, "EPSG:4326", meta.Projection)
	assert.Equal(t, 1, meta.InsideValue)
	assert.Equal(t, 0, meta.OutsideValue)
	assert.Equal(t, Bounds{MinX: 0, MinY: 0, MaxX: 4, MaxY: 4}, meta.Bounds)

	inverted := New(Width(3), Height(2), Invert(true), WebMercator(true))
	m, err = inverted.Rasterize([]byte(squareDoc))
	require.NoError(t, err)

	meta = inverted.NewMetadata(m, "data/sf_boundary.geojson")
	assert.Equal(t, "EPSG:3857", meta.Projection)
	assert.Equal(t, 0, meta.InsideValue)
	assert.Equal(t, 1, meta.OutsideValue)
}

func TestWriteMetadata(t *testing.T) {
	r := New(Width(3), Height(2))
	m, err := r.Rasterize([]byte(squareDoc))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMetadata(&buf, r.NewMetadata(m, "data/sf_boundary.geojson")))

	var decoded map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &decoded))
	for _, key := range []string{"source_geojson", "height", "width", "bounds", "projection", "inside_value", "outside_value", "orientation"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, Orientation, decoded["orientation"])
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}
