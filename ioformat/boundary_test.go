package ioformat

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundaryRoundTrip(t *testing.T) {
	b := Boundary{
		ImageWPx:      800,
		ImageHPx:      600,
		GreenWidthFt:  40,
		GreenHeightFt: 30,
		PointsXZFt: []XZPoint{
			{X: -20, Z: -15},
			{X: 20, Z: -15},
			{X: 20, Z: 15},
			{X: -20, Z: 15},
		},
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteBoundary(&buf, b))

	got, err := ReadBoundary(&buf)
	assert.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestBoundaryPointsConversion(t *testing.T) {
	b := Boundary{PointsXZFt: []XZPoint{{X: 1, Z: 2}, {X: 3, Z: 4}}}
	pts := b.Points()
	assert.Len(t, pts, 2)
	assert.Equal(t, 1.0, pts[0].X)
	assert.Equal(t, 2.0, pts[0].Z)
	assert.Equal(t, 3.0, pts[1].X)
	assert.Equal(t, 4.0, pts[1].Z)
}

func TestDecodeBoundaryImageSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.White)
		}
	}

	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))

	w, h, err := DecodeBoundaryImageSize(&buf)
	assert.NoError(t, err)
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)
}

func TestDecodeBoundaryImageSizeRejectsGarbage(t *testing.T) {
	_, _, err := DecodeBoundaryImageSize(bytes.NewReader([]byte("not a png")))
	assert.Error(t, err)
}
