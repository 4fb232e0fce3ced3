package ioformat

import (
	"image"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/arl/greenreader/terrain"
)

// XZPoint is a point in feet, as transported in boundary/contour records.
type XZPoint struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Boundary is the traced boundary-polygon record of spec.md §6.
type Boundary struct {
	ImageWPx      int       `json:"image_w_px"`
	ImageHPx      int       `json:"image_h_px"`
	GreenWidthFt  float64   `json:"green_width_ft"`
	GreenHeightFt float64   `json:"green_height_ft"`
	PointsXZFt    []XZPoint `json:"points_xz_ft"`
}

// Points converts the transport record's XZPoint slice into terrain.Point.
func (b Boundary) Points() []terrain.Point {
	pts := make([]terrain.Point, len(b.PointsXZFt))
	for i, p := range b.PointsXZFt {
		pts[i] = terrain.Point{X: p.X, Z: p.Z}
	}
	return pts
}

// ReadBoundary decodes a Boundary record.
func ReadBoundary(r io.Reader) (Boundary, error) {
	var b Boundary
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Boundary{}, errors.Wrap(err, "decode boundary record")
	}
	return b, nil
}

// WriteBoundary encodes b as JSON.
func WriteBoundary(w io.Writer, b Boundary) error {
	if err := json.NewEncoder(w).Encode(b); err != nil {
		return errors.Wrap(err, "encode boundary record")
	}
	return nil
}

// DecodeBoundaryImageSize decodes a boundary/contour-trace PNG and returns
// its dimensions, to confirm or backfill a Boundary record's
// ImageWPx/ImageHPx when they were omitted. It draws the decoded image into
// a canonical RGBA buffer via golang.org/x/image/draw as a cheap full-decode
// sanity check (a malformed or truncated PNG fails here instead of later).
// Full boundary-from-image extraction (flood-fill over the traced image)
// stays out of scope: boundary polygons arrive already traced as
// PointsXZFt.
func DecodeBoundaryImageSize(r io.Reader) (w, h int, err error) {
	img, err := png.Decode(r)
	if err != nil {
		return 0, 0, errors.Wrap(err, "decode boundary image")
	}
	b := img.Bounds()
	canon := image.NewRGBA(b)
	draw.Draw(canon, b, img, b.Min, draw.Src)
	return b.Dx(), b.Dy(), nil
}
