package ioformat

import (
	"io"

	"github.com/pkg/errors"

	"github.com/arl/greenreader/terrain"
)

// ContourEntry is one traced iso-elevation polyline, transport-shaped.
type ContourEntry struct {
	K          int       `json:"k"`
	HeightFt   float64   `json:"height_ft"`
	PointsXZFt []XZPoint `json:"points_xz_ft"`
}

// Contours is the traced contour-set record of spec.md §6: a Boundary
// header plus the ContourEntry list. HeightFt = K * ContourIntervalFt.
type Contours struct {
	ImageWPx          int            `json:"image_w_px"`
	ImageHPx          int            `json:"image_h_px"`
	GreenWidthFt      float64        `json:"green_width_ft"`
	GreenHeightFt     float64        `json:"green_height_ft"`
	ContourIntervalFt float64        `json:"contour_interval_ft"`
	Entries           []ContourEntry `json:"contours"`
}

// Contours converts the transport entries into terrain.Contour values.
func (c Contours) Contours() []terrain.Contour {
	out := make([]terrain.Contour, len(c.Entries))
	for i, e := range c.Entries {
		pts := make([]terrain.Point, len(e.PointsXZFt))
		for j, p := range e.PointsXZFt {
			pts[j] = terrain.Point{X: p.X, Z: p.Z}
		}
		out[i] = terrain.Contour{HeightFt: e.HeightFt, Points: pts}
	}
	return out
}

// ReadContours decodes a Contours record.
func ReadContours(r io.Reader) (Contours, error) {
	var c Contours
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Contours{}, errors.Wrap(err, "decode contours record")
	}
	return c, nil
}

// WriteContours encodes c as JSON.
func WriteContours(w io.Writer, c Contours) error {
	if err := json.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(err, "encode contours record")
	}
	return nil
}
