// Package ioformat holds the transport records and file-format codecs that
// sit around the core (geo, terrain, physics) pipeline: JSON/YAML records,
// the heightfield binary artifact, and a best-line transport DTO. None of
// this package's errors are sentinel-checked by callers the way the core's
// are; I/O failures are wrapped with github.com/pkg/errors to attach
// file/operation context before being logged.
package ioformat

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/arl/greenreader/geo"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LatLon is the wire shape of a single geodetic anchor.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (l LatLon) geo() geo.LatLon { return geo.LatLon{Lat: l.Lat, Lon: l.Lon} }

// Extents is the four (lat,lon) anchors bounding a traced green.
type Extents struct {
	North LatLon `json:"north"`
	South LatLon `json:"south"`
	East  LatLon `json:"east"`
	West  LatLon `json:"west"`
}

// Geo converts the wire Extents to geo.Extents.
func (e Extents) Geo() geo.Extents {
	return geo.Extents{North: e.North.geo(), South: e.South.geo(), East: e.East.geo(), West: e.West.geo()}
}

// Config is the per-green config record of spec.md §6.
type Config struct {
	Extents           Extents `json:"extents"`
	ContourIntervalFt float64 `json:"contour_interval_ft,omitempty"`
}

func (c Config) withDefaults() Config {
	if c.ContourIntervalFt == 0 {
		c.ContourIntervalFt = 0.25
	}
	return c
}

// ReadConfig decodes a Config record, applying the documented defaults.
func ReadConfig(r io.Reader) (Config, error) {
	var c Config
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Config{}, errors.Wrap(err, "decode config record")
	}
	return c.withDefaults(), nil
}

// WriteConfig encodes c as JSON.
func WriteConfig(w io.Writer, c Config) error {
	if err := json.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(err, "encode config record")
	}
	return nil
}
