package ioformat

import (
	"io"

	"github.com/pkg/errors"

	"github.com/arl/greenreader/physics"
)

// BestLineDTO is the BestLine transport record of spec.md §6.
type BestLineDTO struct {
	BallXFt float64 `json:"ballXFt"`
	BallZFt float64 `json:"ballZFt"`
	HoleXFt float64 `json:"holeXFt"`
	HoleZFt float64 `json:"holeZFt"`
	StimpFt float64 `json:"stimpFt"`

	AimOffsetDeg float64 `json:"aimOffsetDeg"`
	SpeedFps     float64 `json:"speedFps"`
	V0XFps       float64 `json:"v0XFps"`
	V0ZFps       float64 `json:"v0ZFps"`

	Holed   bool      `json:"holed"`
	MissFt  float64   `json:"missFt"`
	TEndS   float64   `json:"tEndS"`
	PathXFt []float64 `json:"pathXFt"`
	PathZFt []float64 `json:"pathZFt"`
	PathYFt []float64 `json:"pathYFt"`
}

// NewBestLineDTO converts a physics.BestLine to its transport shape.
func NewBestLineDTO(bl physics.BestLine) BestLineDTO {
	return BestLineDTO{
		BallXFt: bl.BallX,
		BallZFt: bl.BallZ,
		HoleXFt: bl.HoleX,
		HoleZFt: bl.HoleZ,
		StimpFt: bl.StimpFt,

		AimOffsetDeg: bl.AimOffsetDeg,
		SpeedFps:     bl.SpeedFps,
		V0XFps:       bl.V0XFps,
		V0ZFps:       bl.V0ZFps,

		Holed:   bl.Holed,
		MissFt:  bl.MissFt,
		TEndS:   bl.TEndS,
		PathXFt: bl.PathXFt,
		PathZFt: bl.PathZFt,
		PathYFt: bl.PathYFt,
	}
}

// WriteBestLine encodes dto as JSON.
func WriteBestLine(w io.Writer, dto BestLineDTO) error {
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		return errors.Wrap(err, "encode best-line record")
	}
	return nil
}

// ReadBestLine decodes a BestLineDTO.
func ReadBestLine(r io.Reader) (BestLineDTO, error) {
	var dto BestLineDTO
	if err := json.NewDecoder(r).Decode(&dto); err != nil {
		return BestLineDTO{}, errors.Wrap(err, "decode best-line record")
	}
	return dto, nil
}
