package physics

import "math"

// BestLine is the final encoded result of one optimizer run: the winning
// launch, its terminal outcome, and the full trajectory, per the transport
// record's key set (see ioformat.BestLineDTO).
type BestLine struct {
	BallX, BallZ float64
	HoleX, HoleZ float64
	StimpFt      float64

	AimAngleDeg    float64 // atan2(v0z,v0x)*180/pi, 0deg = +X, CCW positive
	AimOffsetDeg   float64 // offset from the straight ball->hole bearing
	SpeedFps       float64
	V0XFps, V0ZFps float64

	Holed      bool
	MissFt     float64
	TEndS      float64
	PathXFt    []float64
	PathZFt    []float64
	PathYFt    []float64
}

// EncodeBestLine packages c (the optimizer's winning candidate) plus the
// evaluation context into a BestLine record.
func EncodeBestLine(ballX, ballZ, holeX, holeZ, stimpFt float64, c Candidate) BestLine {
	return BestLine{
		BallX:   ballX,
		BallZ:   ballZ,
		HoleX:   holeX,
		HoleZ:   holeZ,
		StimpFt: stimpFt,

		AimAngleDeg:  math.Atan2(c.V0Z, c.V0X) * 180 / math.Pi,
		AimOffsetDeg: c.AngleOffsetDeg,
		SpeedFps:     c.SpeedFps,
		V0XFps:       c.V0X,
		V0ZFps:       c.V0Z,

		Holed:   c.Result.Holed,
		MissFt:  c.MissFt,
		TEndS:   c.Result.TEndS,
		PathXFt: c.Result.PathX,
		PathZFt: c.Result.PathZ,
		PathYFt: c.Result.PathY,
	}
}
