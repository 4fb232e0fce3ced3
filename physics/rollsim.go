// Package physics simulates a golf ball rolling on a reconstructed green
// and searches for the launch (angle, speed) most likely to sink the putt.
package physics

import (
	"errors"
	"math"

	"github.com/arl/greenreader/terrain"
)

// GravityFtS2 is standard gravity in ft/s^2.
const GravityFtS2 = 32.174

// defaultVStimpFps is the Stimpmeter's fixed launch speed proxy.
const defaultVStimpFps = 6.0

// ErrInvalidStimp is returned by NewRollSimulator when stimpFt <= 0.
var ErrInvalidStimp = errors.New("physics: stimp_ft must be positive")

// RollSimulatorParams configures a RollSimulator. Zero values select the
// documented defaults, except StimpFt which is required.
type RollSimulatorParams struct {
	StimpFt     float64 // required, > 0
	DtS         float64 // default 0.01
	StopSpeed   float64 // default 0.2 ft/s
	MaxTimeS    float64 // default 30.0 s
	CupRadiusFt float64 // default 2.125/12 ft
	MaxCupSpeed float64 // default 4.0 ft/s
	VStimpFps   float64 // default 6.0 ft/s
}

func (p RollSimulatorParams) withDefaults() RollSimulatorParams {
	if p.DtS == 0 {
		p.DtS = 0.01
	}
	if p.StopSpeed == 0 {
		p.StopSpeed = 0.2
	}
	if p.MaxTimeS == 0 {
		p.MaxTimeS = 30.0
	}
	if p.CupRadiusFt == 0 {
		p.CupRadiusFt = 2.125 / 12.0
	}
	if p.MaxCupSpeed == 0 {
		p.MaxCupSpeed = 4.0
	}
	if p.VStimpFps == 0 {
		p.VStimpFps = defaultVStimpFps
	}
	return p
}

// RollSimulator integrates a ball's position and velocity over a
// gradient-populated HeightMap using Stimp-calibrated rolling resistance.
type RollSimulator struct {
	hm     *terrain.HeightMap
	params RollSimulatorParams
	a0     float64 // flat-green deceleration magnitude
}

// NewRollSimulator returns a simulator over hm (which must already have
// gradients computed) using params. Returns ErrInvalidStimp if
// params.StimpFt <= 0.
func NewRollSimulator(hm *terrain.HeightMap, params RollSimulatorParams) (*RollSimulator, error) {
	params = params.withDefaults()
	if params.StimpFt <= 0 {
		return nil, ErrInvalidStimp
	}
	a0 := (params.VStimpFps * params.VStimpFps) / (2 * params.StimpFt)
	return &RollSimulator{hm: hm, params: params, a0: a0}, nil
}

// Trajectory is the ordered set of (x,z,y) samples a simulation run
// produced, plus its terminal state.
type Trajectory struct {
	PathX, PathZ, PathY []float64
	Holed               bool
	TEndS               float64
	FinalX, FinalZ      float64
	FinalSpeed          float64
}

// Simulate rolls a ball launched from (startX,startZ) with initial velocity
// (v0x,v0z) until it leaves the green, is captured by the hole (if
// hasHole), stops, or the time cap is reached. All four outcomes are
// ordinary terminations, not errors.
func (s *RollSimulator) Simulate(startX, startZ, v0x, v0z float64, hasHole bool, holeX, holeZ float64) Trajectory {
	p := [2]float64{startX, startZ}
	v := [2]float64{v0x, v0z}

	var traj Trajectory
	t := 0.0
	steps := int(s.params.MaxTimeS / s.params.DtS)

	for i := 0; i < steps; i++ {
		x, z := p[0], p[1]

		if !s.hm.InsideAt(x, z) {
			break
		}

		y := s.hm.HeightAt(x, z)
		traj.PathX = append(traj.PathX, x)
		traj.PathZ = append(traj.PathZ, z)
		traj.PathY = append(traj.PathY, y)

		speed := math.Hypot(v[0], v[1])

		if hasHole {
			dx, dz := x-holeX, z-holeZ
			if dx*dx+dz*dz <= s.params.CupRadiusFt*s.params.CupRadiusFt && speed <= s.params.MaxCupSpeed {
				traj.Holed = true
				break
			}
		}

		if speed < s.params.StopSpeed {
			break
		}

		gx, gz, err := s.hm.GradientAt(x, z)
		if err != nil {
			// The caller is required to have computed gradients before
			// constructing a RollSimulator; this would be a programmer
			// error, not a recoverable runtime condition.
			panic(err)
		}

		aGravX := -GravityFtS2 * gx
		aGravZ := -GravityFtS2 * gz

		const eps = 1e-12
		aResistX := -s.a0 * v[0] / (speed + eps)
		aResistZ := -s.a0 * v[1] / (speed + eps)

		ax := aGravX + aResistX
		az := aGravZ + aResistZ

		v[0] += ax * s.params.DtS
		v[1] += az * s.params.DtS
		p[0] += v[0] * s.params.DtS
		p[1] += v[1] * s.params.DtS
		t += s.params.DtS
	}

	traj.TEndS = t
	if len(traj.PathX) > 0 {
		traj.FinalX = traj.PathX[len(traj.PathX)-1]
		traj.FinalZ = traj.PathZ[len(traj.PathZ)-1]
	} else {
		traj.FinalX = startX
		traj.FinalZ = startZ
	}
	traj.FinalSpeed = math.Hypot(v[0], v[1])

	return traj
}
