package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arl/greenreader/terrain"
)

func flatGreen(t *testing.T) *terrain.HeightMap {
	t.Helper()
	hm := terrain.Circular(20, 0.5)
	hm.ComputeGradients(nil)
	return hm
}

func TestNewRollSimulatorInvalidStimp(t *testing.T) {
	hm := flatGreen(t)
	_, err := NewRollSimulator(hm, RollSimulatorParams{StimpFt: 0})
	assert.ErrorIs(t, err, ErrInvalidStimp)

	_, err = NewRollSimulator(hm, RollSimulatorParams{StimpFt: -5})
	assert.ErrorIs(t, err, ErrInvalidStimp)
}

// For the flat heightmap, a putt launched at exactly v_stimp should roll
// approximately stimp_ft before stopping (spec.md §8).
func TestFlatGreenStimpCalibrationRollout(t *testing.T) {
	hm := flatGreen(t)
	const stimpFt = 10.0
	sim, err := NewRollSimulator(hm, RollSimulatorParams{StimpFt: stimpFt})
	assert.NoError(t, err)

	traj := sim.Simulate(0, -9.5, 0, defaultVStimpFps, false, 0, 0)
	dist := math.Hypot(traj.FinalX-0, traj.FinalZ-(-9.5))

	tol := 0.5 * defaultVStimpFps * sim.params.DtS
	assert.InDelta(t, stimpFt, dist, tol+0.05)
}

// Rollout distance scales with (v/v_stimp)^2 on a flat green.
func TestFlatGreenRolloutScalesWithSpeedSquared(t *testing.T) {
	hm := flatGreen(t)
	const stimpFt = 10.0
	sim, err := NewRollSimulator(hm, RollSimulatorParams{StimpFt: stimpFt})
	assert.NoError(t, err)

	v := 9.0
	traj := sim.Simulate(0, -19, 0, v, false, 0, 0)
	dist := math.Hypot(traj.FinalX, traj.FinalZ-(-19))

	expected := stimpFt * (v / defaultVStimpFps) * (v / defaultVStimpFps)
	assert.InDelta(t, expected, dist, expected*0.1+0.3)
}

func TestOffGreenTerminatesAtBoundary(t *testing.T) {
	hm := flatGreen(t)
	sim, err := NewRollSimulator(hm, RollSimulatorParams{StimpFt: 10})
	assert.NoError(t, err)

	traj := sim.Simulate(18, 0, 0, 12, false, 0, 0)
	assert.False(t, traj.Holed)

	r2 := traj.FinalX*traj.FinalX + traj.FinalZ*traj.FinalZ
	assert.InDelta(t, 20*20, r2, 6.0)
}

func TestHoleCaptureWithinCupRadiusAndSpeed(t *testing.T) {
	hm := flatGreen(t)
	sim, err := NewRollSimulator(hm, RollSimulatorParams{StimpFt: 10})
	assert.NoError(t, err)

	traj := sim.Simulate(0, -8, 0, 6.0, true, 0, 0)
	assert.True(t, traj.Holed)
}
