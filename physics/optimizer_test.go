package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arl/greenreader/terrain"
)

func newFlatHeightMap(t *testing.T) *terrain.HeightMap {
	t.Helper()
	hm := terrain.Circular(20, 0.5)
	hm.ComputeGradients(nil)
	return hm
}

func newSlopedHeightMap(t *testing.T, sx, sz float64) *terrain.HeightMap {
	t.Helper()
	hm := terrain.Circular(20, 0.5)
	hm.AddPlanarSlope(sx, sz)
	hm.Normalize()
	hm.ComputeGradients(nil)
	return hm
}

// Scenario 1: dead-straight flat putt, short (spec.md §8.1).
func TestScenarioDeadStraightFlatPuttShort(t *testing.T) {
	hm := newFlatHeightMap(t)
	sim, err := NewRollSimulator(hm, RollSimulatorParams{StimpFt: 10})
	assert.NoError(t, err)
	opt := NewLineOptimizer(sim, OptimizerParams{})

	best := opt.Run(nil, 0, 0, 0, 8)
	assert.True(t, best.Result.Holed)
	assert.Less(t, math.Abs(best.AngleOffsetDeg), 2.0)
	assert.True(t, best.SpeedFps >= 4.5 && best.SpeedFps <= 7.5,
		"speed_fps=%v out of expected flat-green capture window", best.SpeedFps)
}

// Scenario 2: flat, beyond stimp range (spec.md §8.2).
func TestScenarioFlatBeyondStimpRange(t *testing.T) {
	hm := newFlatHeightMap(t)
	sim, err := NewRollSimulator(hm, RollSimulatorParams{StimpFt: 10})
	assert.NoError(t, err)
	opt := NewLineOptimizer(sim, OptimizerParams{})

	best := opt.Run(nil, 0, 0, 0, 18)
	assert.True(t, best.Result.Holed)
	assert.Less(t, math.Abs(best.AngleOffsetDeg), 2.0)
}

// Scenario 3: pure side-slope, slope along the travel axis (spec.md §8.3) —
// the slope runs parallel to the ball-to-hole line, so the winning aim
// offset should stay near straight-at-the-hole.
func TestScenarioPureSideSlopeAimsStraight(t *testing.T) {
	sloped := newSlopedHeightMap(t, 0, 0.02)
	slopedSim, err := NewRollSimulator(sloped, RollSimulatorParams{StimpFt: 10})
	assert.NoError(t, err)
	slopedBest := NewLineOptimizer(slopedSim, OptimizerParams{}).Run(nil, 0, -8, 0, 0)

	assert.True(t, slopedBest.Result.Holed)
	assert.Less(t, math.Abs(slopedBest.AngleOffsetDeg), 2.0)
}

// Scenario 4: breaking putt — a left-to-right slope across the travel axis
// requires aiming right of straight (negative offset) to counter the break
// (spec.md §8.4).
func TestScenarioBreakingPuttAimsAgainstBreak(t *testing.T) {
	hm := newSlopedHeightMap(t, 0.03, 0)
	sim, err := NewRollSimulator(hm, RollSimulatorParams{StimpFt: 10})
	assert.NoError(t, err)
	opt := NewLineOptimizer(sim, OptimizerParams{})

	best := opt.Run(nil, 0, -8, 0, 0)
	assert.True(t, best.Result.Holed)
	assert.Less(t, best.AngleOffsetDeg, 0.0)
}

// Scenario 5: uphill stop-short — either the putt holes at high speed, or it
// misses short with a small residual gap and the search pins the speed at
// (or very near) the upper bound of the search range (spec.md §8.5).
func TestScenarioUphillStopShortOrHoled(t *testing.T) {
	hm := newSlopedHeightMap(t, 0, 0.08)
	sim, err := NewRollSimulator(hm, RollSimulatorParams{StimpFt: 10})
	assert.NoError(t, err)
	params := OptimizerParams{}.withDefaults()
	opt := NewLineOptimizer(sim, params)

	best := opt.Run(nil, 0, 0, 0, 8)
	if best.Result.Holed {
		assert.Greater(t, best.SpeedFps, 6.0)
	} else {
		assert.LessOrEqual(t, best.MissFt, 2.0)
		assert.InDelta(t, params.SpeedMaxFps, best.SpeedFps, 1.0)
	}
}

// Scenario 6: off-green termination under a large initial tangential
// velocity (spec.md §8.6) — exercised directly against RollSimulator.
func TestScenarioOffGreenTermination(t *testing.T) {
	hm := newFlatHeightMap(t)
	sim, err := NewRollSimulator(hm, RollSimulatorParams{StimpFt: 10})
	assert.NoError(t, err)

	traj := sim.Simulate(18, 0, 0, 14, true, 0, 0)
	assert.False(t, traj.Holed)
	r2 := traj.FinalX*traj.FinalX + traj.FinalZ*traj.FinalZ
	assert.InDelta(t, 20.0*20.0, r2, 8.0)
}

// Optimizer monotonicity (spec.md §8): each stage's best score never exceeds
// the previous stage's.
func TestOptimizerStageMonotonicity(t *testing.T) {
	hm := newSlopedHeightMap(t, 0.03, 0)
	sim, err := NewRollSimulator(hm, RollSimulatorParams{StimpFt: 10})
	assert.NoError(t, err)
	opt := NewLineOptimizer(sim, OptimizerParams{})

	stages := opt.RunStages(nil, 0, -8, 0, 0)
	assert.LessOrEqual(t, stages[1].Score, stages[0].Score)
	assert.LessOrEqual(t, stages[2].Score, stages[1].Score)
}

// Determinism: identical inputs produce an identical BestLine record.
func TestOptimizerDeterministic(t *testing.T) {
	hm := newSlopedHeightMap(t, 0.03, 0)
	sim, err := NewRollSimulator(hm, RollSimulatorParams{StimpFt: 10})
	assert.NoError(t, err)
	opt := NewLineOptimizer(sim, OptimizerParams{})

	a := EncodeBestLine(0, -8, 0, 0, 10, opt.Run(nil, 0, -8, 0, 0))
	b := EncodeBestLine(0, -8, 0, 0, 10, opt.Run(nil, 0, -8, 0, 0))
	assert.Equal(t, a, b)
}

// aim_angle_deg must equal atan2(v0z,v0x)*180/pi to within 1e-6 (spec.md §8).
func TestAimAngleIdentity(t *testing.T) {
	hm := newFlatHeightMap(t)
	sim, err := NewRollSimulator(hm, RollSimulatorParams{StimpFt: 10})
	assert.NoError(t, err)
	opt := NewLineOptimizer(sim, OptimizerParams{})

	c := opt.Run(nil, 0, 0, 0, 8)
	bl := EncodeBestLine(0, 0, 0, 8, 10, c)

	expected := math.Atan2(c.V0Z, c.V0X) * 180 / math.Pi
	assert.InDelta(t, expected, bl.AimAngleDeg, 1e-6)
}
