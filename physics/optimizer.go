package physics

import (
	"math"
	"runtime"
	"sync"

	"github.com/arl/greenreader"
)

// stageSpec describes one coarse-to-fine search stage.
type stageSpec struct {
	angleStepDeg float64
	speedStepFps float64
	angleWinDeg  float64
	speedWinFps  float64 // half-width around the previous stage's best speed; ignored for stage 0
}

var stages = [3]stageSpec{
	{angleStepDeg: 2.0, speedStepFps: 1.0, angleWinDeg: 0 /* uses angleSpanDeg */},
	{angleStepDeg: 0.5, speedStepFps: 0.25, angleWinDeg: 4.0, speedWinFps: 2.0},
	{angleStepDeg: 0.2, speedStepFps: 0.1, angleWinDeg: 1.0, speedWinFps: 0.6},
}

// OptimizerParams tunes LineOptimizer. Zero values select the documented
// defaults.
type OptimizerParams struct {
	AngleSpanDeg float64 // default 25.0
	SpeedMinFps  float64 // default 2.0
	SpeedMaxFps  float64 // default 16.0
}

func (p OptimizerParams) withDefaults() OptimizerParams {
	if p.AngleSpanDeg == 0 {
		p.AngleSpanDeg = 25.0
	}
	if p.SpeedMinFps == 0 {
		p.SpeedMinFps = 2.0
	}
	if p.SpeedMaxFps == 0 {
		p.SpeedMaxFps = 16.0
	}
	return p
}

// Candidate is a scored launch: the winning or losing result of one
// simulation run in the search.
type Candidate struct {
	AngleOffsetDeg float64
	SpeedFps       float64
	V0X, V0Z       float64
	Score          float64
	MissFt         float64
	Result         Trajectory
}

// LineOptimizer runs the three-stage coarse-to-fine grid search of
// spec.md §4.6 over a RollSimulator.
type LineOptimizer struct {
	sim    *RollSimulator
	params OptimizerParams
}

// NewLineOptimizer returns an optimizer driving sim with params.
func NewLineOptimizer(sim *RollSimulator, params OptimizerParams) *LineOptimizer {
	return &LineOptimizer{sim: sim, params: params.withDefaults()}
}

// Run searches for the best launch from (ballX,ballZ) toward (holeX,holeZ),
// returning the winning candidate of the final (micro) stage. Each stage's
// candidates are evaluated concurrently across a bounded worker pool; the
// winner is selected by a deterministic argmin keyed on (angle index, speed
// index) in ascending iteration order, so the result never depends on
// goroutine scheduling. ctx (nil-safe) times the whole search and emits one
// progress line; no search decision depends on it.
func (o *LineOptimizer) Run(ctx *greenreader.BuildContext, ballX, ballZ, holeX, holeZ float64) Candidate {
	results := o.RunStages(ctx, ballX, ballZ, holeX, holeZ)
	return results[len(results)-1]
}

// RunStages is Run, but returns the winning candidate of every one of the
// three stages in order, so callers (and tests) can verify the §8
// monotonicity property: stage N's score never exceeds stage N-1's. Each
// stage's search window is centered on the previous stage's winner, but a
// clamped speed range or floating-point rounding can leave that exact point
// off the grid, so a stage that finds nothing strictly better keeps the
// previous stage's winner.
func (o *LineOptimizer) RunStages(ctx *greenreader.BuildContext, ballX, ballZ, holeX, holeZ float64) [3]Candidate {
	ctx.StartTimer(greenreader.StageOptimize)
	defer ctx.StopTimer(greenreader.StageOptimize)

	baseAngleRad := math.Atan2(holeZ-ballZ, holeX-ballX)

	var out [3]Candidate

	// Stage 1: coarse, centered on 0 offset, full speed range.
	best := o.runStage(ballX, ballZ, holeX, holeZ, baseAngleRad,
		stages[0].angleStepDeg, stages[0].speedStepFps,
		0, o.params.AngleSpanDeg,
		(o.params.SpeedMinFps+o.params.SpeedMaxFps)/2, o.params.SpeedMinFps, o.params.SpeedMaxFps)
	out[0] = best

	// Stage 2: refine around stage 1's best.
	speedLo := math.Max(o.params.SpeedMinFps, best.SpeedFps-stages[1].speedWinFps)
	speedHi := math.Min(o.params.SpeedMaxFps, best.SpeedFps+stages[1].speedWinFps)
	best = o.runStage(ballX, ballZ, holeX, holeZ, baseAngleRad,
		stages[1].angleStepDeg, stages[1].speedStepFps,
		best.AngleOffsetDeg, stages[1].angleWinDeg,
		best.SpeedFps, speedLo, speedHi)
	if out[0].Score < best.Score {
		best = out[0]
	}
	out[1] = best

	// Stage 3: micro-refine around stage 2's best.
	speedLo = math.Max(o.params.SpeedMinFps, best.SpeedFps-stages[2].speedWinFps)
	speedHi = math.Min(o.params.SpeedMaxFps, best.SpeedFps+stages[2].speedWinFps)
	best = o.runStage(ballX, ballZ, holeX, holeZ, baseAngleRad,
		stages[2].angleStepDeg, stages[2].speedStepFps,
		best.AngleOffsetDeg, stages[2].angleWinDeg,
		best.SpeedFps, speedLo, speedHi)
	if out[1].Score < best.Score {
		best = out[1]
	}
	out[2] = best

	ctx.Progressf(greenreader.StageOptimize, "best score=%.3f angle_offset=%.2fdeg speed=%.2ffps holed=%v",
		out[2].Score, out[2].AngleOffsetDeg, out[2].SpeedFps, out[2].Result.Holed)
	return out
}

// runStage evaluates one angle/speed grid, angles outer (ascending) and
// speeds inner (ascending), and returns the best (lowest-score) candidate.
// centerAngleDeg +/- angleWinDeg bounds the angle sweep; [speedLo,speedHi]
// bounds the speed sweep directly (the caller has already clamped it to the
// optimizer's full speed range).
func (o *LineOptimizer) runStage(ballX, ballZ, holeX, holeZ, baseAngleRad float64,
	angleStepDeg, speedStepFps, centerAngleDeg, angleWinDeg, _centerSpeed, speedLo, speedHi float64) Candidate {

	angles := arange(centerAngleDeg-angleWinDeg, centerAngleDeg+angleWinDeg, angleStepDeg)
	speeds := arange(speedLo, speedHi, speedStepFps)

	type scored struct {
		c          Candidate
		angleIdx   int
		speedIdx   int
		hasResult  bool
	}

	total := len(angles) * len(speeds)
	results := make([]scored, total)

	workers := runtime.GOMAXPROCS(0)
	if workers > total {
		workers = total
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	jobs := make(chan int, total)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				ai := idx / len(speeds)
				si := idx % len(speeds)
				angleDeg := angles[ai]
				speedFps := speeds[si]

				angleRad := baseAngleRad + degToRad(angleDeg)
				v0x := math.Cos(angleRad) * speedFps
				v0z := math.Sin(angleRad) * speedFps

				res := o.sim.Simulate(ballX, ballZ, v0x, v0z, true, holeX, holeZ)
				miss := math.Hypot(res.FinalX-holeX, res.FinalZ-holeZ)

				var score float64
				if res.Holed {
					score = -1000.0 - miss
				} else {
					score = miss + 0.15*res.FinalSpeed
				}

				results[idx] = scored{
					c: Candidate{
						AngleOffsetDeg: angleDeg,
						SpeedFps:       speedFps,
						V0X:            v0x,
						V0Z:            v0z,
						Score:          score,
						MissFt:         miss,
						Result:         res,
					},
					angleIdx:  ai,
					speedIdx:  si,
					hasResult: true,
				}
			}
		}()
	}
	for idx := 0; idx < total; idx++ {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	// Deterministic reduction: iterate in (angle index, speed index)
	// ascending order regardless of which worker finished first, and keep
	// the first-seen strictly-better candidate (stable tie-break).
	var best Candidate
	haveBest := false
	for ai := range angles {
		for si := range speeds {
			r := results[ai*len(speeds)+si]
			if !r.hasResult {
				continue
			}
			if !haveBest || r.c.Score < best.Score {
				best = r.c
				haveBest = true
			}
		}
	}
	return best
}

// arange returns values from lo to hi (inclusive, within floating-point
// slack) spaced by step.
func arange(lo, hi, step float64) []float64 {
	if step <= 0 {
		return []float64{lo}
	}
	n := int(math.Floor((hi-lo)/step+1e-9)) + 1
	if n < 1 {
		n = 1
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = lo + float64(i)*step
	}
	return out
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
