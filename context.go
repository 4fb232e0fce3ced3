// Package greenreader threads a build context (timers plus structured
// logging) through the reconstruction/simulation/optimization pipeline. It
// has no opinion on the math; it only observes it.
package greenreader

import (
	"time"

	"go.uber.org/zap"
)

// Stage names a pipeline phase a BuildContext can time.
type Stage int

// Pipeline stages, mirroring the build steps of a single putt evaluation.
const (
	StageReconstruct Stage = iota
	StageGradients
	StageOptimize
	numStages
)

func (s Stage) String() string {
	switch s {
	case StageReconstruct:
		return "reconstruct"
	case StageGradients:
		return "gradients"
	case StageOptimize:
		return "optimize"
	default:
		return "unknown"
	}
}

// BuildContext carries an optional logger and per-stage timers through the
// pipeline. It generalizes the teacher's rcContext/BuildContext: instead of
// a bespoke in-memory message log, progress/warning/error lines go through
// a *zap.Logger. A nil *BuildContext is safe to use everywhere and simply
// does nothing; one built with NewNopContext logs nothing but still
// accumulates stage timers.
type BuildContext struct {
	log    *zap.Logger
	timers [numStages]time.Duration
	starts [numStages]time.Time
}

// NewBuildContext returns a BuildContext that logs through log. A nil log
// is treated the same as NewNopContext.
func NewBuildContext(log *zap.Logger) *BuildContext {
	return &BuildContext{log: log}
}

// NewNopContext returns a BuildContext that discards all logging (stage
// timers still accumulate); useful for tests and for callers that don't
// care about log output.
func NewNopContext() *BuildContext {
	return &BuildContext{}
}

// StartTimer starts the timer for stage. Safe to call on a nil receiver.
func (c *BuildContext) StartTimer(stage Stage) {
	if c == nil {
		return
	}
	c.starts[stage] = time.Now()
}

// StopTimer stops the timer for stage and accumulates the elapsed duration.
// Safe to call on a nil receiver.
func (c *BuildContext) StopTimer(stage Stage) {
	if c == nil {
		return
	}
	if c.starts[stage].IsZero() {
		return
	}
	c.timers[stage] += time.Since(c.starts[stage])
}

// AccumulatedTime returns the total time spent in stage across all
// Start/Stop pairs.
func (c *BuildContext) AccumulatedTime(stage Stage) time.Duration {
	if c == nil {
		return 0
	}
	return c.timers[stage]
}

// Progressf logs a progress line at the given stage. Safe to call on a nil
// receiver or with a nil logger.
func (c *BuildContext) Progressf(stage Stage, format string, args ...interface{}) {
	if c == nil || c.log == nil {
		return
	}
	c.log.Sugar().Infof("[%s] "+format, append([]interface{}{stage}, args...)...)
}

// Warningf logs a warning line at the given stage.
func (c *BuildContext) Warningf(stage Stage, format string, args ...interface{}) {
	if c == nil || c.log == nil {
		return
	}
	c.log.Sugar().Warnf("[%s] "+format, append([]interface{}{stage}, args...)...)
}

// Errorf logs an error line at the given stage.
func (c *BuildContext) Errorf(stage Stage, format string, args ...interface{}) {
	if c == nil || c.log == nil {
		return
	}
	c.log.Sugar().Errorf("[%s] "+format, append([]interface{}{stage}, args...)...)
}
