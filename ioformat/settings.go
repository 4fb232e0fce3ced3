package ioformat

import (
	"io/ioutil"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/arl/greenreader/physics"
)

// SolverSettings overrides RollSimulator/LineOptimizer defaults, loaded from
// a YAML file (mirroring the teacher's own recast.yml build-settings
// format).
type SolverSettings struct {
	DtS          float64 `yaml:"dt"`
	StopSpeed    float64 `yaml:"stopSpeed"`
	MaxTimeS     float64 `yaml:"maxTime"`
	CupRadiusFt  float64 `yaml:"cupRadius"`
	MaxCupSpeed  float64 `yaml:"maxCupSpeed"`
	VStimpFps    float64 `yaml:"vStimp"`

	AngleSpanDeg float64 `yaml:"angleSpanDeg"`
	SpeedMinFps  float64 `yaml:"speedMinFps"`
	SpeedMaxFps  float64 `yaml:"speedMaxFps"`

	SampleStepFt float64 `yaml:"sampleStepFt"`
	Smoothing    float64 `yaml:"smoothing"`
}

// NewSolverSettings returns SolverSettings prefilled with the documented
// defaults, for cmd/greenreader's config subcommand to scaffold.
func NewSolverSettings() SolverSettings {
	return SolverSettings{
		DtS:         0.01,
		StopSpeed:   0.2,
		MaxTimeS:    30.0,
		CupRadiusFt: 2.125 / 12.0,
		MaxCupSpeed: 4.0,
		VStimpFps:   6.0,

		AngleSpanDeg: 25.0,
		SpeedMinFps:  2.0,
		SpeedMaxFps:  16.0,

		SampleStepFt: 1.0,
		Smoothing:    0.25,
	}
}

// RollSimulatorParams converts s (plus the required stimp reading) to
// physics.RollSimulatorParams.
func (s SolverSettings) RollSimulatorParams(stimpFt float64) physics.RollSimulatorParams {
	return physics.RollSimulatorParams{
		StimpFt:     stimpFt,
		DtS:         s.DtS,
		StopSpeed:   s.StopSpeed,
		MaxTimeS:    s.MaxTimeS,
		CupRadiusFt: s.CupRadiusFt,
		MaxCupSpeed: s.MaxCupSpeed,
		VStimpFps:   s.VStimpFps,
	}
}

// OptimizerParams converts s to physics.OptimizerParams.
func (s SolverSettings) OptimizerParams() physics.OptimizerParams {
	return physics.OptimizerParams{
		AngleSpanDeg: s.AngleSpanDeg,
		SpeedMinFps:  s.SpeedMinFps,
		SpeedMaxFps:  s.SpeedMaxFps,
	}
}

// ReadSolverSettings loads a SolverSettings YAML file.
func ReadSolverSettings(path string) (SolverSettings, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return SolverSettings{}, errors.Wrapf(err, "read solver settings %q", path)
	}
	var s SolverSettings
	if err := yaml.Unmarshal(buf, &s); err != nil {
		return SolverSettings{}, errors.Wrapf(err, "parse solver settings %q", path)
	}
	return s, nil
}

// WriteSolverSettings writes s to path as YAML.
func WriteSolverSettings(path string, s SolverSettings) error {
	buf, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshal solver settings")
	}
	if err := ioutil.WriteFile(path, buf, 0o644); err != nil {
		return errors.Wrapf(err, "write solver settings %q", path)
	}
	return nil
}
