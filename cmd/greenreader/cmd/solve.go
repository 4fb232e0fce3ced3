package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/arl/greenreader/ioformat"
	"github.com/arl/greenreader/physics"
)

var (
	solveBallXZ   string
	solveHoleXZ   string
	solveStimpFt  float64
	solveSettings string
	solveOutPath  string
)

var solveCmd = &cobra.Command{
	Use:   "solve HEIGHTFIELD_DIR",
	Short: "search for the best putting line over a built heightfield",
	Long: `Load a heightfield artifact previously written by "build", compute
its gradients in double precision, and run the three-stage coarse-to-fine
optimizer from a ball position to a hole position, writing the resulting
best-line record as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveBallXZ, "ball", "", `ball position as "x,z" in feet (required)`)
	solveCmd.Flags().StringVar(&solveHoleXZ, "hole", "", `hole position as "x,z" in feet (required)`)
	solveCmd.Flags().Float64Var(&solveStimpFt, "stimp", 10.0, "green speed, Stimpmeter reading in feet")
	solveCmd.Flags().StringVar(&solveSettings, "settings", "", "optional solver settings YAML file (see 'greenreader config')")
	solveCmd.Flags().StringVar(&solveOutPath, "out", "", "write the best-line record to this path instead of stdout")
	RootCmd.AddCommand(solveCmd)
}

func parseXZ(flagName, val string) (x, z float64, err error) {
	parts := strings.Split(val, ",")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("--%s must be \"x,z\", got %q", flagName, val)
	}
	x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "--%s: invalid x", flagName)
	}
	z, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "--%s: invalid z", flagName)
	}
	return x, z, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx := buildCtx()

	if solveBallXZ == "" || solveHoleXZ == "" {
		return errors.New("both --ball and --hole are required")
	}
	ballX, ballZ, err := parseXZ("ball", solveBallXZ)
	if err != nil {
		return err
	}
	holeX, holeZ, err := parseXZ("hole", solveHoleXZ)
	if err != nil {
		return err
	}

	settings := ioformat.NewSolverSettings()
	if solveSettings != "" {
		settings, err = ioformat.ReadSolverSettings(solveSettings)
		if err != nil {
			return err
		}
	}

	hm, err := readHeightfieldArtifact(dir)
	if err != nil {
		return err
	}
	hm.ComputeGradients(ctx)

	sim, err := physics.NewRollSimulator(hm, settings.RollSimulatorParams(solveStimpFt))
	if err != nil {
		return errors.Wrap(err, "construct roll simulator")
	}
	opt := physics.NewLineOptimizer(sim, settings.OptimizerParams())

	best := opt.Run(ctx, ballX, ballZ, holeX, holeZ)
	bestLine := physics.EncodeBestLine(ballX, ballZ, holeX, holeZ, solveStimpFt, best)
	dto := ioformat.NewBestLineDTO(bestLine)

	if solveOutPath != "" {
		f, err := createFile(solveOutPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := ioformat.WriteBestLine(f, dto); err != nil {
			return err
		}
		cmd.Printf("wrote best line (holed=%v, miss=%.3fft) to %s\n", bestLine.Holed, bestLine.MissFt, solveOutPath)
		return nil
	}

	if err := ioformat.WriteBestLine(cmd.OutOrStdout(), dto); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
