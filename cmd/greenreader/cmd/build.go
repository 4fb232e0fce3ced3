package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/arl/greenreader/geo"
	"github.com/arl/greenreader/ioformat"
	"github.com/arl/greenreader/terrain"
)

var buildCmd = &cobra.Command{
	Use:   "build CONFIG BOUNDARY CONTOURS OUT_DIR",
	Short: "reconstruct a green's heightfield and write it to OUT_DIR",
	Long: `Load a config record, a boundary record and a contours record,
infer the green's real-world size from its lat/lon extents, reconstruct the
heightfield with a thin-plate-spline fit over the traced contours, and write
the heightfield artifact (heightfield.bin + heightfield.mask +
heightfield.json) to OUT_DIR.`,
	Args: cobra.ExactArgs(4),
	RunE: runBuild,
}

func init() {
	RootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	configPath, boundaryPath, contoursPath, outDir := args[0], args[1], args[2], args[3]
	ctx := buildCtx()

	cfg, err := readJSON(configPath, ioformat.ReadConfig)
	if err != nil {
		return err
	}
	boundary, err := readJSON(boundaryPath, ioformat.ReadBoundary)
	if err != nil {
		return err
	}
	contours, err := readJSON(contoursPath, ioformat.ReadContours)
	if err != nil {
		return err
	}

	widthFt, heightFt := geo.InferGreenSizeFt(cfg.Extents.Geo())

	const resFt = 0.5
	grid := geo.MakeLocalGrid(widthFt, heightFt, resFt)

	Y, inside, err := terrain.Reconstruct(ctx, boundary.Points(), contours.Contours(), grid.X, grid.Z, terrain.DefaultReconstructOptions())
	if err != nil {
		return errors.Wrap(err, "reconstruct heightfield")
	}

	mask := make([][]bool, len(inside))
	for i := range inside {
		mask[i] = make([]bool, len(inside[i]))
		copy(mask[i], inside[i])
	}
	hm, err := terrain.NewHeightMap(grid.X, grid.Z, Y, resFt, mask)
	if err != nil {
		return errors.Wrap(err, "build heightmap")
	}

	if err := writeHeightfieldArtifact(outDir, hm, resFt, grid.XAxis[0], grid.ZAxis[0]); err != nil {
		return err
	}

	cmd.Printf("wrote heightfield (%dx%d cells, %.1fx%.1fft) to %s\n", len(grid.X[0]), len(grid.X), widthFt, heightFt, outDir)
	return nil
}
