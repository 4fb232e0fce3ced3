package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arl/greenreader"
)

var log *zap.Logger

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "greenreader",
	Short: "compute putting lines on golf greens",
	Long: `greenreader reconstructs a golf green's heightfield from a traced
boundary and contour set, then searches for the launch (angle, speed) that
sinks a putt from a ball position to a hole position:
	- build: reconstruct a green's heightfield and write it to disk,
	- solve: run the line optimizer against a built heightfield,
	- config: scaffold a solver-settings YAML file.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It is called by main.main; it only needs to happen once.
func Execute() {
	var err error
	log, err = zap.NewProduction()
	if err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
	defer log.Sync() //nolint:errcheck

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func buildCtx() *greenreader.BuildContext {
	return greenreader.NewBuildContext(log)
}
