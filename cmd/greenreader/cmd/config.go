package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arl/greenreader/ioformat"
)

var configCmd = &cobra.Command{
	Use:   "config OUT_FILE",
	Short: "scaffold a solver settings YAML file prefilled with defaults",
	Long: `Write a SolverSettings YAML file to OUT_FILE, prefilled with the
documented RollSimulator/LineOptimizer defaults, as a starting point for
overriding the roll-resistance model or the search's angle/speed range.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfig,
}

func init() {
	RootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	outPath := args[0]

	ok, err := confirmIfExists(outPath, outPath+" already exists, overwrite?")
	if err != nil {
		return err
	}
	if !ok {
		cmd.Println("aborted")
		return nil
	}

	if err := ioformat.WriteSolverSettings(outPath, ioformat.NewSolverSettings()); err != nil {
		return err
	}
	cmd.Printf("wrote default solver settings to %s\n", outPath)
	return nil
}
