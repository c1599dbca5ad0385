package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/heatsim/internal/logging"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

// main registers the commands and exits with status 1 when a command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "heatsim",
		Short:        "1-D heat equation solver for comparing time-stepping schemes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newRunCmd(),
		newCompareCmd(),
		newLiveCmd(),
		newPlotCmd(),
		newExportCmd(),
		newListCmd(),
		newPresetsCmd(),
	)
	return rootCmd
}
