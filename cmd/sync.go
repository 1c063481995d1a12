package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xdfio/xdf/xdf"
)

var syncOverlap bool

var syncCmd = &cobra.Command{
	Use:   "sync FILE",
	Short: "Resample every stream in FILE onto the fastest stream's grid",
	Long:  "Load FILE, run the Cross-Stream Aligner, and report the resulting shared timing grid. With --overlap, also restrict to the common temporal intersection of all streams.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := loadOptions()
		if err != nil {
			cobra.CheckErr(err)
		}

		result, err := xdf.LoadFile(args[0], opts)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to load %s: %w", args[0], err))
		}

		streams := xdf.SyncTimestamps(result.Streams)
		if syncOverlap {
			streams = xdf.LimitToOverlap(streams)
		}

		for _, s := range streams {
			if s.NumSamples() == 0 {
				fmt.Printf("  [%d] %s: empty\n", s.ID, s.Info.Name)
				continue
			}
			first, last := s.TimeStamps[0], s.TimeStamps[s.NumSamples()-1]
			fmt.Printf("  [%d] %s: %d samples, grid [%.6f, %.6f]\n", s.ID, s.Info.Name, s.NumSamples(), first, last)
		}
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncOverlap, "overlap", false, "also restrict streams to their common temporal overlap")
	rootCmd.AddCommand(syncCmd)
}
