package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xdfio/xdf/config"
	"github.com/xdfio/xdf/xdf"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print an XDF file's header and per-stream metadata",
	Long:  "Load FILE and print the flattened file header plus each stream's name, type, channel count, sampling rate, and sample count.",
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

		if len(result.FileHeader) > 0 {
			fmt.Println("file header:")
			for k, v := range result.FileHeader {
				fmt.Printf("  %s: %s\n", k, v)
			}
		}

		fmt.Printf("%d stream(s):\n", len(result.Streams))
		for _, s := range result.Streams {
			fmt.Printf("  [%d] %s (%s): %d channel(s), %s, nominal_srate=%.4g effective_srate=%.4g samples=%d\n",
				s.ID, s.Info.Name, s.Info.Type, s.Info.ChannelCount, s.Info.ChannelFormat,
				s.Info.NominalSRate, s.Info.EffectiveSRate, s.NumSamples())
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func loadOptions() (xdf.Options, error) {
	if configPath == "" {
		return config.Default()
	}
	return config.Load(configPath)
}
