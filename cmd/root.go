package cmd

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "xdfinfo",
	Short: "A CLI program for inspecting and post-processing XDF recordings",
	Long:  "The xdfinfo tool loads XDF container files, reports their stream metadata, and runs the clock-synchronization and cross-stream alignment post-processors.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file overriding the default processing options")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
