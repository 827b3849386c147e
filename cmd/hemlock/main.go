package main

import (
	"os"

	"github.com/spf13/cobra"

	"hemlock/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "hemlock",
	Short: "Hemlock scripting language runtime",
	Long:  `Hemlock is a dynamically-typed, manually-memory-managed scripting language.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(inspectCmd)

	rootCmd.PersistentFlags().String("trace", "", "trace output path ('-' for stderr, empty to disable)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer size for ring/both trace modes")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "periodic liveness heartbeat interval (0 disables)")
	rootCmd.PersistentFlags().String("config", "", "path to a TOML runtime config file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
