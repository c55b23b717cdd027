// file:artkv/cmd/root.go
package cmd

import (
	"os"

	"github.com/rskv-p/artkv/cmd/cmd_art"
	"github.com/rskv-p/artkv/pkg/x_log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "artkv",
	Short:        "Adaptive radix tree key/value store",
	SilenceUsage: true,
	// commands with a config file replace this logger in loadConfig
	PersistentPreRun: func(*cobra.Command, []string) { x_log.Init() },
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(cmd_art.Commands()...)
}
