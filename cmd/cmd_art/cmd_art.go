// file:artkv/cmd/cmd_art/cmd_art.go
package cmd_art

import (
	"fmt"

	"github.com/rskv-p/artkv/pkg/x_log"
	"github.com/rskv-p/artkv/servs/s_art/art_cfg"
	"github.com/spf13/cobra"
)

// Commands returns every art subcommand.
func Commands() []*cobra.Command {
	return []*cobra.Command{serveCmd, shellCmd, benchCmd, importCmd, logsCmd}
}

// addConfigFlag registers --config on cmd.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "Path to art_config.json (default $ART_CFG or ./art_config.json)")
}

// loadConfig reads the file named by --config and installs the logger.
func loadConfig(cmd *cobra.Command, module string) (art_cfg.ArtConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := art_cfg.Read(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	x_log.InitWithConfig(&cfg.Logger, module)
	return cfg, nil
}
