// file:artkv/cmd/cmd_art/logs.go
package cmd_art

import (
	"github.com/rskv-p/artkv/pkg/x_log"
	"github.com/rskv-p/artkv/servs/s_art/art_cfg"
	"github.com/spf13/cobra"
)

// logsCmd prints the tail of the log file
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the last lines of the log file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := art_cfg.Read(path)
		if err != nil {
			return err
		}
		n, _ := cmd.Flags().GetInt("lines")

		lines, err := x_log.GetLogs(cfg.Logger.LogFile, n)
		if err != nil {
			return err
		}
		styles := x_log.DefaultStylesByName(cfg.Logger.Style)
		x_log.PrintLogs(cmd.OutOrStdout(), lines, "│", styles.Separator)
		return nil
	},
}

func init() {
	addConfigFlag(logsCmd)
	logsCmd.Flags().IntP("lines", "n", 50, "Number of lines")
}
