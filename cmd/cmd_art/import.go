// file:artkv/cmd/cmd_art/import.go
package cmd_art

import (
	"context"
	"fmt"

	"github.com/rskv-p/artkv/pkg/x_db"
	"github.com/rskv-p/artkv/pkg/x_log"
	"github.com/rskv-p/artkv/servs/s_art/art_serv"
	"github.com/spf13/cobra"
)

// importCmd merges rows from another database into the snapshot
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import key/value rows from another database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, "artkv")
		if err != nil {
			return err
		}
		fromType, _ := cmd.Flags().GetString("from-type")
		fromDSN, _ := cmd.Flags().GetString("from-dsn")
		if fromDSN == "" {
			return fmt.Errorf("--from-dsn is required")
		}
		typ, err := x_db.ParseType(fromType)
		if err != nil {
			return err
		}

		log := x_log.New("art_import")
		src, err := x_db.Open(x_db.Config{Type: typ, DSN: fromDSN, LogLevel: cfg.Logger.Level}, log)
		if err != nil {
			return err
		}
		defer x_db.Close(src)

		svc, err := art_serv.New(cfg, log)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if _, err := svc.Restore(ctx); err != nil {
			return err
		}
		rows, err := x_db.Count(ctx, src)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "source holds %d rows\n", rows)

		n, err := svc.Import(ctx, src)
		if err != nil {
			return fmt.Errorf("import after %d rows: %w", n, err)
		}
		total, err := svc.Save(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows, snapshot holds %d keys\n", n, total)
		return nil
	},
}

func init() {
	addConfigFlag(importCmd)
	importCmd.Flags().String("from-type", "sqlite", "Source database type (sqlite, postgres)")
	importCmd.Flags().String("from-dsn", "", "Source database DSN")
}
