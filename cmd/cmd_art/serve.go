// file:artkv/cmd/cmd_art/serve.go
package cmd_art

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rskv-p/artkv/pkg/x_log"
	"github.com/rskv-p/artkv/servs/s_art/art_api"
	"github.com/rskv-p/artkv/servs/s_art/art_cfg"
	"github.com/rskv-p/artkv/servs/s_art/art_nats"
	"github.com/rskv-p/artkv/servs/s_art/art_serv"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API and the NATS responder over one store
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the key/value server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, "artkv")
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.HTTPAddress, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("embedded-nats") {
			cfg.NatsEmbedded, _ = cmd.Flags().GetBool("embedded-nats")
		}
		if cmd.Flags().Changed("persist") {
			cfg.Persist, _ = cmd.Flags().GetBool("persist")
		}
		restore, _ := cmd.Flags().GetBool("restore")
		save, _ := cmd.Flags().GetBool("save")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, restore, save)
	},
}

func init() {
	addConfigFlag(serveCmd)
	serveCmd.Flags().String("addr", "", "HTTP listen address")
	serveCmd.Flags().Bool("embedded-nats", false, "Start an in-process NATS server")
	serveCmd.Flags().Bool("restore", true, "Load the last snapshot at startup")
	serveCmd.Flags().Bool("save", true, "Write a snapshot on shutdown")
	serveCmd.Flags().Bool("persist", false, "Write every mutation through to the database")
}

func serve(ctx context.Context, cfg art_cfg.ArtConfig, restore, save bool) error {
	log := x_log.New("art_serv")

	svc, err := art_serv.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Error().Err(err).Msg("close service")
		}
	}()

	if restore {
		if _, err := svc.Restore(ctx); err != nil {
			return err
		}
	}

	stopNats, err := startNats(cfg, svc.Store(), log)
	if err != nil {
		return err
	}
	defer stopNats()

	stopPersist := func() {}
	if cfg.Persist {
		stopPersist = svc.Persist(context.Background())
	}

	api := art_api.New(svc, log)
	serveErr := api.Serve(ctx, cfg.HTTPAddress)
	stopPersist()

	if save {
		if _, err := svc.Save(context.Background()); err != nil {
			log.Error().Err(err).Msg("snapshot on shutdown")
			if serveErr == nil {
				serveErr = err
			}
		}
	}
	return serveErr
}

// startNats attaches the responder to an embedded or remote server. Without
// either it does nothing.
func startNats(cfg art_cfg.ArtConfig, store *art_serv.Store, log zerolog.Logger) (func(), error) {
	var (
		nc      *nats.Conn
		cleanup func()
	)
	switch {
	case cfg.NatsEmbedded:
		emb, err := art_nats.StartEmbedded("127.0.0.1", cfg.NatsPort)
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", emb.URL()).Msg("embedded nats started")
		nc, cleanup = emb.Conn(), emb.Stop
	case cfg.NatsURL != "":
		conn, err := nats.Connect(cfg.NatsURL, nats.Name("artkv"))
		if err != nil {
			return nil, fmt.Errorf("nats connect: %w", err)
		}
		nc, cleanup = conn, conn.Close
	default:
		return func() {}, nil
	}

	resp := art_nats.NewResponder(nc, store, cfg.NatsPrefix, log)
	if err := resp.Start(); err != nil {
		cleanup()
		return nil, err
	}
	return func() {
		_ = resp.Stop()
		cleanup()
	}, nil
}
