package serve

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"xcribe/internal/api/server"
	"xcribe/internal/app"
	"xcribe/internal/app/logger"
	"xcribe/internal/config"
)

var (
	host       string
	port       string
	configPath string
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	Cmd.Flags().StringVar(&port, "port", "", "listen port (overrides config)")
	Cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to an xcribe.yaml config file")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Xcribe HTTP API",
	Long: `Start the HTTP API used by the web front end: login gate, profile CRUD and
the one-shot transcription upload endpoint.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load configuration: %v", err)
		}
		if host != "" {
			cfg.Server.Host = host
		}
		if port != "" {
			cfg.Server.Port = port
		}

		zl := logger.MustNew(cfg.Server.Environment != "production")
		defer zl.Sync()

		transcriber, err := app.ProvideTranscriber()
		if err != nil {
			log.Fatalf("configuration error: %v", err)
		}

		store, closer, err := app.ProvideStore(cfg.Store)
		if err != nil {
			log.Fatalf("failed to open profile store: %v", err)
		}
		defer closer.Close()

		srv := server.NewServer(cfg.Server, cfg.Auth, transcriber, store, zl)
		if err := srv.Start(); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("shutdown failed: %v", err)
		}
	},
}
