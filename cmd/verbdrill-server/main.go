package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/verbdrill/internal/bootstrap"
	"github.com/at-ishikawa/verbdrill/internal/config"
	"github.com/at-ishikawa/verbdrill/internal/drill"
	"github.com/at-ishikawa/verbdrill/internal/server"
	"github.com/at-ishikawa/verbdrill/internal/session"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string
	var port int

	command := &cobra.Command{
		Use:           "verbdrill-server",
		Short:         "Serve drill sessions over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			return run(cmd.Context(), cfg)
		},
	}
	command.Flags().StringVar(&configFile, "config", os.Getenv("VERBDRILL_CONFIG"), "config file path")
	command.Flags().IntVar(&port, "port", 0, "port to listen on, overrides server.port")
	return command
}

func loadConfig(configFile string) (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func run(ctx context.Context, cfg *config.Config) error {
	app := bootstrap.New(bootstrap.DefaultShutdownTimeout)

	store, closeStore, err := drill.OpenStore(ctx, cfg, cfg.Progress.Backend)
	if err != nil {
		return fmt.Errorf("drill.OpenStore() > %w", err)
	}
	app.AddShutdownHook(func(context.Context) error {
		return closeStore()
	})

	d, err := drill.Load(ctx, cfg, store, session.SystemClock)
	if err != nil {
		return errors.Join(fmt.Errorf("drill.Load() > %w", err), closeStore())
	}

	srv := newHTTPServer(cfg, server.NewSessionHandler(d.Engine))
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", "addr", srv.Addr, "cards", d.Engine.Deck().Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe() > %w", err)
		}
		return nil
	})
}

func newHTTPServer(cfg *config.Config, handler *server.SessionHandler) *http.Server {
	mux := handler.Routes()
	return &http.Server{
		Addr: net.JoinHostPort("", strconv.Itoa(cfg.Server.Port)),
		Handler: server.LoggingMiddleware(
			server.CORSMiddleware(h2c.NewHandler(mux, &http2.Server{}), cfg.Server.CORS.AllowedOrigins),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
