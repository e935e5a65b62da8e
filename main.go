// Command chessroom starts the chess relay server.
//
// The server speaks a JSON event protocol over a single websocket endpoint:
// players join named rooms and are seated white then black by arrival order,
// moves and chat are relayed to everyone in the room, spectators get a
// catch-up snapshot, and a janitor archives rooms that sit idle and empty.
// A read-only inspection surface is exposed over REST and MCP, with
// Prometheus metrics on /metrics.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/playrelay/chessroom/api"
	"github.com/playrelay/chessroom/config"
	"github.com/playrelay/chessroom/game/registry"
	"github.com/playrelay/chessroom/game/service"
	"github.com/playrelay/chessroom/transport/mcp"
	"github.com/playrelay/chessroom/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Chess Room Relay"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// newCommand builds the CLI. The bare command runs the server; `version`
// prints build information and exits.
func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "chessroom",
		Usage:   "websocket chess relay server",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "env file loaded before reading configuration",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "listen port (overrides PORT)",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "dev or prod (overrides MODE)",
			},
			&cli.StringFlag{
				Name:  "static-dir",
				Usage: "directory served at / (overrides STATIC_DIR)",
			},
		},
		Action: runServer,
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "print version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("%s v%s\n", AppName, Version)
					return nil
				},
			},
		},
	}
}

// runServer wires every component and serves until interrupted.
func runServer(ctx context.Context, cmd *cli.Command) error {
	// The env file is optional; a real environment always wins over it.
	if err := godotenv.Load(cmd.String("env-file")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	// Flags win over the environment.
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("mode") {
		cfg.Mode = cmd.String("mode")
	}
	if cmd.IsSet("static-dir") {
		cfg.StaticDir = cmd.String("static-dir")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	setupLogging(cfg)
	log.Info().Str("version", Version).Str("mode", cfg.Mode).Msg("starting chess relay")

	relay, hub, err := initializeServices(cfg)
	if err != nil {
		return err
	}

	inspector := mcp.NewServer(relay)
	apiServer := api.NewServer(relay, hub, inspector.Handler(), cfg.StaticDir)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      apiServer,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go janitor(serveCtx, relay, cfg)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().Str("addr", cfg.Addr()).Msg("http server listening")
		log.Info().Msgf("websocket: ws://localhost%s/ws", cfg.Addr())
		log.Info().Msgf("inspection: http://localhost%s/api/rooms", cfg.Addr())
		log.Info().Msgf("mcp endpoint: http://localhost%s/mcp", cfg.Addr())

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	if cfg.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveNgrok(serveCtx, apiServer)
		}()
	}

	sig := <-stop
	log.Info().Str("signal", sig.String()).Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http server shutdown")
	}

	wg.Wait()
	log.Info().Msg("server stopped")
	return nil
}

// initializeServices wires the registry, connection directory, archiver and
// relay service, and hands back the relay with its websocket gateway.
func initializeServices(cfg config.Config) (service.RelayService, *websocket.Hub, error) {
	reg := registry.New(nil)
	dir := websocket.NewDirectory()

	// Evicted rooms are archived to disk in prod; dev just drops them.
	var archiver registry.Archiver
	if cfg.IsProd() {
		fa, err := registry.NewFileArchiver(cfg.ArchiveDir)
		if err != nil {
			return nil, nil, fmt.Errorf("create archiver: %w", err)
		}
		archiver = fa
	}

	relay := service.NewRelayService(reg, dir, archiver)
	hub := websocket.NewHub(relay, dir, !cfg.IsProd())

	return relay, hub, nil
}

// setupLogging configures the global zerolog logger: pretty console output
// in dev, JSON in prod, level from config.
func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsProd() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// janitor periodically evicts rooms that have been idle and empty longer
// than the configured TTL.
func janitor(ctx context.Context, relay service.RelayService, cfg config.Config) {
	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := relay.EvictIdleRooms(cfg.RoomTTL); n > 0 {
				log.Info().Int("rooms", n).Msg("evicted idle rooms")
			}
		}
	}
}

// serveNgrok exposes the server through an ngrok tunnel for external access
// during development. The tunnel shares the regular handler.
func serveNgrok(ctx context.Context, handler http.Handler) {
	authToken := os.Getenv("NGROK_AUTHTOKEN")
	if authToken == "" {
		log.Warn().Msg("ngrok enabled but NGROK_AUTHTOKEN is not set")
		return
	}

	tunnel := ngrokConfig.HTTPEndpoint()
	if domain := os.Getenv("NGROK_DOMAIN"); domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	log.Info().Str("url", tun.URL()).Msg("ngrok tunnel established")

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Warn().Err(err).Msg("ngrok server stopped")
	}
}
