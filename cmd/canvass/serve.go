package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dialbird/canvass"
	"github.com/dialbird/canvass/internal/logging"
	"github.com/dialbird/canvass/pkg/adapters/file"
	httpadapter "github.com/dialbird/canvass/pkg/adapters/http"
	"github.com/dialbird/canvass/pkg/adapters/memory"
	redisadapter "github.com/dialbird/canvass/pkg/adapters/redis"
	"github.com/dialbird/canvass/pkg/observability"
	"github.com/dialbird/canvass/pkg/session"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the survey HTTP server",
	Long:  `Starts the engine in server mode, exposing the survey JSON API and Prometheus metrics over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("config")
		port, _ := cmd.Flags().GetString("port")
		redisURL, _ := cmd.Flags().GetString("redis")

		logger := logging.NewJSON(slog.LevelInfo)

		cfg, err := file.NewSource("").Config(context.Background(), path)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		metrics := observability.NewMetrics()
		metrics.MustRegister()

		engine, err := canvass.New(cfg,
			canvass.WithLogger(logger),
			canvass.WithHooks(metrics.Hooks()),
		)
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		sessions, err := buildSessionManager(redisURL, logger)
		if err != nil {
			fmt.Printf("Error wiring session store: %v\n", err)
			os.Exit(1)
		}

		handler := httpadapter.NewHandler(engine, sessions, logger)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Canvass server on %s\n", srv.Addr)
			fmt.Printf("Serving survey: %s\n", path)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Canvass server stopped gracefully")
		}
	},
}

func buildSessionManager(redisURL string, logger *slog.Logger) (*session.Manager, error) {
	if redisURL == "" {
		return session.NewManager(memory.NewStore(), session.WithLogger(logger)), nil
	}
	redisOpts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := goredis.NewClient(redisOpts)
	return session.NewManager(redisadapter.NewFromClient(client),
		session.WithLogger(logger),
		session.WithLocker(redisadapter.NewLocker(client, "canvass:lock:")),
	), nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis URL for session persistence (default: in-memory)")
}
