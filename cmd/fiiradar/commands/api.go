package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/brfin/fiiradar/internal/api"
	"github.com/brfin/fiiradar/internal/api/handlers"
	"github.com/brfin/fiiradar/internal/similarity"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the HTTP API server.

Endpoints:
  GET /health                       - Health check
  GET /api/funds                    - Scored fund table (?refresh=1&min_score=)
  GET /api/funds/{ticker}           - Single fund
  GET /api/funds/{ticker}/similar   - Similar funds (?tol_dy=&tol_pvp=&min_liq=&same_segment=&limit=)

Example:
  go run ./cmd/fiiradar api
  go run ./cmd/fiiradar api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, log, p, err := setup()
	if err != nil {
		return err
	}

	if apiPort != "" {
		cfg.Port = apiPort
	}

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	engine := similarity.New(cfg.Similarity, log)
	fundsHandler := handlers.NewFundsHandler(p, engine, log)
	router := api.NewRouter(fundsHandler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
