package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmarques/curriculo-agent/internal/quota"
	"github.com/rmarques/curriculo-agent/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Start an HTTP server exposing the job parsing pipeline with per-client quota enforcement.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Port == 0 {
		cfg.Port = servePort
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}

	// Quota window is fixed at one minute to match the per-minute rates.
	limits := quota.DefaultLimits()
	if cfg.RequestsPerMinute > 0 {
		limits.RequestsPerWindow = cfg.RequestsPerMinute
	}
	if cfg.TokensPerMinute > 0 {
		limits.TokensPerWindow = cfg.TokensPerMinute
	}

	srv, err := server.New(server.Config{
		Port:    cfg.Port,
		Client:  client,
		Models:  cfg.ModelChain(),
		Timeout: cfg.RequestTimeout(),
		Limits:  limits,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
