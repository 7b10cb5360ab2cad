package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/a2a"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/config"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/generator"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/logger"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/web"
)

var port string

func main() {
	rootCmd := &cobra.Command{
		Use:           "server",
		Short:         "Start the Meta Ads Strategist web server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServer,
	}
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if port != "" {
		cfg.Port = port
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen, err := generator.New(ctx, cfg.Generator(), log.Named("generator"))
	if err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	defer gen.Close()

	srv, err := web.New(gen, web.Options{
		SessionTTL:         cfg.SessionTTL,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsEnabled:     cfg.MetricsEnabled,
		SecureCookies:      cfg.IsProduction(),
	}, log)
	if err != nil {
		return fmt.Errorf("web: %w", err)
	}

	httpServer := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     srv.Handler(),
		ReadTimeout: 15 * time.Second,
		// /api/report and A2A calls block for a whole generation.
		WriteTimeout: cfg.GenerationTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", httpServer.Addr),
			zap.String("agent_card", fmt.Sprintf("http://localhost:%s/.well-known/agent.json", cfg.Port)),
			zap.String("a2a_endpoint", fmt.Sprintf("http://localhost:%s%s", cfg.Port, a2a.EndpointPath)),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}
