// Command server runs the photogram API.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photogram/internal/config"
	"photogram/internal/observability"
	"photogram/internal/repository"
	"photogram/internal/seed"
	"photogram/internal/server"
	"photogram/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.Env, cfg.LogLevel)

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "photogram",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		cancel()
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}

	store := repository.NewStore(backend, cfg.StorageNamespace, seed.Default(), observability.Logger)
	if err := store.Initialize(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	cancel()

	srv := server.NewServer(cfg, store)
	app := srv.NewApp()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		observability.Logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			observability.Logger.Error("server shutdown error", slog.String("error", err.Error()))
		}
		if err := srv.Shutdown(ctx); err != nil {
			observability.Logger.Error("storage shutdown error", slog.String("error", err.Error()))
		}
		if err := shutdownTracing(ctx); err != nil {
			observability.Logger.Error("tracing shutdown error", slog.String("error", err.Error()))
		}
	}()

	observability.Logger.Info("server starting",
		slog.String("port", cfg.Port),
		slog.String("storage", backend.Name()),
		slog.Bool("simulated_latency", cfg.SimulatedLatency),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
