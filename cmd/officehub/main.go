// Package main is the entry point for OfficeHub.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/samdwyer/officehub/internal/app"
	"github.com/samdwyer/officehub/internal/config"
	"github.com/samdwyer/officehub/internal/telemetry"
	"github.com/samdwyer/officehub/internal/ui"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("officehub: %v", err)
	}

	setupOTelEnv(&cfg.Telemetry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	// The terminal belongs to the UI from here on.
	logger := log.New(os.Stderr, "", log.LstdFlags)
	if f, err := os.OpenFile("officehub.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		defer f.Close()
		logger.SetOutput(f)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}

	g, err := app.New(ctx, cfg, screen, logger)
	if err != nil {
		screen.Close()
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); reportable(err) {
		log.Printf("Game error: %v", err)
	}
}

// reportable reports whether a Run error is worth logging. Cancellation from
// an interrupt is a normal exit, however deeply it is wrapped.
func reportable(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is
// configured and no endpoint was set explicitly.
func setupOTelEnv(cfg *config.Telemetry) {
	if cfg.HoneycombAPIKey == "" {
		return
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://api.honeycomb.io"
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Endpoint)
	}
	// The .env file may hold an unexpanded variable reference, so the
	// header is always built here.
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", cfg.HoneycombAPIKey, cfg.HoneycombDataset))
}
