package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/apiclient"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/config"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/session"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/view"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/viewserver"
)

func main() {
	fmt.Println("🚀 Starting Roster View...")

	if path := config.LoadEnvFile(); path != "" {
		fmt.Printf("✓ Loaded environment from %s\n", path)
	}

	// Load config
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renderer, err := view.NewRenderer()
	if err != nil {
		fmt.Printf("❌ Failed to load templates: %v\n", err)
		os.Exit(1)
	}

	client := apiclient.New(cfg.View.APIBaseURL)
	fmt.Printf("✓ Reading roster from %s\n", cfg.View.APIBaseURL)

	// Create hub
	h := session.NewHub()
	go h.Run(ctx)

	// Create HTTP handler (pass context for WebSocket lifecycle)
	handler := viewserver.NewHandler(ctx, h, client, renderer, cfg.CORSOrigins)

	// WebSocket connections are long-lived, so no read/write timeouts
	server := &http.Server{
		Addr:              cfg.Server.ViewAddr,
		Handler:           viewserver.Routes(handler),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		fmt.Printf("✓ Roster view listening on %s\n", cfg.Server.ViewAddr)
		fmt.Println("  Endpoints:")
		for _, e := range viewserver.Endpoints {
			fmt.Printf("    %s\n", e)
		}
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("❌ Server error: %v\n", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\n🛑 Shutting down...")

	// Cancel context to stop all sessions
	cancel()

	// Graceful shutdown of HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("⚠️  Server shutdown error: %v\n", err)
	}

	fmt.Println("✓ Shutdown complete")
}
