package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/cache"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/config"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/handlers"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/retry"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/roster"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/store"
	"github.com/redis/go-redis/v9"
)

func main() {
	fmt.Println("=== NBA Roster API ===")

	if path := config.LoadEnvFile(); path != "" {
		fmt.Printf("✓ Loaded environment from %s\n", path)
	}

	// Load configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Open the roster store
	s, err := openStore(ctx, cfg.Store)
	if err != nil {
		fmt.Printf("❌ Failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	// Connect to Redis for averages caching (optional)
	var averagesCache cache.AveragesCache
	if cfg.Redis.URL != "" {
		redisClient, err := connectRedis(ctx, cfg.Redis.URL)
		if err != nil {
			fmt.Printf("❌ Failed to connect to Redis: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		averagesCache = cache.NewRedisCache(redisClient, cfg.Redis.AveragesTTL)
		fmt.Printf("✓ Connected to Redis (averages TTL %v)\n", cfg.Redis.AveragesTTL)
	} else {
		fmt.Println("⚠️  REDIS_URL not set, averages caching disabled")
	}

	handler := handlers.NewHandler(s, averagesCache, roster.NewBuilder())

	// Start server
	srv := handlers.NewServer(cfg.Server.APIAddr, handlers.Routes(handler, cfg.CORSOrigins))

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ Roster API listening on %s\n", cfg.Server.APIAddr)
		fmt.Println("  Endpoints:")
		for _, e := range handlers.Endpoints {
			fmt.Printf("    %s\n", e)
		}

		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("❌ Server error: %v\n", err)
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\n⚠️  Received signal: %v\n", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("⚠️  Graceful shutdown failed: %v\n", err)
			if err := srv.Close(); err != nil {
				fmt.Printf("❌ Could not stop server: %v\n", err)
			}
		}
	}

	fmt.Println("✓ Shutdown complete")
}

// openStore picks Postgres when a DSN is configured, else the CSV directory
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	if cfg.PostgresDSN != "" {
		s, err := store.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		fmt.Println("✓ Connected to Postgres")
		return s, nil
	}

	s, err := store.NewCSVStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	fmt.Printf("✓ Loaded roster CSVs from %s\n", cfg.DataDir)
	return s, nil
}

// connectRedis parses url and waits for the server to answer
func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	policy := retry.NewRetryPolicy(5, 500*time.Millisecond)
	err = policy.Execute(ctx, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
