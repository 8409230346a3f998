/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the bonus comparison engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment config, parse command-line flags
  2. Pick the settings store (Redis, SQLite, or in-memory)
  3. Hydrate the workspace from stored settings
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: $PORT or 8080)
  -db      SQLite settings path (default: $DATABASE_PATH)
           Use ":memory:" for throwaway persistence

SETTINGS STORE SELECTION:
  $REDIS_ADDR set        -> Redis
  -db / $DATABASE_PATH   -> SQLite
  neither                -> in-memory (settings vanish on exit)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the settings store
  4. Exit

EXAMPLES:
  # Run with file-backed settings
  ./server -db="./data/bonus.db"

  # Run against Redis
  REDIS_ADDR=localhost:6379 ./server

  # Run on a different port
  ./server -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - config/config.go: Environment configuration
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/warp/bonus-engine/api"
	"github.com/warp/bonus-engine/config"
	"github.com/warp/bonus-engine/currency"
	"github.com/warp/bonus-engine/settings"
	memstore "github.com/warp/bonus-engine/settings/store"
	redisstore "github.com/warp/bonus-engine/store/redis"
	"github.com/warp/bonus-engine/store/sqlite"
	"github.com/warp/bonus-engine/workspace"
)

func main() {
	cfg := config.Get()

	// Flags override environment configuration
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DatabasePath, "SQLite settings path")
	flag.Parse()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// Pick the settings store
	store, closeStore, err := openStore(cfg.RedisAddr, *dbPath)
	if err != nil {
		log.WithFields(log.Fields{"error": err}).Fatal("failed to open settings store")
	}
	defer closeStore()

	// Hydrate the session from stored settings
	ws := workspace.New(context.Background(), store)
	formatter := currency.NewFormatter(cfg.Locale, cfg.Currency)
	handler := api.NewHandler(ws, formatter)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithFields(log.Fields{"port": *port}).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithFields(log.Fields{"error": err}).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithFields(log.Fields{"error": err}).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}

// openStore picks the settings backend: Redis when an address is configured,
// SQLite when a path is, in-memory otherwise.
func openStore(redisAddr, dbPath string) (settings.Store, func(), error) {
	if redisAddr != "" {
		store := redisstore.New(redisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("redis at %s: %w", redisAddr, err)
		}
		log.WithFields(log.Fields{"addr": redisAddr}).Info("settings stored in Redis")
		return store, func() { store.Close() }, nil
	}

	if dbPath != "" {
		store, err := sqlite.New(dbPath)
		if err != nil {
			return nil, nil, err
		}
		log.WithFields(log.Fields{"path": dbPath}).Info("settings stored in SQLite")
		return store, func() { store.Close() }, nil
	}

	log.Info("no settings store configured, using in-memory settings")
	return memstore.NewMemory(), func() {}, nil
}
