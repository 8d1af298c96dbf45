package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/abhigyani/rankboard/internal/board"
	"github.com/abhigyani/rankboard/internal/platform/config"
	"github.com/abhigyani/rankboard/internal/platform/logging"
	"github.com/abhigyani/rankboard/internal/redis"
	"github.com/abhigyani/rankboard/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}

	logging.Init(cfg.LogLevel, cfg.LogFormat)

	store, cleanup := setupStore(cfg)
	defer cleanup()

	boardCfg := board.Config{
		VoteBonus:         cfg.VoteBonus,
		EligibilityWindow: cfg.EligibilityWindow,
		PageSize:          cfg.PageSize,
		GroupViewTTL:      cfg.GroupViewTTL,
	}

	clock := clockwork.NewRealClock()
	repo := board.NewArticleRepository(store, clock, boardCfg)
	ledger := board.NewVoteLedger(store, clock, boardCfg)
	groups := board.NewGroupIndex(store, boardCfg)
	listing := board.NewListingService(store, groups, boardCfg)

	srv := server.NewServer(cfg, store, repo, ledger, groups, listing)
	done := runGracefulShutdown(srv)

	slog.Info("Starting server", "port", cfg.Port, "backend", cfg.StoreBackend)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Shutdown complete")
}

func setupStore(cfg *config.Config) (board.Store, func()) {
	if cfg.StoreBackend == config.BackendMemory {
		slog.Warn("Using in-memory store, state will not survive restarts")
		return board.NewMemoryStore(clockwork.NewRealClock()), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}

	return redis.NewStore(client), func() {
		if err := client.Close(); err != nil {
			slog.Error("Failed to close redis client", "error", err)
		}
	}
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}
