package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/driftlab/sponge/internal/api"
	"github.com/driftlab/sponge/internal/config"
	"github.com/driftlab/sponge/internal/embedding"
	"github.com/driftlab/sponge/internal/llm"
	"github.com/driftlab/sponge/internal/service"
	"github.com/driftlab/sponge/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.Load(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	llmClient, err := llm.NewClient(config.LLMProvider(), config.LLMAPIKey())
	if err != nil {
		logger.Fatal("LLM client initialization failed",
			zap.String("provider", config.LLMProvider()), zap.Error(err))
	}
	logger.Info("LLM client initialized", zap.String("provider", config.LLMProvider()))

	stateStore := store.NewStateStore(config.StatePath(), config.HistoryDir(), logger)

	svc, err := service.NewSpongeService(stateStore, llmClient, logger)
	if err != nil {
		logger.Fatal("failed to initialize sponge", zap.Error(err))
	}
	svc.CoolingPeriod = config.CoolingPeriod()
	svc.ReflectionInterval = config.ReflectionInterval()
	svc.DecayRate = config.DecayRate()

	// Claim memory is optional; without it novelty comes straight from
	// the classifier.
	var pool *pgxpool.Pool
	if dbURL := config.DatabaseURL(); dbURL != "" {
		pool, err = pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}

		embedder, err := embedding.NewClient(config.EmbeddingProvider(), config.EmbeddingAPIKey())
		if err != nil {
			logger.Fatal("embedding client initialization failed", zap.Error(err))
		}

		claims := store.NewClaimStore(pool)
		svc.SetClaimMemory(claims, embedder)
		logger.Info("claim memory enabled")

		go claimRetentionLoop(ctx, claims, config.ClaimRetentionDays(), logger)
	}

	app := api.NewApp(svc, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

// claimRetentionLoop prunes claim embeddings past the retention window
// once a day. Novelty only needs recent claims.
func claimRetentionLoop(ctx context.Context, claims *store.ClaimStore, days int, logger *zap.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().AddDate(0, 0, -days)
			deleted, err := claims.DeleteOlderThan(ctx, cutoff)
			if err != nil {
				logger.Warn("claim retention sweep failed", zap.Error(err))
				continue
			}
			if deleted > 0 {
				logger.Info("pruned old claims", zap.Int64("deleted", deleted))
			}
		}
	}
}
