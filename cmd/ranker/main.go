package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/skillsmarket/skillsmarket/internal/cache"
	"github.com/skillsmarket/skillsmarket/internal/catalog"
	"github.com/skillsmarket/skillsmarket/internal/counters"
	"github.com/skillsmarket/skillsmarket/internal/ranking"
	"github.com/skillsmarket/skillsmarket/pkg/config"
	"github.com/skillsmarket/skillsmarket/pkg/logging"
	"github.com/skillsmarket/skillsmarket/pkg/telemetry"
)

func main() {
	job := flag.String("job", "all", "which job to run: trending, featured or all")
	every := flag.Duration("every", 0, "rerun interval; 0 runs once and exits")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Skills Market Ranker", zap.String("job", *job))

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	redisCache, err := cache.New(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	loader := catalog.NewLoader(cfg.Content.Dir)
	store := counters.NewStore(redisCache)

	trending := ranking.NewTrendingRanker(loader, store, cfg)
	featured := ranking.NewFeaturedScorer(loader, store, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel on interrupt so an interval run can stop between iterations
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Shutting down ranker...")
		cancel()
	}()

	runOnce := func() error {
		if *job == "trending" || *job == "all" {
			result, err := trending.Run(ctx)
			if err != nil {
				return fmt.Errorf("trending job failed: %w", err)
			}
			logger.Info("Trending job finished", zap.Int("trending", result.Trending))
		}
		if *job == "featured" || *job == "all" {
			result, err := featured.Run(ctx)
			if err != nil {
				return fmt.Errorf("featured job failed: %w", err)
			}
			logger.Info("Featured job finished",
				zap.Int("permanent", result.Permanent),
				zap.Int("rotating", result.Rotating))
		}
		return nil
	}

	if *every <= 0 {
		if err := runOnce(); err != nil {
			logger.Fatal("Job run failed", zap.Error(err))
		}
		logger.Info("Ranker exited")
		return
	}

	// Interval mode: rerun until cancelled. Each run fully overwrites the
	// published lists, so a failed iteration just leaves the previous ones.
	for {
		if err := runOnce(); err != nil {
			logger.Error("Job run failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			logger.Info("Ranker exited")
			return
		case <-time.After(*every):
		}
	}
}
