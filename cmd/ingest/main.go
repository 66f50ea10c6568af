package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/MelloMattGit/CFBPyckem/internal/app"
	"github.com/MelloMattGit/CFBPyckem/internal/config"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/logging"
	"github.com/MelloMattGit/CFBPyckem/internal/usecase"
)

const syncTimeout = 5 * time.Minute

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	db, err := app.OpenDB(context.Background(), cfg)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	ingest := app.NewIngestService(cfg, db, logger)

	if cfg.IngestCron == "" {
		if err := runSync(cfg, ingest, logger); err != nil {
			os.Exit(1)
		}
		return
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.IngestCron, func() {
		_ = runSync(cfg, ingest, logger)
	})
	if err != nil {
		logger.Error("invalid INGEST_CRON expression", "cron", cfg.IngestCron, "error", err)
		os.Exit(1)
	}

	logger.Info("ingest scheduler starting", "cron", cfg.IngestCron, "season", cfg.IngestSeason)
	scheduler.Start()

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	<-scheduler.Stop().Done()
	logger.Info("ingest scheduler stopped")
}

func runSync(cfg config.Config, ingest *usecase.IngestService, logger *logging.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	report, err := ingest.SyncSeason(ctx, cfg.IngestSeason, cfg.IngestSeasonTypes)
	for _, row := range report.SeasonTypes {
		if row.Err != nil {
			logger.Error("season type sync failed",
				"season", report.Season,
				"season_type", row.SeasonType,
				"error", row.Err,
			)
			continue
		}
		logger.Info("season type synced",
			"season", report.Season,
			"season_type", row.SeasonType,
			"fetched", row.Fetched,
			"upserted", row.Upserted,
		)
	}
	if err != nil {
		logger.Error("schedule sync failed", "season", cfg.IngestSeason, "error", err)
		return err
	}

	return nil
}
