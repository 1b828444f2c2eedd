package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/harborlabs/fleetdocs/internal/audit"
	"github.com/harborlabs/fleetdocs/internal/certificate"
	"github.com/harborlabs/fleetdocs/internal/config"
	"github.com/harborlabs/fleetdocs/internal/database"
	"github.com/harborlabs/fleetdocs/internal/extraction"
	"github.com/harborlabs/fleetdocs/internal/fingerprint"
	"github.com/harborlabs/fleetdocs/internal/quality"
	"github.com/harborlabs/fleetdocs/internal/queue"
	"github.com/harborlabs/fleetdocs/internal/queue/workers"
	"github.com/harborlabs/fleetdocs/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPool(context.Background(), cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	auditSvc := audit.NewService(db)
	store := storage.NewDriveWebhook(cfg.Storage.WebhookURL, cfg.Storage.AuthToken, cfg.Storage.RootFolder)
	certSvc := certificate.NewService(
		certificate.NewPgRepository(db),
		extraction.NewGateway(cfg.Extraction),
		fingerprint.NewMatcher(cfg.Fingerprint),
		quality.NewGate(cfg.Extraction.MinTextLength, cfg.Extraction.MinCriticalFields),
		store, auditSvc, nil,
	)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(queue.TypeBackfillShipInfo, asynq.HandlerFunc(workers.NewBackfillWorker(certSvc).ProcessTask))

	slog.Info("starting worker", "concurrency", 5)
	if err := srv.Run(mux); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
