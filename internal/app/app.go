// Package app wires repositories, services and background workers from a Config.
package app

import (
	"context"

	"github.com/vytor/flashreel/internal/api"
	"github.com/vytor/flashreel/internal/clock"
	"github.com/vytor/flashreel/internal/config"
	"github.com/vytor/flashreel/internal/db"
	"github.com/vytor/flashreel/internal/jobs"
	"github.com/vytor/flashreel/internal/repository/sqlite"
	"github.com/vytor/flashreel/internal/services"
	"github.com/vytor/flashreel/internal/worker"
)

// App holds the wired services of one process.
type App struct {
	DB         *db.DB
	ImportPool *worker.Pool

	Cards     services.CardService
	Hierarchy services.HierarchyService
	Reviews   services.ReviewService
	Stats     services.StatsService
	Imports   services.ImportService
	Calendar  clock.Calendar
	cfg       config.Config
}

// New builds the services on top of an open database.
func New(cfg config.Config, database *db.DB, clk clock.Clock) *App {
	calendar := clock.NewCalendar(cfg.Location())
	opts := services.Options{
		Clock:            clk,
		Calendar:         calendar,
		StoreTimeout:     cfg.StoreTimeout,
		DueLimit:         cfg.DueLimit,
		HeatmapDays:      cfg.HeatmapDays,
		DefaultHierarchy: cfg.DefaultHierarchy,
	}

	cardRepo := sqlite.NewCardRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)
	streakRepo := sqlite.NewStreakRepository(database.DB)
	tx := sqlite.NewTxManager(database.DB)

	hierarchy := services.NewHierarchyService(sqlite.NewHierarchyRepository(database.DB), tx, opts)
	cards := services.NewCardService(cardRepo, hierarchy, opts)

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	queue := jobs.NewWorkerQueue(importPool, cards, cfg.ImportWorkerCount)

	return &App{
		DB:         database,
		ImportPool: importPool,
		Cards:      cards,
		Hierarchy:  hierarchy,
		Reviews:    services.NewReviewService(cardRepo, progressRepo, reviewRepo, streakRepo, tx, opts),
		Stats:      services.NewStatsService(cardRepo, progressRepo, reviewRepo, streakRepo, opts),
		Imports:    services.NewImportService(queue),
		Calendar:   calendar,
		cfg:        cfg,
	}
}

// Start runs the background workers until ctx is cancelled or Stop is called.
func (a *App) Start(ctx context.Context) {
	a.ImportPool.Start(ctx)
}

// Stop drains the import queue.
func (a *App) Stop() {
	a.ImportPool.Stop()
}

// Server returns the HTTP server for the wired services.
func (a *App) Server() *api.Server {
	return &api.Server{
		Cards:     a.Cards,
		Hierarchy: a.Hierarchy,
		Reviews:   a.Reviews,
		Stats:     a.Stats,
		Imports:   a.Imports,
		Health:    a.DB,
		Limiter:   api.NewUserLimiter(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst),
	}
}
