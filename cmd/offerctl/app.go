package main

import (
	"context"
	"fmt"

	"github.com/shahrzads/ml-application-test-master/internal/events"
	"github.com/shahrzads/ml-application-test-master/internal/repository"
	"github.com/shahrzads/ml-application-test-master/internal/service"
	"github.com/shahrzads/ml-application-test-master/pkg/config"
	"github.com/shahrzads/ml-application-test-master/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// app is the wired pipeline plus the resources to release on exit.
type app struct {
	offers  *service.OfferService
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{}

	var db *pgxpool.Pool
	if cfg.NeedsDatabase() {
		pool, err := postgres.NewPool(ctx, cfg.Database.URL(), log)
		if err != nil {
			return nil, err
		}
		db = pool
		a.closers = append(a.closers, pool.Close)
	}

	var source service.TransactionSource
	switch cfg.Source.Kind {
	case config.SourcePostgres:
		source = repository.NewTransactionRepository(db, log)
	default:
		source = repository.NewCSVTransactionRepository(cfg.Source.CSVPath, log)
	}

	var reports service.ReportStore
	switch cfg.Report.Sink {
	case config.SinkPostgres:
		reports = repository.NewReportRepository(db, log)
	default:
		reports = repository.NewXLSXReportRepository(cfg.Report.XLSXPath, cfg.Report.XLSXSheet, log)
	}

	var publisher service.EventPublisher = events.NewNoopPublisher()
	if cfg.NATS.URL != "" {
		bus, err := events.ConnectNATS(cfg.NATS.URL, cfg.NATS.Subject, log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to set up event publisher: %w", err)
		}
		publisher = bus
		a.closers = append(a.closers, func() {
			if err := bus.Close(); err != nil {
				log.Warn("Failed to drain NATS connection", zap.Error(err))
			}
		})
	}

	features := service.NewFeatureService(cfg.Features.Window, log)
	scorer := service.NewScoringService(&cfg.Scoring, log)
	a.offers = service.NewOfferService(source, features, scorer, reports, publisher, log)

	return a, nil
}
