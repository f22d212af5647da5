package service

import (
	"context"
	"time"

	"tradex/pkg/logger"

	"github.com/robfig/cron/v3"
)

// IngestionScheduler runs the ingestion pipeline on a cron schedule.
// Runs are fire-and-forget: errors are logged by the pipeline, never
// surfaced to a caller.
type IngestionScheduler interface {
	Start(ctx context.Context)
}

// NewIngestionScheduler creates a scheduler for the given cron expression
// (standard five-field syntax, descriptors like @hourly allowed).
func NewIngestionScheduler(ingestionSvc IngestionService, schedule string, logger *logger.Logger) (IngestionScheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	return &ingestionScheduler{
		ingestionSvc: ingestionSvc,
		schedule:     sched,
		logger:       logger,
	}, nil
}

type ingestionScheduler struct {
	ingestionSvc IngestionService
	schedule     cron.Schedule
	logger       *logger.Logger
}

// Start blocks until ctx is canceled, triggering an ingestion run at each
// scheduled time.
func (s *ingestionScheduler) Start(ctx context.Context) {
	for {
		next := s.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Ingestion scheduler stopping")
			return
		case <-timer.C:
			_ = s.ingestionSvc.Ingest(ctx)
		}
	}
}
