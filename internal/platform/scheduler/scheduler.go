package scheduler

import (
	"context"
	"log/slog"

	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the recurring background jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New builds a scheduler with the end-of-day flock snapshot registered on
// the given cron spec.
func New(spec string, flockSvc portssvc.FlockSvc, logger *slog.Logger) (*Scheduler, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		logger.Info("Running end-of-day flock snapshot")
		if err := flockSvc.SnapshotToday(context.Background()); err != nil {
			logger.Error("End-of-day flock snapshot failed", slog.String("error", err.Error()))
			return
		}
		logger.Info("End-of-day flock snapshot completed")
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}
