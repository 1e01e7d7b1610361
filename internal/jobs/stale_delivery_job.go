package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleDeliveryJob manages the scheduled cleanup of deliveries that were
// assigned but never accepted. Runs every minute and cancels anything
// stuck in Assigned beyond the configured timeout.
type StaleDeliveryJob struct {
	handler   commands.CancelStaleDeliveriesCommandHandler
	olderThan time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleDeliveryJob creates a new job for cancelling stale deliveries.
// olderThan controls how long a delivery may wait for acceptance.
func NewStaleDeliveryJob(
	handler commands.CancelStaleDeliveriesCommandHandler,
	olderThan time.Duration,
	logger *slog.Logger,
) *StaleDeliveryJob {
	return &StaleDeliveryJob{
		handler:   handler,
		olderThan: olderThan,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stale_delivery_job"),
	}
}

// Start begins the stale delivery sweep, running at the top of every minute.
func (j *StaleDeliveryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCancelStaleDeliveriesCommand(j.olderThan)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale delivery sweep misconfigured", "error", cmdErr)
			return
		}

		cancelled, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale delivery sweep failed", "error", handleErr)
			return
		}

		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Cancelled stale deliveries", "count", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale delivery job started (running every minute)")
	return nil
}

// Stop stops the stale delivery job.
func (j *StaleDeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale delivery job stopped")
}
