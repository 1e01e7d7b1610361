// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery lifecycle.
//
// # Available Jobs
//
// 1. StaleDeliveryJob - Runs every minute to cancel deliveries that were
// assigned but never accepted within the configured timeout, filing a
// system issue record for each cancellation.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(cancelStaleHandler, 15*time.Minute, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep skips deliveries that lose the conditional status update to a
// concurrent acceptance; only unexpected failures are logged as errors.
package jobs
