// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the marketplace service.
//
// # Available Jobs
//
// 1. EscrowReconciliationJob - Periodically sweeps orders stuck in
// AWAITING_ESCROW with both deposits funded and moves them to
// READY_FOR_PICKUP.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, cronSpec, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation schedule comes from configuration (a six-field cron
// expression with seconds, e.g. "*/30 * * * * *"). The sweep is a safety
// net for the normal in-transaction escrow gate, so a slow schedule is
// acceptable.
//
// # Error Handling
//
// Reconciliation failures are logged and retried on the next tick; the job
// never stops the scheduler.
package jobs
