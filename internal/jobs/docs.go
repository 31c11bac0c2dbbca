// Package jobs provides scheduled background tasks for the fulfillment
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order runtime.
//
// # Available Jobs
//
// 1. PassivationJob - Periodically sweeps order entities that have been idle
// beyond the configured threshold out of memory. Passivation loses no state:
// the next command for a passivated order recovers it from the event journal.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the order runtime as passivator
//	jobManager := jobs.NewJobManager(orderRuntime, 30*time.Minute, "0 * * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
package jobs
