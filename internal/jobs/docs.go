// Package jobs provides scheduled background tasks for the dispatch core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the dispatch service.
//
// # Available Jobs
//
// 1. WorkItemResyncJob - Re-projects the work items of the current dispatch
// date for every configured company, healing mirrors that drifted after
// manual edits in the work management system.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(resyncHandler, companies, schedule, logger)
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
// The resync job takes its cron expression (with a seconds field) from the
// application configuration. The sweep is idempotent, so the schedule can be
// as aggressive as the work management system tolerates.
//
// # Error Handling
//
// A failure for one company is logged and the sweep continues with the next
// company; one broken mirror must not block the rest of the fleet.
package jobs
