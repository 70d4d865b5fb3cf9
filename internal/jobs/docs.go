// Package jobs provides scheduled background tasks for the checkout service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// SessionSweepJob deletes checkout sessions that have not changed for
// SESSION_TTL. Sessions with a submission in flight are never deleted; one
// left Submitting past the submit lease is released to Failed instead.
//
// # Usage
//
//	sweep, err := jobs.NewSessionSweepJob(handler, 24*time.Hour, 90*time.Second, "@every 10m", m, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	jobManager := jobs.NewJobManager(sweep)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are standard five-field cron expressions or descriptors such as
// "@every 10m" and "@hourly".
package jobs
