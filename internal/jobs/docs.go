// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order fulfillment.
//
// # Available Jobs
//
// 1. NotificationRelayJob - Runs every second to publish staged outbox notifications to the messaging topic
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(publishNotificationsHandler, logger)
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
// The relay uses the cron expression "* * * * * *" which means it runs every
// second, keeping the delay between a committed status change and its
// notification small.
//
// # Error Handling
//
// - Relay failures are logged and retried on the next tick; rows stay
//   unpublished until a publish succeeds, so delivery is at-least-once
// - Failed job starts stop any already running jobs
package jobs
