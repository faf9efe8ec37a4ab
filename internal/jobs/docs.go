// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are built on github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// RetentionJob removes idempotency ledger entries and OTP failure records
// older than the configured retention (LEDGER_RETENTION). It runs hourly by
// default.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(purgeHandler, cfg.LedgerRetention, "", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed purge is logged and retried on the next tick. An invalid retention
// or schedule fails StartAll.
package jobs
