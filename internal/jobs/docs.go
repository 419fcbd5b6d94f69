// Package jobs provides scheduled background tasks for the shipment tracking service.
//
// Jobs are built on github.com/robfig/cron/v3 and only ever read state: every
// mutation of packages and shipments goes through the command handlers.
//
// # Available Jobs
//
// 1. OverdueShipmentsJob - lists in-transit shipments past their estimated delivery,
// logs each one and exports the count as a gauge
//
// # Usage
//
//	overdue := jobs.NewOverdueShipmentsJob(overdueQueryHandler, metrics, clock.System{}, "@every 5m", logger)
//	jobManager := jobs.NewJobManager(overdue)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules accept standard five field cron expressions, an optional leading
// seconds field, and descriptors such as "@every 1m" or "@hourly".
package jobs
