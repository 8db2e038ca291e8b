// Package jobs provides scheduled background tasks for the shipping service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// 1. TariffRefreshJob - Reloads stored tariff profiles into the catalog on a configurable schedule
// 2. ActiveShipmentsMonitorJob - Logs a per-status count of active shipments every minute
//
// # Usage
//
//	jobManager := jobs.NewJobManager(tariffRepo, catalog, "0 */5 * * * *", activeHandler, logger)
//
//	// Load the catalog before serving
//	if err := jobManager.TariffRefreshJob().Refresh(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed refresh is logged and keeps the previous catalog
// - Failed job starts stop any already running jobs
package jobs
