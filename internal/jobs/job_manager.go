package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager starts and stops every scheduled job together.
type JobManager struct {
	tariffRefreshJob *TariffRefreshJob
	monitorJob       *ActiveShipmentsMonitorJob
}

// NewJobManager creates the manager and its jobs.
func NewJobManager(
	source TariffSource,
	catalog CatalogReplacer,
	refreshSchedule string,
	lister ActiveShipmentsLister,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		tariffRefreshJob: NewTariffRefreshJob(source, catalog, refreshSchedule, logger),
		monitorJob:       NewActiveShipmentsMonitorJob(lister, logger),
	}
}

// TariffRefreshJob exposes the refresh job so that start-up can load the
// catalog once before serving.
func (jm *JobManager) TariffRefreshJob() *TariffRefreshJob {
	return jm.tariffRefreshJob
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.tariffRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start tariff refresh job: %w", err)
	}

	if err := jm.monitorJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.tariffRefreshJob.Stop()
		return fmt.Errorf("failed to start active shipments monitor job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.monitorJob.Stop()
	jm.tariffRefreshJob.Stop()
}
