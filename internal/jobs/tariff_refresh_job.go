package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/tariff"

	"github.com/robfig/cron/v3"
)

// TariffSource loads the stored tariff profiles. ports.TariffRepository satisfies it.
type TariffSource interface {
	GetAll(ctx context.Context) ([]*tariff.Profile, error)
}

// CatalogReplacer swaps the profiles used for quoting. *tariff.Catalog satisfies it.
type CatalogReplacer interface {
	Replace(profiles []*tariff.Profile)
}

// TariffRefreshJob reloads the tariff catalog from storage on a cron schedule.
// A failed load keeps the previous catalog.
type TariffRefreshJob struct {
	source   TariffSource
	catalog  CatalogReplacer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewTariffRefreshJob creates the job. schedule is a six-field cron
// expression with seconds, e.g. "0 */5 * * * *".
func NewTariffRefreshJob(source TariffSource, catalog CatalogReplacer, schedule string, logger *slog.Logger) *TariffRefreshJob {
	return &TariffRefreshJob{
		source:   source,
		catalog:  catalog,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "tariff_refresh_job"),
	}
}

// Refresh loads the profiles once and replaces the catalog.
func (j *TariffRefreshJob) Refresh(ctx context.Context) error {
	profiles, err := j.source.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("loading tariffs: %w", err)
	}

	j.catalog.Replace(profiles)
	j.logger.DebugContext(ctx, "Tariff catalog refreshed", "stored_profiles", len(profiles))
	return nil
}

// Start schedules Refresh.
func (j *TariffRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Refresh(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Tariff refresh job failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tariff refresh job started", "schedule", j.schedule)
	return nil
}

// Stop stops the schedule and waits for a running refresh to finish.
func (j *TariffRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Tariff refresh job stopped")
}
