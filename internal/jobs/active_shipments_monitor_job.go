package jobs

import (
	"context"
	"log/slog"

	"shipping/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// ActiveShipmentsLister is satisfied by queries.GetActiveShipmentsQueryHandler.
type ActiveShipmentsLister interface {
	Handle(ctx context.Context, query queries.GetActiveShipmentsQuery) ([]queries.GetActiveShipmentsQueryResponse, error)
}

// ActiveShipmentsMonitorJob logs how many shipments are in each active status
// and how many carry an incident.
type ActiveShipmentsMonitorJob struct {
	lister ActiveShipmentsLister
	cron   *cron.Cron
	logger *slog.Logger
}

// NewActiveShipmentsMonitorJob creates the job.
func NewActiveShipmentsMonitorJob(lister ActiveShipmentsLister, logger *slog.Logger) *ActiveShipmentsMonitorJob {
	return &ActiveShipmentsMonitorJob{
		lister: lister,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "active_shipments_monitor_job"),
	}
}

// Report runs the query once and logs the summary.
func (j *ActiveShipmentsMonitorJob) Report(ctx context.Context) error {
	shipments, err := j.lister.Handle(ctx, queries.NewGetActiveShipmentsQuery())
	if err != nil {
		return err
	}

	byStatus := make(map[string]int)
	incidents := 0
	for _, s := range shipments {
		byStatus[s.Status.String()]++
		if s.HasIncident {
			incidents++
		}
	}

	j.logger.InfoContext(ctx, "Active shipments",
		"total", len(shipments),
		"by_status", byStatus,
		"with_incident", incidents,
	)
	return nil
}

// Start runs Report every minute.
func (j *ActiveShipmentsMonitorJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.Report(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Active shipments monitor job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Active shipments monitor job started (running every minute)")
	return nil
}

// Stop stops the schedule.
func (j *ActiveShipmentsMonitorJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Active shipments monitor job stopped")
}
