// Package audit writes an append-only audit trail of shipment lifecycle
// notifications through zap.
package audit

import (
	"context"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Trail is a dispatcher observer. It never fails: a write error of the
// underlying sink is zap's concern.
type Trail struct {
	logger *zap.Logger
}

var _ services.Observer = (*Trail)(nil)

// NewTrail wraps logger. A nil logger gives a no-op trail.
func NewTrail(logger *zap.Logger) *Trail {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Trail{logger: logger.Named("audit")}
}

// NewProductionLogger builds the JSON logger used for the trail, with ISO8601
// timestamps under "timestamp".
func NewProductionLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

// Name identifies the observer in dispatcher logs.
func (t *Trail) Name() string {
	return "audit-trail"
}

func (t *Trail) OnStatusChanged(_ context.Context, n shipment.StatusChanged) error {
	t.logger.Info("shipment status changed",
		zap.Stringer("shipment_id", n.ShipmentID),
		zap.Stringer("from", n.From),
		zap.Stringer("to", n.To),
		zap.Time("occurred_at", n.OccurredAt),
	)
	return nil
}

func (t *Trail) OnCourierAssigned(_ context.Context, n shipment.CourierAssigned) error {
	t.logger.Info("courier assigned",
		zap.Stringer("shipment_id", n.ShipmentID),
		zap.Stringer("courier_id", n.CourierID),
		zap.Time("occurred_at", n.OccurredAt),
	)
	return nil
}

func (t *Trail) OnIncidentReported(_ context.Context, n shipment.IncidentReported) error {
	t.logger.Warn("incident reported",
		zap.Stringer("shipment_id", n.ShipmentID),
		zap.Stringer("status", n.Status),
		zap.String("description", n.Description),
		zap.Time("occurred_at", n.OccurredAt),
	)
	return nil
}

// Sync flushes buffered entries.
func (t *Trail) Sync() error {
	return t.logger.Sync()
}
