package shipment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// StatusChanged is published after every status changing transition.
type StatusChanged struct {
	ShipmentID kernel.UUID
	From       Status
	To         Status
	OccurredAt time.Time
}

// CourierAssigned is published after a successful Assign.
type CourierAssigned struct {
	ShipmentID kernel.UUID
	CourierID  kernel.UUID
	OccurredAt time.Time
}

// IncidentReported is published after every incident report. Status is the
// unchanged status of the shipment at the time of the report.
type IncidentReported struct {
	ShipmentID  kernel.UUID
	Status      Status
	Description string
	OccurredAt  time.Time
}

// Notification is one lifecycle outcome recorded on a Shipment by
// Lifecycle.Transition. It is one of StatusChanged, CourierAssigned or
// IncidentReported.
type Notification interface {
	notification()
}

func (StatusChanged) notification()    {}
func (CourierAssigned) notification()  {}
func (IncidentReported) notification() {}

// Notifier receives lifecycle notifications. The returned error is a best
// effort report and never undoes the transition.
type Notifier interface {
	NotifyStatusChanged(ctx context.Context, n StatusChanged) error
	NotifyCourierAssigned(ctx context.Context, n CourierAssigned) error
	NotifyIncidentReported(ctx context.Context, n IncidentReported) error
}

// Lifecycle applies events to shipments and publishes the outcome.
//
// Transition only changes the shipment and records what happened on it.
// Publish delivers the recorded notifications and is meant to run after the
// change is stored, so observers never hear about a status that was rolled
// back.
//
// Lifecycle itself holds no per-shipment state. Concurrent transitions of the
// same shipment must be serialised by the caller, e.g. with a row lock.
type Lifecycle struct {
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewLifecycle creates a Lifecycle that publishes to notifier.
func NewLifecycle(notifier Notifier, logger *slog.Logger) (*Lifecycle, error) {
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Lifecycle{
		notifier: notifier,
		logger:   logger.With("component", "ShipmentLifecycle"),
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Transition applies event to s and records on it, in order:
//   - StatusChanged for every status changing event
//   - CourierAssigned after Assign (following StatusChanged)
//   - IncidentReported for ReportIncident
//
// The notifications stay pending on s (see Shipment.PendingNotifications)
// until Publish delivers them or Shipment.DiscardNotifications drops them.
//
// Returns:
//   - Status: the new status (unchanged for ReportIncident)
//   - error: *errs.InvalidTransitionError when event is not legal from the
//     current status, or a validation error; s is untouched in both cases
//
// Example:
//
//	event, _ := shipment.NewAssignEvent(courierID)
//	status, err := lifecycle.Transition(ctx, s, event)
//	// store s and commit, then:
//	lifecycle.Publish(ctx, s)
func (l *Lifecycle) Transition(ctx context.Context, s *Shipment, event Event) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}

	from, to, err := s.apply(event)
	if err != nil {
		return Unknown, err
	}

	occurredAt := l.now()

	//nolint:exhaustive // every other kind is a plain status change
	switch event.Kind() {
	case ReportIncident:
		s.record(IncidentReported{
			ShipmentID:  s.ID(),
			Status:      to,
			Description: event.Description(),
			OccurredAt:  occurredAt,
		})
	case Assign:
		s.record(StatusChanged{
			ShipmentID: s.ID(),
			From:       from,
			To:         to,
			OccurredAt: occurredAt,
		})
		s.record(CourierAssigned{
			ShipmentID: s.ID(),
			CourierID:  event.CourierID(),
			OccurredAt: occurredAt,
		})
	default:
		s.record(StatusChanged{
			ShipmentID: s.ID(),
			From:       from,
			To:         to,
			OccurredAt: occurredAt,
		})
	}

	l.logger.InfoContext(ctx, "shipment transitioned",
		"shipment_id", s.ID().String(),
		"event", event.Kind().String(),
		"from", from.String(),
		"to", to.String())

	return to, nil
}

// Publish delivers the notifications pending on s in the order they were
// recorded and clears them, so a second call sends nothing. Notification
// failures are logged and never returned.
func (l *Lifecycle) Publish(ctx context.Context, s *Shipment) {
	if s.Validate() != nil {
		return
	}

	for _, n := range s.takeNotifications() {
		var err error
		switch n := n.(type) {
		case StatusChanged:
			err = l.notifier.NotifyStatusChanged(ctx, n)
		case CourierAssigned:
			err = l.notifier.NotifyCourierAssigned(ctx, n)
		case IncidentReported:
			err = l.notifier.NotifyIncidentReported(ctx, n)
		}
		if err != nil {
			l.logger.WarnContext(ctx, "notification delivered with failures",
				"shipment_id", s.ID().String(),
				"notification", fmt.Sprintf("%T", n),
				"error", err)
		}
	}
}
