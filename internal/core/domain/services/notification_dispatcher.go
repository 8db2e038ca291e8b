package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

var (
	// ErrObserverAlreadyRegistered is returned when the same observer is registered twice.
	ErrObserverAlreadyRegistered = errors.New("observer is already registered")

	// ErrObserverNotRegistered is returned when unregistering an unknown observer.
	ErrObserverNotRegistered = errors.New("observer is not registered")
)

// Observer reacts to shipment lifecycle notifications. Implementations that
// perform I/O should honour ctx.
//
// Observers are compared by identity (==), so implementations should be
// pointer types. A value type holding a slice, map or func field cannot be
// compared at all: Register rejects it with a ValueIsInvalidError instead of
// letting the comparison panic.
type Observer interface {
	// Name identifies the observer in logs.
	Name() string

	OnStatusChanged(ctx context.Context, n shipment.StatusChanged) error
	OnCourierAssigned(ctx context.Context, n shipment.CourierAssigned) error
	OnIncidentReported(ctx context.Context, n shipment.IncidentReported) error
}

// NotificationDispatcher keeps an ordered list of observers and calls each of
// them for every notification.
//
// Business rules:
//   - Observers run synchronously in registration order
//   - Each notification iterates a snapshot, so Register and Unregister during
//     a notification affect only later notifications
//   - An error or panic in one observer is logged and collected; the remaining
//     observers still run
//
// NotificationDispatcher is safe for concurrent use.
//
// Example usage:
//
//	dispatcher := services.NewNotificationDispatcher(logger)
//	_ = dispatcher.Register(auditObserver)
//	_ = dispatcher.Register(kafkaObserver)
//	lifecycle, _ := shipment.NewLifecycle(dispatcher, logger)
type NotificationDispatcher struct {
	mu        sync.RWMutex
	observers []Observer
	logger    *slog.Logger
}

var _ shipment.Notifier = (*NotificationDispatcher)(nil)

// NewNotificationDispatcher creates an empty dispatcher.
func NewNotificationDispatcher(logger *slog.Logger) *NotificationDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationDispatcher{
		logger: logger.With("component", "NotificationDispatcher"),
	}
}

// Register appends observer to the end of the list.
//
// Returns:
//   - ValueIsRequiredError when observer is nil
//   - ValueIsInvalidError when observer's dynamic type is not comparable
//   - ErrObserverAlreadyRegistered when observer is already in the list
func (d *NotificationDispatcher) Register(observer Observer) error {
	if observer == nil {
		return errs.NewValueIsRequiredError("observer")
	}
	if !isComparable(observer) {
		return errs.NewValueIsInvalidErrorWithCause(
			"observer is invalid",
			fmt.Errorf("%T is not comparable, register a pointer", observer),
		)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.indexOf(observer) >= 0 {
		return fmt.Errorf("%w: %s", ErrObserverAlreadyRegistered, observer.Name())
	}
	d.observers = append(d.observers, observer)
	return nil
}

// Unregister removes observer, keeping the order of the others.
// It returns ErrObserverNotRegistered when observer is not in the list.
func (d *NotificationDispatcher) Unregister(observer Observer) error {
	if observer == nil || !isComparable(observer) {
		return ErrObserverNotRegistered
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(observer)
	if i < 0 {
		return ErrObserverNotRegistered
	}

	observers := make([]Observer, 0, len(d.observers)-1)
	observers = append(observers, d.observers[:i]...)
	d.observers = append(observers, d.observers[i+1:]...)
	return nil
}

// Observers returns a snapshot of the registered observers in order.
func (d *NotificationDispatcher) Observers() []Observer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append([]Observer(nil), d.observers...)
}

// NotifyStatusChanged calls OnStatusChanged on every observer.
// The returned error joins every observer failure; it is nil when all succeed.
func (d *NotificationDispatcher) NotifyStatusChanged(ctx context.Context, n shipment.StatusChanged) error {
	return d.dispatch(ctx, "status_changed", n.ShipmentID.String(), func(o Observer) error {
		return o.OnStatusChanged(ctx, n)
	})
}

// NotifyCourierAssigned calls OnCourierAssigned on every observer.
func (d *NotificationDispatcher) NotifyCourierAssigned(ctx context.Context, n shipment.CourierAssigned) error {
	return d.dispatch(ctx, "courier_assigned", n.ShipmentID.String(), func(o Observer) error {
		return o.OnCourierAssigned(ctx, n)
	})
}

// NotifyIncidentReported calls OnIncidentReported on every observer.
func (d *NotificationDispatcher) NotifyIncidentReported(ctx context.Context, n shipment.IncidentReported) error {
	return d.dispatch(ctx, "incident_reported", n.ShipmentID.String(), func(o Observer) error {
		return o.OnIncidentReported(ctx, n)
	})
}

func (d *NotificationDispatcher) dispatch(
	ctx context.Context,
	notification string,
	shipmentID string,
	call func(Observer) error,
) error {
	var errList []error

	for _, observer := range d.Observers() {
		if err := d.callSafely(observer, call); err != nil {
			d.logger.ErrorContext(ctx, "observer failed",
				"observer", observer.Name(),
				"notification", notification,
				"shipment_id", shipmentID,
				"error", err)
			errList = append(errList, fmt.Errorf("observer %s: %w", observer.Name(), err))
		}
	}

	return errors.Join(errList...)
}

func (d *NotificationDispatcher) callSafely(observer Observer, call func(Observer) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return call(observer)
}

func (d *NotificationDispatcher) indexOf(observer Observer) int {
	for i, o := range d.observers {
		if o == observer {
			return i
		}
	}
	return -1
}

func isComparable(observer Observer) bool {
	return reflect.TypeOf(observer).Comparable()
}
