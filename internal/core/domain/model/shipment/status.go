package shipment

import (
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	PendingAssignment ──> InTransit ──> OutForDelivery ──> Delivered
//	        │                 │  │             │  │
//	        │                 │  └──> Returned <┘  │
//	        └─────────────────┴──> Cancelled <─────┘
//
// Delivered, Cancelled and Returned are terminal. Reporting an incident never
// changes the status and is accepted from every valid status.
//
// Every predicate on Status (IsTerminal, CanBeCancelled, CanBeModified,
// AvailableEvents) is derived from the single transition table below.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingAssignment is the initial status; no courier has been assigned yet.
	PendingAssignment

	// InTransit means a courier has picked the shipment up.
	InTransit

	// OutForDelivery means the courier is on the last leg to the recipient.
	OutForDelivery

	// Delivered is terminal: the recipient has the shipment.
	Delivered

	// Cancelled is terminal: the shipment was withdrawn before delivery.
	Cancelled

	// Returned is terminal: delivery failed and the shipment went back to the sender.
	Returned
)

type transitionKey struct {
	from  Status
	event EventKind
}

// getTransitions returns the status changing transitions. ReportIncident is
// not listed: it keeps the current status.
func getTransitions() map[transitionKey]Status {
	return map[transitionKey]Status{
		{PendingAssignment, Assign}:          InTransit,
		{PendingAssignment, Cancel}:          Cancelled,
		{InTransit, AdvanceToOutForDelivery}: OutForDelivery,
		{InTransit, Cancel}:                  Cancelled,
		{InTransit, MarkReturned}:            Returned,
		{OutForDelivery, MarkDelivered}:      Delivered,
		{OutForDelivery, Cancel}:             Cancelled,
		{OutForDelivery, MarkReturned}:       Returned,
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "Unknown",
		PendingAssignment: "PendingAssignment",
		InTransit:         "InTransit",
		OutForDelivery:    "OutForDelivery",
		Delivered:         "Delivered",
		Cancelled:         "Cancelled",
		Returned:          "Returned",
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{PendingAssignment, InTransit, OutForDelivery, Delivered, Cancelled, Returned}
}

// ActiveStatuses returns the non-terminal statuses.
func ActiveStatuses() []Status {
	var active []Status
	for _, s := range AllStatuses() {
		if !s.IsTerminal() {
			active = append(active, s)
		}
	}
	return active
}

// Validate checks that the status is one of the six lifecycle states.
func (s Status) Validate() error {
	if s < PendingAssignment || s > Returned {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the name of the status, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus converts a status name into a Status. Matching ignores case.
func ParseStatus(s string) (Status, error) {
	for _, status := range AllStatuses() {
		if strings.EqualFold(status.String(), strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Next returns the status that follows event.
//
// Returns:
//   - (target, nil) when the table has an entry for (s, event)
//   - (s, nil) for ReportIncident from any valid status
//   - (Unknown, *errs.InvalidTransitionError) for everything else
//
// Example:
//
//	next, err := shipment.InTransit.Next(shipment.MarkReturned)
//	// next == shipment.Returned
func (s Status) Next(event EventKind) (Status, error) {
	if event == ReportIncident && s.Validate() == nil {
		return s, nil
	}
	if target, ok := getTransitions()[transitionKey{from: s, event: event}]; ok {
		return target, nil
	}
	return Unknown, errs.NewInvalidTransitionError(s.String(), event.String())
}

// Allows reports whether event is legal from s.
func (s Status) Allows(event EventKind) bool {
	_, err := s.Next(event)
	return err == nil
}

// IsTerminal reports whether no status changing event is legal from s.
func (s Status) IsTerminal() bool {
	for key := range getTransitions() {
		if key.from == s {
			return false
		}
	}
	return true
}

// CanBeCancelled reports whether Cancel is legal from s.
func (s Status) CanBeCancelled() bool {
	return s.Allows(Cancel)
}

// CanBeModified reports whether the shipment details may still be edited,
// which holds while a courier can still be assigned.
func (s Status) CanBeModified() bool {
	return s.Allows(Assign)
}

// AvailableEvents lists the events legal from s in declaration order.
func (s Status) AvailableEvents() []EventKind {
	var events []EventKind
	for _, event := range AllEventKinds() {
		if s.Allows(event) {
			events = append(events, event)
		}
	}
	return events
}

// ValidateCanHaveCourier checks that the courier assignment is consistent with s.
//
// Business rules:
//   - PendingAssignment shipments must not have a courier
//   - InTransit, OutForDelivery, Delivered and Returned shipments must have one
//   - Cancelled shipments may have one or not, depending on when they were cancelled
func (s Status) ValidateCanHaveCourier(hasCourier bool) error {
	if err := s.Validate(); err != nil {
		return err
	}

	//nolint:exhaustive // Unknown is rejected above
	switch s {
	case PendingAssignment:
		if hasCourier {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s is not a valid status to have a courier", s),
			)
		}
	case InTransit, OutForDelivery, Delivered, Returned:
		if !hasCourier {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s is not a valid status to have no courier", s),
			)
		}
	}
	return nil
}
