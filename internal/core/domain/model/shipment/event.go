package shipment

import (
	"errors"
	"fmt"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// MaxIncidentDescriptionLength bounds the free text of an incident report.
const MaxIncidentDescriptionLength = 1000

// ErrEventIsNotConstructed is returned when an Event was not created through one of its constructors.
var ErrEventIsNotConstructed = errors.New("Event must be created via its constructor")

// EventKind names a lifecycle request.
type EventKind int

const (
	// UnknownEvent is the zero value and is never legal.
	UnknownEvent EventKind = iota

	// Assign hands the shipment to a courier.
	Assign

	// AdvanceToOutForDelivery starts the last leg of the delivery.
	AdvanceToOutForDelivery

	// MarkDelivered records a successful delivery.
	MarkDelivered

	// Cancel withdraws the shipment.
	Cancel

	// MarkReturned records a failed delivery that went back to the sender.
	MarkReturned

	// ReportIncident attaches an incident description without changing the status.
	ReportIncident
)

func getEventKindStrings() map[EventKind]string {
	return map[EventKind]string{
		UnknownEvent:            "unknown",
		Assign:                  "assign",
		AdvanceToOutForDelivery: "out_for_delivery",
		MarkDelivered:           "deliver",
		Cancel:                  "cancel",
		MarkReturned:            "return",
		ReportIncident:          "report_incident",
	}
}

// AllEventKinds returns every valid event kind in declaration order.
func AllEventKinds() []EventKind {
	return []EventKind{Assign, AdvanceToOutForDelivery, MarkDelivered, Cancel, MarkReturned, ReportIncident}
}

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	if str, ok := getEventKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the kind is one of the six lifecycle events.
func (k EventKind) Validate() error {
	if k < Assign || k > ReportIncident {
		return errs.NewValueIsInvalidErrorWithCause("event is invalid", fmt.Errorf("%d is not a valid event", k))
	}
	return nil
}

// ParseEventKind converts a wire name such as "assign" or "report_incident" into an EventKind.
func ParseEventKind(s string) (EventKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, kind := range AllEventKinds() {
		if kind.String() == name {
			return kind, nil
		}
	}
	return UnknownEvent, errs.NewValueIsInvalidErrorWithCause("event is invalid", fmt.Errorf("%q is not a valid event", s))
}

// Event is a validated lifecycle request. Assign carries a courier id and
// ReportIncident carries a description; the other kinds carry nothing.
type Event struct {
	kind        EventKind
	courierID   kernel.UUID
	description string
	guard       guard.ConstructorGuard
}

// NewEvent builds an event of any kind from raw input, as received by the
// application layer.
//
// Parameters:
//   - kind: the requested event
//   - courierID: required for Assign, ignored otherwise
//   - description: required for ReportIncident, ignored otherwise
func NewEvent(kind EventKind, courierID *kernel.UUID, description string) (Event, error) {
	if err := kind.Validate(); err != nil {
		return Event{}, err
	}

	//nolint:exhaustive // UnknownEvent is rejected above
	switch kind {
	case Assign:
		if courierID == nil {
			return Event{}, errs.NewValueIsRequiredError("courier id")
		}
		return NewAssignEvent(*courierID)
	case ReportIncident:
		return NewIncidentEvent(description)
	default:
		return Event{kind: kind, guard: guard.NewConstructorGuard()}, nil
	}
}

// NewAssignEvent requests assignment of courierID.
func NewAssignEvent(courierID kernel.UUID) (Event, error) {
	if err := courierID.Validate(); err != nil {
		return Event{}, err
	}
	return Event{kind: Assign, courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

// NewIncidentEvent requests an incident report. The description is trimmed,
// must not be empty and must not exceed MaxIncidentDescriptionLength runes.
func NewIncidentEvent(description string) (Event, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return Event{}, errs.NewValueIsRequiredError("incident description")
	}
	if n := len([]rune(trimmed)); n > MaxIncidentDescriptionLength {
		return Event{}, errs.NewValueIsOutOfRangeError("incident description length", n, 1, MaxIncidentDescriptionLength)
	}
	return Event{kind: ReportIncident, description: trimmed, guard: guard.NewConstructorGuard()}, nil
}

// AdvanceToOutForDeliveryEvent requests the last delivery leg.
func AdvanceToOutForDeliveryEvent() Event {
	return Event{kind: AdvanceToOutForDelivery, guard: guard.NewConstructorGuard()}
}

// MarkDeliveredEvent requests completion of the delivery.
func MarkDeliveredEvent() Event {
	return Event{kind: MarkDelivered, guard: guard.NewConstructorGuard()}
}

// CancelEvent requests cancellation.
func CancelEvent() Event {
	return Event{kind: Cancel, guard: guard.NewConstructorGuard()}
}

// MarkReturnedEvent requests return to the sender.
func MarkReturnedEvent() Event {
	return Event{kind: MarkReturned, guard: guard.NewConstructorGuard()}
}

// Validate ensures the event was created through a constructor.
func (e Event) Validate() error {
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// Kind returns the event kind.
func (e Event) Kind() EventKind {
	return e.kind
}

// CourierID returns the courier of an Assign event.
func (e Event) CourierID() kernel.UUID {
	return e.courierID
}

// Description returns the text of a ReportIncident event.
func (e Event) Description() string {
	return e.description
}

func (e Event) String() string {
	//nolint:exhaustive // other kinds carry no payload
	switch e.kind {
	case Assign:
		return fmt.Sprintf("%s(%s)", e.kind, e.courierID)
	case ReportIncident:
		return fmt.Sprintf("%s(%q)", e.kind, e.description)
	default:
		return e.kind.String()
	}
}
