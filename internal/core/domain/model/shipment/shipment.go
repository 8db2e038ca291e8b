package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/pricing"
	"shipping/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not created through
	// NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// Shipment is the aggregate root of the lifecycle. It carries the quoted cost
// it was created with and moves through Status only via a Lifecycle.
//
// Shipment follows these invariants:
//   - Must have a valid unique identifier and a tariff name
//   - The quote total equals the sum of its breakdown
//   - A courier is set exactly when the status requires one (see Status.ValidateCanHaveCourier)
//   - Status never changes except through a legal transition
type Shipment struct {
	// id is the unique identifier for the shipment
	id kernel.UUID

	// status is the current lifecycle state
	status Status

	// courierID is the assigned courier (nil until assigned)
	courierID *kernel.UUID

	// incidentDescription holds the latest reported incident ("" when none)
	incidentDescription string

	// tariffName is the tariff the quote was priced with
	tariffName string

	// request is what was priced
	request pricing.Request

	// quote is the frozen cost
	quote pricing.Quote

	createdAt time.Time

	// notifications are recorded by Lifecycle.Transition and not yet published
	notifications []Notification

	isConstructed bool
}

// NewShipment creates a shipment in PendingAssignment with no courier.
//
// Parameters:
//   - id: unique identifier
//   - tariffName: the tariff the quote was priced with
//   - request: the priced distance, weight and volume
//   - quote: the frozen result of the calculator chain
//
// Returns:
//   - *Shipment: the created shipment
//   - error: every validation failure, joined
//
// Example:
//
//	calc, _ := pricing.Build(tariff.CarProfile(), req, nil)
//	s, err := shipment.NewShipment(kernel.NewUUID(), "car", req, pricing.NewQuote(calc))
func NewShipment(id kernel.UUID, tariffName string, request pricing.Request, quote pricing.Quote) (*Shipment, error) {
	s := &Shipment{
		status:        PendingAssignment,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setTariffName(tariffName),
		s.setRequest(request),
		s.setQuote(quote),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment rebuilds a shipment from persisted state. It validates the
// same invariants as NewShipment plus the status and courier consistency.
func RestoreShipment(
	id kernel.UUID,
	status Status,
	courierID *kernel.UUID,
	incidentDescription string,
	tariffName string,
	request pricing.Request,
	quote pricing.Quote,
	createdAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		incidentDescription: strings.TrimSpace(incidentDescription),
		createdAt:           createdAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setStatus(status, courierID),
		s.setTariffName(tariffName),
		s.setRequest(request),
		s.setQuote(quote),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by identifier.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Status returns the current lifecycle state.
func (s *Shipment) Status() Status {
	return s.status
}

// Courier returns the assigned courier, or nil.
func (s *Shipment) Courier() *kernel.UUID {
	if s.courierID == nil {
		return nil
	}
	id := *s.courierID
	return &id
}

// IncidentDescription returns the latest incident description, or "".
func (s *Shipment) IncidentDescription() string {
	return s.incidentDescription
}

// HasIncident reports whether an incident was ever reported.
func (s *Shipment) HasIncident() bool {
	return s.incidentDescription != ""
}

// TariffName returns the tariff the quote was priced with.
func (s *Shipment) TariffName() string {
	return s.tariffName
}

// Request returns the priced request.
func (s *Shipment) Request() pricing.Request {
	return s.request
}

// Quote returns a copy of the frozen quote.
func (s *Shipment) Quote() pricing.Quote {
	q := s.quote
	q.Breakdown = append([]pricing.BreakdownItem(nil), s.quote.Breakdown...)
	return q
}

// CreatedAt returns the creation time.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// PendingNotifications returns a copy of the notifications recorded by
// transitions that have not been published or discarded yet.
func (s *Shipment) PendingNotifications() []Notification {
	return append([]Notification(nil), s.notifications...)
}

// DiscardNotifications drops the pending notifications. Used when the
// transitions that produced them were not stored.
func (s *Shipment) DiscardNotifications() {
	s.notifications = nil
}

func (s *Shipment) record(n Notification) {
	s.notifications = append(s.notifications, n)
}

func (s *Shipment) takeNotifications() []Notification {
	pending := s.notifications
	s.notifications = nil
	return pending
}

// String returns a short description for logs.
func (s *Shipment) String() string {
	return fmt.Sprintf("Shipment(%s, %s)", s.id, s.status)
}

// apply performs event as a check-and-set on the current status. On failure
// the shipment is left untouched.
func (s *Shipment) apply(event Event) (from Status, to Status, err error) {
	if err = event.Validate(); err != nil {
		return Unknown, Unknown, err
	}

	from = s.status
	to, err = from.Next(event.Kind())
	if err != nil {
		return Unknown, Unknown, err
	}

	//nolint:exhaustive // status-only events carry no payload
	switch event.Kind() {
	case Assign:
		courierID := event.CourierID()
		s.courierID = &courierID
	case ReportIncident:
		s.incidentDescription = event.Description()
	}
	s.status = to

	return from, to, nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setStatus(status Status, courierID *kernel.UUID) error {
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}
	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return err
	}
	s.status = status
	if courierID != nil {
		id := *courierID
		s.courierID = &id
	}
	return nil
}

func (s *Shipment) setTariffName(name string) error {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return errs.NewValueIsRequiredError("tariff name")
	}
	s.tariffName = normalized
	return nil
}

func (s *Shipment) setRequest(request pricing.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}
	s.request = request
	return nil
}

func (s *Shipment) setQuote(quote pricing.Quote) error {
	if len(quote.Breakdown) == 0 {
		return errs.NewValueIsRequiredError("quote breakdown")
	}
	if !quote.IsConsistent() {
		return errs.NewValueIsInvalidErrorWithCause(
			"quote is invalid",
			fmt.Errorf("total %s is not the sum of its breakdown", quote.Total),
		)
	}
	s.quote = pricing.Quote{
		Total:       quote.Total,
		Breakdown:   append([]pricing.BreakdownItem(nil), quote.Breakdown...),
		Description: quote.Description,
	}
	return nil
}
