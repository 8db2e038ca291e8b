package kafka

import (
	"time"

	"shipping/internal/core/domain/model/shipment"
)

// Message types carried in LifecycleMessage.Type.
const (
	TypeStatusChanged    = "shipment.status_changed"
	TypeCourierAssigned  = "shipment.courier_assigned"
	TypeIncidentReported = "shipment.incident_reported"
)

// LifecycleMessage is the JSON value of every record on the lifecycle topic.
// Fields that do not apply to Type are omitted.
type LifecycleMessage struct {
	Type        string    `json:"type"`
	ShipmentID  string    `json:"shipment_id"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to,omitempty"`
	Status      string    `json:"status,omitempty"`
	CourierID   string    `json:"courier_id,omitempty"`
	Description string    `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func statusChangedMessage(n shipment.StatusChanged) LifecycleMessage {
	return LifecycleMessage{
		Type:       TypeStatusChanged,
		ShipmentID: n.ShipmentID.String(),
		From:       n.From.String(),
		To:         n.To.String(),
		OccurredAt: n.OccurredAt.UTC(),
	}
}

func courierAssignedMessage(n shipment.CourierAssigned) LifecycleMessage {
	return LifecycleMessage{
		Type:       TypeCourierAssigned,
		ShipmentID: n.ShipmentID.String(),
		CourierID:  n.CourierID.String(),
		OccurredAt: n.OccurredAt.UTC(),
	}
}

func incidentReportedMessage(n shipment.IncidentReported) LifecycleMessage {
	return LifecycleMessage{
		Type:        TypeIncidentReported,
		ShipmentID:  n.ShipmentID.String(),
		Status:      n.Status.String(),
		Description: n.Description,
		OccurredAt:  n.OccurredAt.UTC(),
	}
}
