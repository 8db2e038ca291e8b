// Package shipment implements the Shipment aggregate and its status lifecycle.
//
// The package includes:
//   - Status: the six lifecycle states and the explicit (status, event) transition table
//   - Event: validated lifecycle requests (assign, out for delivery, deliver,
//     cancel, return, report incident)
//   - Shipment: the aggregate root holding identity, status, courier, incident and quote
//   - Lifecycle: applies events and notifies a Notifier before returning
//
// Key business rules:
//   - New shipments start in PendingAssignment without a courier
//   - Delivered, Cancelled and Returned are terminal
//   - Reporting an incident never changes the status, terminal statuses included
//   - A failed transition leaves the shipment untouched
//   - Notification failures never undo a transition
package shipment
