// Package services provides domain services that orchestrate behaviour spanning
// more than one aggregate or collaborator.
//
// The package includes:
//   - NotificationDispatcher: fans lifecycle notifications out to registered observers
//
// Key business rules:
//   - Observers are called synchronously in registration order
//   - One failing or panicking observer never prevents the others from running
//   - Notification results never change the outcome of a lifecycle transition
package services
