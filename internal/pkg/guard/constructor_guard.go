// Package guard lets value objects, commands and queries detect that they were
// created as zero values instead of through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field and set only by constructors.
// The zero value reports "not constructed".
//
// Example usage:
//
//	type QuoteShipmentCostCommand struct {
//	    request pricing.Request
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c QuoteShipmentCostCommand) Validate() error {
//	    return c.guard.Validate(ErrQuoteShipmentCostCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns validationError,
// or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
