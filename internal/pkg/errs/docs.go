// Package errs provides the error kinds shared by the shipping core and its adapters.
//
// The package groups errors by the way callers react to them:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: the invalid argument
//     kind, raised when a constructor receives a missing, negative or out of range parameter
//   - CapacityExceededError: a shipment does not fit the vehicle class it was priced for
//   - InvalidTransitionError: a lifecycle event is not legal from the current status
//   - ObjectNotFoundError: a repository lookup found nothing
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrCapacityExceeded) matched with errors.Is
//   - A struct type carrying the details
//   - Constructor functions, with and without cause where a cause makes sense
//   - Unwrap returning the sentinel
//
// IsInvalidArgument matches the three invalid argument errors at once, which is what the
// HTTP adapter uses to pick a status code.
package errs
