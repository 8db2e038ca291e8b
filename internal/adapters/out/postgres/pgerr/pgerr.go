// Package pgerr translates PostgreSQL errors reported by github.com/lib/pq
// into the error kinds of internal/pkg/errs.
package pgerr

import (
	"errors"

	"shipping/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	codeUniqueViolation     pq.ErrorCode = "23505"
	codeCheckViolation      pq.ErrorCode = "23514"
	codeNotNullViolation    pq.ErrorCode = "23502"
	codeInvalidTextRep      pq.ErrorCode = "22P02"
	codeNumericOutOfRange   pq.ErrorCode = "22003"
	codeLockNotAvailable    pq.ErrorCode = "55P03"
	codeSerializationFailed pq.ErrorCode = "40001"
)

// ErrConcurrentUpdate is returned when the row is locked or the transaction
// could not be serialised. Callers may retry the whole unit of work.
var ErrConcurrentUpdate = errors.New("concurrent update")

// Map converts err into a domain error when its cause is known.
//
// Parameters:
//   - err: the error returned by GORM
//   - entity: the entity name used in messages, e.g. "shipment"
//   - id: the identifier of the affected row
//
// Returns nil for nil, an *errs.ObjectNotFoundError for gorm.ErrRecordNotFound,
// a classified error for known SQLSTATE codes and err unchanged otherwise.
func Map(err error, entity string, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(entity, id, err)
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case codeUniqueViolation:
		return errs.NewValueIsInvalidErrorWithCause(entity+" "+id+" already exists", err)
	case codeCheckViolation, codeNotNullViolation, codeInvalidTextRep, codeNumericOutOfRange:
		return errs.NewValueIsInvalidErrorWithCause(entity+" is invalid", err)
	case codeLockNotAvailable, codeSerializationFailed:
		return errors.Join(ErrConcurrentUpdate, err)
	default:
		return err
	}
}
