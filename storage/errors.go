package storage

import (
	"errors"
	"fmt"
)

var ErrRegistrationNotFound = errors.New("registration not found in storage")
var ErrLockNotFound = errors.New("export lock not found in storage")
var ErrLockAlreadyExists = errors.New("export lock already exists")

type ConflictKind string

const (
	ConflictPhone   ConflictKind = "PHONE_DUPLICATE"
	ConflictRoll    ConflictKind = "ROLL_DUPLICATE"
	ConflictReceipt ConflictKind = "RECEIPT_DUPLICATE"
	ConflictGeneric ConflictKind = "GENERIC"
)

// ConflictError reports a write-time uniqueness violation, classified by
// which field collided so callers can build an actionable message.
type ConflictError struct {
	Kind  ConflictKind
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("uniqueness conflict (%s): %s", e.Kind, e.Value)
}

// AsConflict unwraps err into a *ConflictError if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
