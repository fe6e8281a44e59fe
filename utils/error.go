package utils

import (
	"errors"
	"fmt"
)

var ErrorRecordNotFound = errors.New("record not found")

// ErrorInvalidState: the document's current status does not permit the
// operation (e.g. allocating against a cancelled or fully paid document).
var ErrorInvalidState = errors.New("operation not allowed in the current status")

// ErrorOverAllocation: an allocation would exceed the target document's
// remaining balance.
var ErrorOverAllocation = errors.New("allocated amount exceeds the remaining balance")

// ErrorNumberingContention: the numbering authority could not mint a unique
// number within bounded retries. Transient; the caller may retry the whole
// operation.
var ErrorNumberingContention = errors.New("could not assign a unique number, retry the operation")

// ValidationError reports malformed or out-of-range input with enough detail
// to identify the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field string, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
