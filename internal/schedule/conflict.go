package schedule

import (
	"errors"
)

// ConflictReason identifies why a scheduling request was refused. These are
// business outcomes surfaced to the caller as structured results, never
// treated as fatal errors.
type ConflictReason string

const (
	ReasonOutsideHours      ConflictReason = "OUTSIDE_HOURS"
	ReasonDoctorUnavailable ConflictReason = "DOCTOR_UNAVAILABLE"
	ReasonSlotFull          ConflictReason = "SLOT_FULL"
	ReasonTimeAlreadyBooked ConflictReason = "TIME_ALREADY_BOOKED"
	ReasonPastDate          ConflictReason = "PAST_DATE"
	ReasonAlreadyProcessed  ConflictReason = "ALREADY_PROCESSED"
	ReasonNotOwner          ConflictReason = "NOT_OWNER"
	ReasonValidationFailed  ConflictReason = "VALIDATION_FAILED"
)

// ConflictError is the typed refusal returned by the scheduling engine and
// its callers.
type ConflictError struct {
	Reason  ConflictReason
	Message string
}

func (e *ConflictError) Error() string {
	return string(e.Reason) + ": " + e.Message
}

// NewConflict builds a ConflictError with the given reason and message.
func NewConflict(reason ConflictReason, message string) *ConflictError {
	return &ConflictError{Reason: reason, Message: message}
}

// AsConflict unwraps err into a ConflictError, if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
