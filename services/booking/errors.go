package booking

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the scheduling core.
const (
	CodeSlotUnavailable    = "slot_unavailable"    // lock conflict, recoverable by re-search
	CodeLockInvalid        = "lock_invalid"        // missing/expired/foreign lock at confirmation
	CodeUnknownResource    = "unknown_resource"    // bad vendor/service/staff id
	CodeRoutingUnavailable = "routing_unavailable" // routing collaborator failure, recovered via fallback
	CodeSyncFailure        = "sync_failure"        // availability cascade bulk write error
	CodeValidation         = "validation"          // malformed request input
)

// Error is the typed error returned by every booking component.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a booking error with the given code.
func NewError(code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the booking error code, or "" for foreign errors.
func ErrorCode(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
