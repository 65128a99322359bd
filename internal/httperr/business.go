package httperr

import (
	"errors"
	"net/http"
)

// Error kinds returned by the scheduling core.
const (
	CodeInvalidTimeFormat   = "invalid_time_format"
	CodeServiceNotFound     = "service_not_found"
	CodeStylistNotFound     = "stylist_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeSlotUnavailable     = "slot_unavailable"
	CodeInvalidTransition   = "invalid_transition"
	CodeForbidden           = "forbidden"
	CodeStoreUnavailable    = "store_unavailable"
)

type BusinessError struct {
	Code    string
	Message string
	Cause   error
}

func (e BusinessError) Error() string {
	msg := e.Code
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e BusinessError) Unwrap() error {
	return e.Cause
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func Errorf(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

// StoreUnavailable wraps an infrastructure failure. It is the only retryable kind.
func StoreUnavailable(cause error) error {
	if cause == nil {
		return nil
	}
	var be BusinessError
	if errors.As(cause, &be) {
		return cause
	}
	return BusinessError{Code: CodeStoreUnavailable, Cause: cause}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

func Retryable(err error) bool {
	return IsBusiness(err, CodeStoreUnavailable)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case CodeInvalidTimeFormat:
		return http.StatusBadRequest
	case CodeServiceNotFound, CodeStylistNotFound, CodeAppointmentNotFound:
		return http.StatusNotFound
	case CodeSlotUnavailable, CodeInvalidTransition:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
