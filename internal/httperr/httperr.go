package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError writes err using its business code, or a generic 500.
func FromError(c *gin.Context, err error) {
	code := CodeOf(err)
	if code == "" {
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	msg := messages[code]
	var be BusinessError
	if errors.As(err, &be) && be.Message != "" {
		msg = be.Message
	}
	Write(c, StatusFor(code), code, msg)
}

var messages = map[string]string{
	CodeInvalidTimeFormat:   "Invalid date or time.",
	CodeServiceNotFound:     "Service not found.",
	CodeStylistNotFound:     "Stylist not found.",
	CodeAppointmentNotFound: "Appointment not found.",
	CodeSlotUnavailable:     "The requested slot is no longer available.",
	CodeInvalidTransition:   "The appointment cannot change to the requested status.",
	CodeForbidden:           "You are not allowed to change this appointment.",
	CodeStoreUnavailable:    "Storage is temporarily unavailable, try again.",
}
