package handlers

import (
	"net/http"

	"salonbook/services/booking"

	"github.com/gin-gonic/gin"
)

// respondError maps a booking error code to an HTTP status. Errors without a
// booking code are internal.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch booking.ErrorCode(err) {
	case booking.CodeValidation:
		status = http.StatusBadRequest
	case booking.CodeUnknownResource:
		status = http.StatusNotFound
	case booking.CodeSlotUnavailable, booking.CodeLockInvalid:
		status = http.StatusConflict
	case booking.CodeSyncFailure, booking.CodeRoutingUnavailable:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": booking.ErrorCode(err)})
}
