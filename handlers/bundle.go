package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Vendor directory endpoints.
	SearchVendorsHandler gin.HandlerFunc
	ListServicesHandler  gin.HandlerFunc
	ListStaffHandler     gin.HandlerFunc

	// Vendor schedule management endpoints.
	UpdateWorkingHoursHandler gin.HandlerFunc
	ResyncAvailabilityHandler gin.HandlerFunc

	// Booking flow endpoints.
	SearchSlotsHandler gin.HandlerFunc
	QuoteHandler       gin.HandlerFunc
	TravelTimeHandler  gin.HandlerFunc
	LockSlotHandler    gin.HandlerFunc
	ReleaseLockHandler gin.HandlerFunc
	ConfirmHandler     gin.HandlerFunc
	CancelHandler      gin.HandlerFunc
}
