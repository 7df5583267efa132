package handlers

import (
	"net/http"

	"salonbook/models"
	"salonbook/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the customer booking flow: slot search, quoting,
// travel estimates, locking and confirmation.
type BookingHandler struct {
	SearchEngine booking.SlotSearchEngine
	QuoteGen     booking.QuoteGenerator
	LockManager  booking.SlotLockManager
	Confirmation booking.BookingConfirmation
	Travel       booking.TravelEstimator
}

// NewBookingHandler wires the booking services into HTTP handlers.
func NewBookingHandler(search booking.SlotSearchEngine, quote booking.QuoteGenerator, locks booking.SlotLockManager, confirm booking.BookingConfirmation, travel booking.TravelEstimator) *BookingHandler {
	return &BookingHandler{
		SearchEngine: search,
		QuoteGen:     quote,
		LockManager:  locks,
		Confirmation: confirm,
		Travel:       travel,
	}
}

// staffSelectorFrom interprets the wire staffId: empty or "any" means any
// eligible professional.
func staffSelectorFrom(staffID string) models.StaffSelector {
	if staffID == "" || staffID == "any" {
		return models.AnyStaff()
	}
	return models.SpecificStaff(staffID)
}

// SearchSlots handles GET /api/slots.
func (h *BookingHandler) SearchSlots(c *gin.Context) {
	var input struct {
		VendorID      string           `json:"vendorId" form:"vendorId" binding:"required"`
		StaffID       string           `json:"staffId" form:"staffId"`
		ServiceIDs    []string         `json:"serviceIds" form:"serviceIds" binding:"required"`
		Date          string           `json:"date" form:"date" binding:"required"`
		IsHomeService bool             `json:"isHomeService" form:"isHomeService"`
		Location      *models.GeoPoint `json:"location"`
		Lat           *float64         `json:"-" form:"lat"`
		Lng           *float64         `json:"-" form:"lng"`
		BufferBefore  int              `json:"bufferBefore" form:"bufferBefore"`
		BufferAfter   int              `json:"bufferAfter" form:"bufferAfter"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.Location == nil && input.Lat != nil && input.Lng != nil {
		input.Location = &models.GeoPoint{Type: "Point", Coordinates: []float64{*input.Lng, *input.Lat}}
	}

	slots, err := h.SearchEngine.Search(c.Request.Context(), booking.SearchRequest{
		VendorID:         input.VendorID,
		Staff:            staffSelectorFrom(input.StaffID),
		ServiceIDs:       input.ServiceIDs,
		Date:             input.Date,
		CustomerLocation: input.Location,
		IsHomeService:    input.IsHomeService,
		BufferBefore:     input.BufferBefore,
		BufferAfter:      input.BufferAfter,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// Quote handles POST /api/quote.
func (h *BookingHandler) Quote(c *gin.Context) {
	var input struct {
		ServiceIDs       []string `json:"serviceIds" binding:"required"`
		StaffID          string   `json:"staffId"`
		IsHomeService    bool     `json:"isHomeService"`
		IsWeddingService bool     `json:"isWeddingService"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	quote, err := h.QuoteGen.Quote(c.Request.Context(), booking.QuoteRequest{
		ServiceIDs:       input.ServiceIDs,
		Staff:            staffSelectorFrom(input.StaffID),
		IsHomeService:    input.IsHomeService,
		IsWeddingService: input.IsWeddingService,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// TravelTime handles POST /api/travel-time.
func (h *BookingHandler) TravelTime(c *gin.Context) {
	var input struct {
		Origin      models.GeoPoint `json:"origin" binding:"required"`
		Destination models.GeoPoint `json:"destination" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	estimate := h.Travel.Estimate(c.Request.Context(), input.Origin, input.Destination)
	c.JSON(http.StatusOK, estimate)
}

// LockSlot handles POST /api/lock.
func (h *BookingHandler) LockSlot(c *gin.Context) {
	var input struct {
		VendorID        string   `json:"vendorId" binding:"required"`
		StaffID         string   `json:"staffId" binding:"required"`
		Date            string   `json:"date" binding:"required"`
		Start           int      `json:"start"`
		End             int      `json:"end" binding:"required"`
		HolderID        string   `json:"holderId" binding:"required"`
		ServiceIDs      []string `json:"serviceIds" binding:"required"`
		Mode            string   `json:"mode"`
		TotalPrice      float64  `json:"totalPrice"`
		DurationMinutes int      `json:"durationMinutes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.Mode == "" {
		input.Mode = models.ModeInSalon
	}

	lock, err := h.LockManager.Lock(c.Request.Context(), booking.LockRequest{
		VendorID:        input.VendorID,
		StaffID:         input.StaffID,
		Date:            input.Date,
		Start:           input.Start,
		End:             input.End,
		HolderID:        input.HolderID,
		ServiceIDs:      input.ServiceIDs,
		Mode:            input.Mode,
		TotalPrice:      input.TotalPrice,
		DurationMinutes: input.DurationMinutes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lockId":    lock.ID,
		"expiresAt": lock.ExpiresAt,
	})
}

// ReleaseLock handles DELETE /api/lock/:lockId.
func (h *BookingHandler) ReleaseLock(c *gin.Context) {
	lockID := c.Param("lockId")
	holderID := c.Query("holderId")
	if err := h.LockManager.Release(c.Request.Context(), lockID, holderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "released"})
}

// Confirm handles POST /api/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	var input struct {
		LockID      string `json:"lockId" binding:"required"`
		HolderID    string `json:"holderId" binding:"required"`
		CustomerID  string `json:"customerId"`
		PaymentMode string `json:"paymentMode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appointment, err := h.Confirmation.Confirm(c.Request.Context(), booking.ConfirmRequest{
		LockID:      input.LockID,
		HolderID:    input.HolderID,
		CustomerID:  input.CustomerID,
		PaymentMode: input.PaymentMode,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// CancelAppointment handles POST /api/appointments/:id/cancel.
func (h *BookingHandler) CancelAppointment(c *gin.Context) {
	var input struct {
		CustomerID string `json:"customerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Confirmation.Cancel(c.Request.Context(), c.Param("id"), input.CustomerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
