package handlers

import (
	"net/http"

	"salonbook/config"
	vendorRepoPkg "salonbook/database/repository/vendor"
	"salonbook/models"
	"salonbook/services/booking"

	"github.com/gin-gonic/gin"
)

// VendorHandler serves the vendor directory and schedule management
// endpoints.
type VendorHandler struct {
	Directory  booking.VendorDirectory
	VendorRepo vendorRepoPkg.Repository
	Sync       booking.AvailabilitySync
}

// NewVendorHandler wires the vendor services into HTTP handlers.
func NewVendorHandler(directory booking.VendorDirectory, vendorRepo vendorRepoPkg.Repository, sync booking.AvailabilitySync) *VendorHandler {
	return &VendorHandler{Directory: directory, VendorRepo: vendorRepo, Sync: sync}
}

// SearchVendors handles GET /api/vendors.
func (h *VendorHandler) SearchVendors(c *gin.Context) {
	var input struct {
		Lat       float64 `form:"lat"`
		Lng       float64 `form:"lng"`
		RadiusKm  float64 `form:"radiusKm"`
		Category  string  `form:"category"`
		ServiceID string  `form:"serviceId"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	vendors, err := h.Directory.SearchVendors(c.Request.Context(), booking.VendorSearchRequest{
		Location: models.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{input.Lng, input.Lat},
		},
		RadiusKm:  input.RadiusKm,
		Category:  input.Category,
		ServiceID: input.ServiceID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": vendors})
}

// ListServices handles GET /api/services.
func (h *VendorHandler) ListServices(c *gin.Context) {
	vendorID := c.Query("vendorId")
	if vendorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vendorId is required"})
		return
	}
	services, err := h.Directory.ListServices(c.Request.Context(), vendorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ListStaff handles GET /api/staff.
func (h *VendorHandler) ListStaff(c *gin.Context) {
	vendorID := c.Query("vendorId")
	if vendorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vendorId is required"})
		return
	}
	staff, err := h.Directory.ListStaff(c.Request.Context(), vendorID, c.Query("serviceId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

// UpdateWorkingHours handles PUT /api/vendors/:id/working-hours. The save and
// the staff availability cascade run in sequence; a cascade failure is
// reported but the saved hours stand, the enqueued resync repairs the drift.
func (h *VendorHandler) UpdateWorkingHours(c *gin.Context) {
	vendorID := c.Param("id")
	var input struct {
		WorkingHours models.WeeklyHours    `json:"workingHours"`
		SpecialHours []models.SpecialHours `json:"specialHours"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := booking.ValidateWorkingHours(input.WorkingHours, input.SpecialHours, config.AppConfig.MaxSpecialHours); err != nil {
		respondError(c, err)
		return
	}

	previous, err := h.VendorRepo.UpdateWorkingHours(c.Request.Context(), vendorID, input.WorkingHours, input.SpecialHours)
	if err != nil {
		if err == vendorRepoPkg.ErrNotFound {
			respondError(c, booking.NewError(booking.CodeUnknownResource, "vendor %s not found", vendorID))
			return
		}
		respondError(c, err)
		return
	}

	if err := h.Sync.Sync(c.Request.Context(), vendorID, input.WorkingHours, previous); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// ResyncAvailability handles POST /api/vendors/:id/resync.
func (h *VendorHandler) ResyncAvailability(c *gin.Context) {
	vendorID := c.Param("id")
	if err := h.Sync.Resync(c.Request.Context(), vendorID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "resynced"})
}
