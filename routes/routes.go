package routes

import (
	"net/http"
	"time"

	"salonbook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterVendorRoutes registers the vendor directory and schedule
// management endpoints.
func RegisterVendorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/vendors", hb.SearchVendorsHandler)
		api.GET("/services", hb.ListServicesHandler)
		api.GET("/staff", hb.ListStaffHandler)

		api.PUT("/vendors/:id/working-hours", hb.UpdateWorkingHoursHandler)
		api.POST("/vendors/:id/resync", hb.ResyncAvailabilityHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking flow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/slots", hb.SearchSlotsHandler)
		api.POST("/quote", hb.QuoteHandler)
		api.POST("/travel-time", hb.TravelTimeHandler)
		api.POST("/lock", hb.LockSlotHandler)
		api.DELETE("/lock/:lockId", hb.ReleaseLockHandler)
		api.POST("/confirm", hb.ConfirmHandler)
		api.POST("/appointments/:id/cancel", hb.CancelHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterVendorRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
