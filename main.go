package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonbook/config"
	"salonbook/cron"
	"salonbook/database"
	appointmentRepoPkg "salonbook/database/repository/appointment"
	lockRepoPkg "salonbook/database/repository/lock"
	serviceRepoPkg "salonbook/database/repository/service"
	staffRepoPkg "salonbook/database/repository/staff"
	vendorRepoPkg "salonbook/database/repository/vendor"
	"salonbook/handlers"
	"salonbook/middleware"
	"salonbook/routes"
	"salonbook/services/booking"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	vendorRepo := vendorRepoPkg.NewMongoVendorRepo()
	staffRepo := staffRepoPkg.NewMongoStaffRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	lockRepo := lockRepoPkg.NewMongoLockRepo()

	// background task client, also used as the resync retry hook.
	taskClient := cron.NewTaskClient()

	// services.
	travelEstimator := booking.NewGoogleTravelEstimator(config.AppConfig.GoogleAPIKey, utils.GetCacheClient())

	availabilitySync := &booking.DefaultAvailabilitySync{
		VendorRepo: vendorRepo,
		StaffRepo:  staffRepo,
		Enqueuer:   taskClient,
	}

	searchEngine := &booking.DefaultSlotSearchEngine{
		VendorRepo:      vendorRepo,
		StaffRepo:       staffRepo,
		ServiceRepo:     serviceRepo,
		AppointmentRepo: appointmentRepo,
		Travel:          travelEstimator,
		Granularity:     config.AppConfig.SlotGranularityMinutes,
	}

	quoteGenerator := &booking.DefaultQuoteGenerator{
		ServiceRepo: serviceRepo,
	}

	lockManager := &booking.DefaultSlotLockManager{
		Repo: lockRepo,
		TTL:  time.Duration(config.AppConfig.LockTTLMinutes) * time.Minute,
	}

	confirmation := &booking.DefaultBookingConfirmation{
		LockRepo:        lockRepo,
		AppointmentRepo: appointmentRepo,
	}

	directory := &booking.DefaultVendorDirectory{
		VendorRepo:  vendorRepo,
		StaffRepo:   staffRepo,
		ServiceRepo: serviceRepo,
	}

	// background worker: expired-lock sweep and availability resync retries.
	cron.InitWorker(lockRepo, availabilitySync)

	bookingHandler := handlers.NewBookingHandler(searchEngine, quoteGenerator, lockManager, confirmation, travelEstimator)
	vendorHandler := handlers.NewVendorHandler(directory, vendorRepo, availabilitySync)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		SearchVendorsHandler: vendorHandler.SearchVendors,
		ListServicesHandler:  vendorHandler.ListServices,
		ListStaffHandler:     vendorHandler.ListStaff,

		UpdateWorkingHoursHandler: vendorHandler.UpdateWorkingHours,
		ResyncAvailabilityHandler: vendorHandler.ResyncAvailability,

		SearchSlotsHandler: bookingHandler.SearchSlots,
		QuoteHandler:       bookingHandler.Quote,
		TravelTimeHandler:  bookingHandler.TravelTime,
		LockSlotHandler:    bookingHandler.LockSlot,
		ReleaseLockHandler: bookingHandler.ReleaseLock,
		ConfirmHandler:     bookingHandler.Confirm,
		CancelHandler:      bookingHandler.CancelAppointment,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := taskClient.Close(); err != nil {
		logger.Sugar().Warnf("main: closing task client: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
