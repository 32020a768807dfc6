package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonflow/config"
	"salonflow/database"
	appointmentRepo "salonflow/database/repository/appointment"
	clientRepo "salonflow/database/repository/client"
	providerRepo "salonflow/database/repository/provider"
	workinghoursRepo "salonflow/database/repository/workinghours"
	"salonflow/handlers"
	"salonflow/middleware"
	"salonflow/routes"
	"salonflow/services/booking"
	"salonflow/services/notification"
	"salonflow/services/provider"
	"salonflow/services/scheduling"
	"salonflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	cliRepo := clientRepo.NewMongoClientRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	whRepo := workinghoursRepo.NewMongoWorkingHoursRepo()

	// services.
	clock := scheduling.RealClock{}

	notificationService, err := notification.NewDefaultNotificationService(provRepo, cliRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	slotService := &scheduling.DefaultSlotService{
		WorkingHours: whRepo,
		Appointments: apptRepo,
		Cache:        utils.GetCacheClient(),
		Clock:        clock,
		SlotDuration: time.Duration(config.AppConfig.SlotDurationMinutes) * time.Minute,
		HorizonDays:  config.AppConfig.BookingHorizonDays,
		CacheTTL:     2 * time.Minute,
	}

	bookingEngine := &booking.DefaultBookingEngine{
		Appointments:       apptRepo,
		Providers:          provRepo,
		Clients:            cliRepo,
		Slots:              slotService,
		Notification:       notificationService,
		Payments:           booking.NewStripeRefundHandler(logger),
		Clock:              clock,
		CancellationNotice: time.Duration(config.AppConfig.CancellationNoticeHours) * time.Hour,
	}

	providerService, err := provider.NewDefaultProviderService(provRepo, whRepo, notificationService, clock)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize provider service: %v", err)
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Provider: handlers.NewProviderHandler(providerService),
		Client:   handlers.NewClientHandler(cliRepo),
		Booking:  handlers.NewBookingHandler(bookingEngine, slotService),
		Admin:    handlers.NewAdminHandler(providerService),
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

	logger.Sugar().Info("main: server stopped gracefully")
}
