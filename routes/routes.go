package routes

import (
	"net/http"
	"time"

	"salonflow/handlers"
	"salonflow/middleware"
	"salonflow/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers so route registration takes one argument.
type HandlerBundle struct {
	Provider *handlers.ProviderHandler
	Client   *handlers.ClientHandler
	Booking  *handlers.BookingHandler
	Admin    *handlers.AdminHandler
}

// RegisterProviderRoutes registers provider onboarding and lookup endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.POST("/register", hb.Provider.RegisterProviderHandler)
		api.GET("", hb.Provider.GetAllProvidersHandler)
		api.GET("/id/:id", hb.Provider.GetProviderByIDHandler)
		api.GET("/id/:id/working-hours", hb.Provider.GetWorkingHoursHandler)
		api.GET("/id/:id/slots", hb.Booking.GetAvailableSlotsHandler)
		api.POST("/id/:id/rate", hb.Provider.RateProviderHandler)
	}
}

// RegisterClientRoutes registers client endpoints.
func RegisterClientRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/clients")
	{
		api.POST("/register", hb.Client.RegisterClientHandler)
		api.GET("/id/:id", hb.Client.GetClientByIDHandler)
		api.GET("/id/:id/appointments", hb.Booking.ListClientAppointmentsHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	bookingGroup := r.Group("/api/appointments")
	{
		bookingGroup.POST("", hb.Booking.CreateAppointmentHandler)
		bookingGroup.GET("/id/:id", hb.Booking.GetAppointmentHandler)
		bookingGroup.PUT("/id/:id/reschedule", hb.Booking.RescheduleAppointmentHandler)
		bookingGroup.DELETE("/id/:id", hb.Booking.CancelAppointmentHandler)
		bookingGroup.PUT("/id/:id/complete", hb.Booking.CompleteAppointmentHandler)
		bookingGroup.PUT("/id/:id/payment", hb.Booking.SetPaymentStatusHandler)
		bookingGroup.GET("/provider/:id", hb.Booking.ListProviderAppointmentsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.RequireRole(models.RoleAdmin))
		adminGroup.PUT("/providers/:id/approve", hb.Admin.ApproveProviderHandler)
		adminGroup.DELETE("/providers/:id/reject", hb.Admin.RejectProviderHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.ActorRoleHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterProviderRoutes(r, hb)
	RegisterClientRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
