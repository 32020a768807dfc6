package handlers

import (
	"net/http"
	"time"

	"salonflow/middleware"
	"salonflow/models"
	"salonflow/services/booking"
	"salonflow/services/scheduling"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes slot listing and the appointment lifecycle.
type BookingHandler struct {
	Engine booking.BookingEngine
	Slots  scheduling.SlotService
}

func NewBookingHandler(engine booking.BookingEngine, slots scheduling.SlotService) *BookingHandler {
	return &BookingHandler{Engine: engine, Slots: slots}
}

// GetAvailableSlotsHandler returns the provider's bookable slots over the
// rolling horizon, annotated with any occupying appointments.
func (h *BookingHandler) GetAvailableSlotsHandler(c *gin.Context) {
	slots, err := h.Slots.GetAvailableSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *BookingHandler) CreateAppointmentHandler(c *gin.Context) {
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Engine.CreateAppointment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *BookingHandler) RescheduleAppointmentHandler(c *gin.Context) {
	var input struct {
		Time time.Time `json:"appointmentTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Engine.RescheduleAppointment(c.Request.Context(), c.Param("id"), input.Time)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *BookingHandler) CancelAppointmentHandler(c *gin.Context) {
	actingRole := c.GetHeader(middleware.ActorRoleHeader)
	if err := h.Engine.CancelAppointment(c.Request.Context(), c.Param("id"), actingRole); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (h *BookingHandler) CompleteAppointmentHandler(c *gin.Context) {
	var input struct {
		ProviderID string `json:"providerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Engine.MarkCompleted(c.Request.Context(), c.Param("id"), input.ProviderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// SetPaymentStatusHandler applies a payment status. Unknown status names
// coerce to the supplied default rather than failing.
func (h *BookingHandler) SetPaymentStatusHandler(c *gin.Context) {
	var input struct {
		Status  string `json:"status" binding:"required"`
		Default string `json:"default"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	fallback, _ := models.ParsePaymentStatus(input.Default, models.PaymentPending)
	appt, err := h.Engine.SetPaymentStatus(c.Request.Context(), c.Param("id"), input.Status, fallback)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *BookingHandler) GetAppointmentHandler(c *gin.Context) {
	appt, err := h.Engine.GetAppointment(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *BookingHandler) ListProviderAppointmentsHandler(c *gin.Context) {
	excludeCompleted := c.DefaultQuery("excludeCompleted", "true") != "false"
	appts, err := h.Engine.ListProviderAppointments(c.Param("id"), excludeCompleted)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (h *BookingHandler) ListClientAppointmentsHandler(c *gin.Context) {
	excludeCompleted := c.DefaultQuery("excludeCompleted", "true") != "false"
	appts, err := h.Engine.ListClientAppointments(c.Param("id"), excludeCompleted)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
