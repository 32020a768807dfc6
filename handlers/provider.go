package handlers

import (
	"net/http"
	"strconv"

	"salonflow/models"
	"salonflow/services/provider"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes provider registration and account reads.
type ProviderHandler struct {
	Service provider.ProviderService
}

func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Service: svc}
}

// RegisterProviderHandler creates a new applicant provider together with its
// shared working-hours references.
func (h *ProviderHandler) RegisterProviderHandler(c *gin.Context) {
	var req models.ProviderRegistrationData
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	prov, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prov)
}

func (h *ProviderHandler) GetProviderByIDHandler(c *gin.Context) {
	prov, err := h.Service.GetProviderByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prov)
}

// GetAllProvidersHandler lists providers; by default only approved ones are
// visible to clients.
func (h *ProviderHandler) GetAllProvidersHandler(c *gin.Context) {
	approvedOnly := c.DefaultQuery("approvedOnly", "true") != "false"
	providers, err := h.Service.GetAllProviders(approvedOnly, c.Query("sortBy"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

func (h *ProviderHandler) GetWorkingHoursHandler(c *gin.Context) {
	windows, err := h.Service.GetWorkingHours(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, windows)
}

func (h *ProviderHandler) RateProviderHandler(c *gin.Context) {
	rating, err := strconv.ParseFloat(c.Query("rating"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rating", "details": err.Error()})
		return
	}

	prov, err := h.Service.RateProvider(c.Param("id"), rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prov)
}
