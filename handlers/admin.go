package handlers

import (
	"net/http"

	"salonflow/services/provider"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the provider approval workflow.
type AdminHandler struct {
	Providers provider.ProviderService
}

func NewAdminHandler(providers provider.ProviderService) *AdminHandler {
	return &AdminHandler{Providers: providers}
}

// ApproveProviderHandler grants the provider role and approves the account.
func (h *AdminHandler) ApproveProviderHandler(c *gin.Context) {
	if err := h.Providers.Approve(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

// RejectProviderHandler removes the application and sweeps any availability
// windows left unreferenced.
func (h *AdminHandler) RejectProviderHandler(c *gin.Context) {
	if err := h.Providers.Reject(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}
