package handlers

import (
	"net/http"
	"time"

	clientRepo "salonflow/database/repository/client"
	"salonflow/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler exposes minimal client account management. Clients only need
// an identity to book against; their appointments hold lookup references.
type ClientHandler struct {
	Repo clientRepo.ClientRepository
}

func NewClientHandler(repo clientRepo.ClientRepository) *ClientHandler {
	return &ClientHandler{Repo: repo}
}

func (h *ClientHandler) RegisterClientHandler(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		PhoneNumber string `json:"phoneNumber"`
		FCMToken    string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	now := time.Now()
	client := &models.Client{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		FCMToken:    input.FCMToken,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.Repo.Create(client); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) GetClientByIDHandler(c *gin.Context) {
	client, err := h.Repo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}
