package handlers

import (
	"errors"
	"net/http"

	appointmentRepo "salonflow/database/repository/appointment"
	clientRepo "salonflow/database/repository/client"
	providerRepo "salonflow/database/repository/provider"
	workinghoursRepo "salonflow/database/repository/workinghours"
	"salonflow/services/booking"
	"salonflow/services/provider"
	"salonflow/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Validation and
// conflict failures are user-facing 4xx outcomes; anything unrecognized is a
// 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, providerRepo.ErrNotFound),
		errors.Is(err, clientRepo.ErrNotFound),
		errors.Is(err, appointmentRepo.ErrNotFound),
		errors.Is(err, workinghoursRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, booking.ErrInvalidTime),
		errors.Is(err, provider.ErrInvalidWorkingHours),
		errors.Is(err, provider.ErrInvalidRating),
		errors.Is(err, provider.ErrInvalidSortKey):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, booking.ErrSchedulingConflict),
		errors.Is(err, provider.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, booking.ErrCancellationWindow),
		errors.Is(err, booking.ErrUnauthorized),
		errors.Is(err, booking.ErrProviderNotApproved):
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
