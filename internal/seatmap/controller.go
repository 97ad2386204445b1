package seatmap

import (
	"errors"
	"net/http"

	"simplyfly/internal/flow"
	"simplyfly/internal/shared/middleware"
	"simplyfly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetSeatMap handles GET /api/v1/flow/seatmap
func (c *Controller) GetSeatMap(ctx *gin.Context) {
	sessionID, _ := middleware.SessionID(ctx)

	m, err := c.service.Build(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, flow.ErrSessionNotFound) {
			response.RespondRedirect(ctx, http.StatusForbidden, "/home")
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to build seat map", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved", m, nil)
}

type toggleRequest struct {
	SeatID string `json:"seat_id" binding:"required"`
}

// ToggleSeat handles POST /api/v1/flow/seats/toggle
func (c *Controller) ToggleSeat(ctx *gin.Context) {
	sessionID, _ := middleware.SessionID(ctx)

	var req toggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	sel, err := c.service.ToggleSeat(ctx.Request.Context(), sessionID, req.SeatID)
	if err != nil {
		if errors.Is(err, flow.ErrSessionNotFound) {
			response.RespondRedirect(ctx, http.StatusForbidden, "/home")
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to toggle seat", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Selection updated", sel, nil)
}

// ConfirmSeats handles POST /api/v1/flow/seats/confirm
func (c *Controller) ConfirmSeats(ctx *gin.Context) {
	sessionID, _ := middleware.SessionID(ctx)

	d, err := c.service.ConfirmSeats(ctx.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrSessionNotFound):
			response.RespondRedirect(ctx, http.StatusForbidden, "/home")
		case errors.Is(err, ErrSelectionIncomplete):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Select one seat per passenger before continuing", nil, err.Error())
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to confirm seats", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats confirmed", d, nil)
}
