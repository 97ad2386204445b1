package tickets

import (
	"errors"
	"fmt"
	"net/http"

	"simplyfly/internal/draft"
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

// Confirmation handles GET /api/v1/flow/confirmation
func (c *Controller) Confirmation(ctx *gin.Context) {
	sessionID, _ := middleware.SessionID(ctx)

	conf, err := c.service.Confirmation(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, draft.ErrNoCompleteBooking) || errors.Is(err, flow.ErrSessionNotFound) {
			response.RespondRedirect(ctx, http.StatusForbidden, "/home")
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load confirmation", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking confirmed", conf, nil)
}

// ETicket handles GET /api/v1/flow/confirmation/ticket
func (c *Controller) ETicket(ctx *gin.Context) {
	sessionID, _ := middleware.SessionID(ctx)

	data, filename, err := c.service.ETicket(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, draft.ErrNoCompleteBooking) || errors.Is(err, flow.ErrSessionNotFound) {
			response.RespondRedirect(ctx, http.StatusForbidden, "/home")
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to generate e-ticket", nil, err.Error())
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/pdf", data)
}
