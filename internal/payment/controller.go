package payment

import (
	"errors"
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

// Load handles GET /api/v1/flow/payment
func (c *Controller) Load(ctx *gin.Context) {
	sessionID, _ := middleware.SessionID(ctx)

	view, err := c.service.Load(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, draft.ErrNoCompleteBooking) || errors.Is(err, flow.ErrSessionNotFound) {
			response.RespondRedirect(ctx, http.StatusForbidden, "/home")
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load payment details", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment details retrieved", view, nil)
}

// Pay handles POST /api/v1/flow/payment
func (c *Controller) Pay(ctx *gin.Context) {
	sessionID, _ := middleware.SessionID(ctx)

	var req PayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := c.service.Pay(ctx.Request.Context(), sessionID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPayment):
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Payment details invalid", nil, err.Error())
		case errors.Is(err, ErrAlreadyPaid):
			response.RespondRedirect(ctx, http.StatusConflict, "/confirmation")
		case errors.Is(err, draft.ErrNoCompleteBooking), errors.Is(err, flow.ErrSessionNotFound):
			response.RespondRedirect(ctx, http.StatusForbidden, "/home")
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Payment failed", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment successful", resp, nil)
}

// Abandon handles POST /api/v1/flow/payment/abandon: the browser posts this
// when the user navigates away from the payment screen without paying.
func (c *Controller) Abandon(ctx *gin.Context) {
	sessionID, _ := middleware.SessionID(ctx)

	resp, err := c.service.Abandon(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, flow.ErrSessionNotFound) {
			response.RespondRedirect(ctx, http.StatusForbidden, "/home")
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to abandon booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking abandoned", resp, nil)
}
