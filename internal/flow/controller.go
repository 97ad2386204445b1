package flow

import (
	"net/http"
	"time"

	"simplyfly/internal/shared/config"
	"simplyfly/internal/shared/middleware"
	"simplyfly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	manager *Manager
	config  *config.Config
}

func NewController(manager *Manager, cfg *config.Config) *Controller {
	return &Controller{manager: manager, config: cfg}
}

// OpenSessionRequest carries the flight context from the search screen
type OpenSessionRequest struct {
	FlightID      int64   `json:"flight_id" binding:"required"`
	Airline       string  `json:"airline"`
	Origin        string  `json:"origin" binding:"required"`
	Destination   string  `json:"destination" binding:"required"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	Passengers    int     `json:"passengers" binding:"required,min=1,max=6"`
	TicketClass   string  `json:"ticket_class"`
	DepartureDate string  `json:"departure_date"` // YYYY-MM-DD
	DepartureTime string  `json:"departure_time"` // RFC3339, flight's own schedule
}

type OpenSessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	State     State  `json:"state"`
}

// OpenSession handles POST /api/v1/flow/session
func (c *Controller) OpenSession(ctx *gin.Context) {
	var req OpenSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	fc := FlightContext{
		FlightID:      req.FlightID,
		Airline:       req.Airline,
		Origin:        req.Origin,
		Destination:   req.Destination,
		Price:         req.Price,
		Passengers:    req.Passengers,
		TicketClass:   req.TicketClass,
		DepartureDate: req.DepartureDate,
	}
	if req.DepartureTime != "" {
		if t, err := time.Parse(time.RFC3339, req.DepartureTime); err == nil {
			fc.DepartureTime = t
		}
	}

	sessionID, err := c.manager.Open(ctx.Request.Context(), fc)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to open flow session", nil, err.Error())
		return
	}

	token, err := middleware.IssueSessionToken(c.config, sessionID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to issue session token", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Flow session opened", OpenSessionResponse{
		SessionID: sessionID,
		Token:     token,
		State:     StateNotStarted,
	}, nil)
}
