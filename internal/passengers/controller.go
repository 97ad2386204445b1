package passengers

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
	drafts  draft.Store
}

func NewController(service Service, drafts draft.Store) *Controller {
	return &Controller{service: service, drafts: drafts}
}

// GetDraft handles GET /api/v1/flow/draft: the passenger-details screen
// reads the draft it renders the summary card from.
func (c *Controller) GetDraft(ctx *gin.Context) {
	sessionID, _ := middleware.SessionID(ctx)

	d, err := c.drafts.Read(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, draft.ErrNoDraft) {
			// no draft means the seat step never completed; back to search
			response.RespondRedirect(ctx, http.StatusForbidden, "/flights")
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to read booking draft", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking draft retrieved", d, nil)
}

// Submit handles POST /api/v1/flow/passengers
func (c *Controller) Submit(ctx *gin.Context) {
	sessionID, _ := middleware.SessionID(ctx)

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := c.service.Submit(ctx.Request.Context(), sessionID, req.Passengers)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Passenger details invalid", verr, verr.Error())
		case errors.Is(err, ErrFormCountMismatch):
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Passenger details invalid", nil, err.Error())
		case errors.Is(err, draft.ErrNoDraft):
			response.RespondRedirect(ctx, http.StatusForbidden, "/flights")
		case errors.Is(err, flow.ErrSessionNotFound):
			response.RespondRedirect(ctx, http.StatusForbidden, "/home")
		default:
			response.RespondJSON(ctx, "error", http.StatusBadGateway, "Failed to save booking", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Passenger details saved", resp, nil)
}
