package flow

import (
	"net/http"

	"simplyfly/internal/shared/middleware"
	"simplyfly/internal/shared/utils/response"
	"simplyfly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Guard blocks screens reached out of sequence. On rejection the session's
// flow state is cleared and the client is redirected home, silently (no
// retryable error body). Matches the SPA's route-guard behavior.
func Guard(manager *Manager, min State, screen string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.SessionID(c)
		if !ok {
			response.RespondRedirect(c, http.StatusForbidden, "/home")
			c.Abort()
			return
		}

		if err := manager.Require(c.Request.Context(), sessionID, min); err != nil {
			state, _ := manager.State(c.Request.Context(), sessionID)
			logger.GetDefault().LogGuardRejected(c.Request.Context(), sessionID, screen, state.String())

			// Clear everything so a partial flow cannot be replayed
			if err := manager.Reset(c.Request.Context(), sessionID); err != nil {
				logger.GetDefault().WithError(err).Warn("failed to clear flow state on guard rejection")
			}

			response.RespondRedirect(c, http.StatusForbidden, "/home")
			c.Abort()
			return
		}

		c.Next()
	}
}
