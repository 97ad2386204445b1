package response

import "github.com/gin-gonic/gin"

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondRedirect signals the SPA to navigate away. Precondition and guard
// failures are silent redirects, not retryable errors.
func RespondRedirect(c *gin.Context, code int, target string) {
	c.JSON(code, StandardApiResponse{
		Status:     "error",
		StatusCode: code,
		Redirect:   target,
	})
}
