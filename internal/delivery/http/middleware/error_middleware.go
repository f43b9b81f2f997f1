package middleware

import (
	"errors"
	"net/http"

	"go-candidate-registry/internal/delivery/http/response"
	"go-candidate-registry/pkg/apperror"
	"go-candidate-registry/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into the JSON
// envelope. AppErrors keep their status and code; anything else is logged
// server-side and surfaced as a generic 500 so internals never leak.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Status >= http.StatusInternalServerError {
				logger.Log.Error("request failed", "code", appErr.Code, "error", appErr.Err)
			}
			response.Error(c, appErr.Status, appErr.Message, appErr.Code)
			return
		}

		logger.Log.Error("unhandled error", "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
