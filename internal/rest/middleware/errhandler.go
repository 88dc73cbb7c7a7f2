package middleware

import (
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware handles error responses
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		response := ierr.ErrorResponse{
			Success: false,
			Error: ierr.ErrorDetail{
				Code:    ierr.CodeFromErr(err),
				Display: ierr.DisplayMessage(err),
				Details: ierr.ReportableDetails(err),
			},
		}
		if len(response.Error.Details) == 0 {
			response.Error.Details = nil
		}

		c.JSON(ierr.HTTPStatusFromErr(err), response)
	}
}
