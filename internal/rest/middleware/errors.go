package middleware

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/roamsim/roamsim/internal/errors"
)

// ErrorHandler converts errors recorded by handlers via c.Error into the
// standard JSON error envelope. Only the last error is rendered; handlers
// record at most one.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	status, body := ierr.NewErrorResponse(c.Errors.Last().Err)
	c.JSON(status, body)
}
