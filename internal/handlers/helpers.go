package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alx-zhu/one-task-manager/internal/board"
	"github.com/alx-zhu/one-task-manager/internal/middleware"
)

func ownerID(c *gin.Context) string {
	return c.GetString(middleware.OwnerKey)
}

// respondBoardError maps the board package's expected failures onto HTTP
// statuses and reports whether it handled the error. Rule violations are
// unprocessable requests; capacity exhaustion is a conflict with current
// board state.
func respondBoardError(c *gin.Context, err error) bool {
	var ruleErr *board.RuleError
	if errors.As(err, &ruleErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ruleErr.Reason})
		return true
	}
	var capErr *board.NoCapacityError
	if errors.As(err, &capErr) {
		c.JSON(http.StatusConflict, gin.H{"error": capErr.Message, "task_count": capErr.TaskCount})
		return true
	}
	return false
}
