package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/utils"
)

// respondError maps the model error taxonomy onto HTTP statuses. Numbering
// contention is surfaced as 503 with a Retry-After hint since the operation
// is safe to retry as-is.
func respondError(c *gin.Context, err error) {
	var validationErr *utils.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Error(),
			"field": validationErr.Field,
		})
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, utils.ErrorInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "operation not allowed in the current state"})
	case errors.Is(err, utils.ErrorOverAllocation):
		c.JSON(http.StatusConflict, gin.H{"error": "allocation exceeds the outstanding balance"})
	case errors.Is(err, utils.ErrorNumberingContention):
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "numbering busy, retry the request"})
	default:
		config.LogError(config.GetLogger(), "handlers", "respondError", c.FullPath(), nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseIdParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

// currentUserId returns the authenticated caller's id for created_by stamps,
// nil when the request is unauthenticated.
func currentUserId(c *gin.Context) *int {
	if id, ok := utils.GetUserIdFromContext(c.Request.Context()); ok {
		return &id
	}
	return nil
}
