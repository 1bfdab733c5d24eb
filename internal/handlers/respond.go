package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the single error payload shape every endpoint returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func jsonError(c *gin.Context, status int, msg string, details any) {
	c.JSON(status, ErrorResponse{Error: msg, Details: details})
}

// pathID parses the :id path segment. Unparsable ids behave like absent
// records rather than surfacing a decode error.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *gin.Context, entity string) {
	jsonError(c, http.StatusNotFound, entity+" not found", nil)
}
