// Package handler exposes the HTTP surface. Every response uses the same
// envelope: {"success": bool, ...}, with failures carrying a "message" and
// successes carrying the resource under a descriptive key.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, code int, body gin.H) {
	body["success"] = true
	c.JSON(code, body)
}

func respondErr(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

// internalErr answers an unclassified failure with a 500 carrying the
// underlying message, so callers see what actually broke.
func internalErr(c *gin.Context, err error) {
	respondErr(c, http.StatusInternalServerError, err.Error())
}

// pathID parses a numeric :id path parameter; on failure it writes the 400
// itself and reports ok=false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondErr(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
