package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
)

// respondError maps an error to its HTTP status and the standard error
// envelope. Transport-level failures surface as 502 since the upstream
// portal, not this server, is at fault.
func respondError(c *gin.Context, err error) {
	lmErr, ok := errors.AsLMError(err)
	if !ok {
		lmErr = errors.Remote(http.StatusInternalServerError, err.Error())
	}

	status := lmErr.HTTPStatus
	if status == 0 {
		if errors.IsConnection(err) {
			status = http.StatusBadGateway
		} else {
			status = http.StatusInternalServerError
		}
	}
	c.JSON(status, lmErr.ToResponse())
}

// respondOK sends a 200 response wrapping data.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}
