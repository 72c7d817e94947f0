package handler

import (
	"net/http"
	"strconv"

	"github.com/Fahad602/Dash-KanBan/internal/common"
	"github.com/gin-gonic/gin"
)

// parseCardID reads the :id path parameter; on failure it writes a 400 response
func parseCardID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid card id", err)
		return 0, false
	}
	return id, true
}
