package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/trips
func GetTrips(c *gin.Context) {
	trips, err := tripService(c).ListTrips(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}
