package handlers

import (
	"fmt"
	"net/http"

	"travel/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// POST /api/clients
func CreateClient(c *gin.Context) {
	var in models.ClientInput
	if !BindJSONOrError(c, &in) {
		return
	}

	id, err := clientService(c).CreateClient(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("api/clients/%d", id))
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/clients/:id/trips
func GetClientTrips(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	trips, err := tripService(c).ListClientTrips(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// PUT /api/clients/:id/trips/:tripId
func RegisterClientForTrip(c *gin.Context) {
	clientID, ok := idParam(c, "id")
	if !ok {
		return
	}
	tripID, ok := idParam(c, "tripId")
	if !ok {
		return
	}
	if err := registrationService(c).Register(c.Request.Context(), clientID, tripID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client registered successfully"})
}

// DELETE /api/clients/:id/trips/:tripId
func UnregisterClientFromTrip(c *gin.Context) {
	clientID, ok := idParam(c, "id")
	if !ok {
		return
	}
	tripID, ok := idParam(c, "tripId")
	if !ok {
		return
	}
	if err := registrationService(c).Unregister(c.Request.Context(), clientID, tripID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client unregistered successfully"})
}

// GET /api/clients/:id/trips/:tripId/ticket
func GetRegistrationTicket(c *gin.Context) {
	clientID, ok := idParam(c, "id")
	if !ok {
		return
	}
	tripID, ok := idParam(c, "tripId")
	if !ok {
		return
	}
	pdf, filename, err := ticketService(c).Generate(c.Request.Context(), clientID, tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
