package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"travel/internal/domain"
	"travel/internal/http/middleware"
	"travel/internal/metrics"
	"travel/internal/repositories"
	"travel/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Deps are the shared collaborators of the handlers. A nil DB falls back to
// the pool opened by config.ConnectDB.
type Deps struct {
	DB        *sqlx.DB
	Metrics   *metrics.Metrics
	JWTSecret []byte
	JWTTTL    time.Duration
}

var (
	depsMu sync.RWMutex
	deps   Deps
)

func SetDeps(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	deps = d
}

func currentDeps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}

func registrationService(c *gin.Context) services.RegistrationService {
	d := currentDeps()
	return services.RegistrationService{
		Clients:       repositories.ClientRepository{DB: d.DB},
		Trips:         repositories.TripRepository{DB: d.DB},
		Registrations: repositories.RegistrationRepository{DB: d.DB},
		Metrics:       d.Metrics,
		RequestID:     middleware.GetRequestID(c),
	}
}

func tripService(c *gin.Context) services.TripService {
	d := currentDeps()
	return services.TripService{
		Clients:   repositories.ClientRepository{DB: d.DB},
		Trips:     repositories.TripRepository{DB: d.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

func clientService(c *gin.Context) services.ClientService {
	d := currentDeps()
	return services.ClientService{
		Clients:   repositories.ClientRepository{DB: d.DB},
		Metrics:   d.Metrics,
		RequestID: middleware.GetRequestID(c),
	}
}

func ticketService(c *gin.Context) services.TicketService {
	d := currentDeps()
	return services.TicketService{
		Registrations: repositories.RegistrationRepository{DB: d.DB},
		Trips:         repositories.TripRepository{DB: d.DB},
		RequestID:     middleware.GetRequestID(c),
	}
}

// AuthService builds the token service from the current deps.
func AuthService(requestID string) services.AuthService {
	d := currentDeps()
	return services.AuthService{
		Users:     repositories.UserRepository{DB: d.DB},
		Secret:    d.JWTSecret,
		TTL:       d.JWTTTL,
		RequestID: requestID,
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "empty body")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload: "+err.Error())
		return false
	}
	return true
}

// idParam reads an integer path parameter. Ids of 0 or below parse fine and
// are left to the services, which report them as not found.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: name, Msg: "invalid id", Err: err})
		return 0, false
	}
	return id, true
}
