package services

import (
	"context"
	"fmt"
	"time"

	intdb "travel/internal/db"
	"travel/internal/domain"
	"travel/internal/domain/models"
	"travel/internal/metrics"
	"travel/internal/repositories"
	"travel/internal/utils"
)

// RegistrationService signs clients up for trips and cancels those sign-ups.
type RegistrationService struct {
	Clients       repositories.ClientRepository
	Trips         repositories.TripRepository
	Registrations repositories.RegistrationRepository
	Metrics       *metrics.Metrics
	Now           domain.Clock
	RequestID     string
}

func (s RegistrationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register adds clientID to tripID. The existence, duplicate and capacity
// checks and the insert share one transaction holding the trip row lock.
func (s RegistrationService) Register(ctx context.Context, clientID, tripID int64) (err error) {
	defer func() { s.Metrics.ObserveRegistration(resultLabel(err)) }()

	if clientID <= 0 {
		return domain.NotFoundError{Resource: "client"}
	}

	tx, err := s.Registrations.BeginTx(ctx)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ok, err := s.Clients.Exists(ctx, tx, clientID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "client"}
	}
	if tripID <= 0 {
		return domain.NotFoundError{Resource: "trip"}
	}

	maxPeople, found, err := s.Trips.LockCapacity(ctx, tx, tripID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !found {
		return domain.NotFoundError{Resource: "trip"}
	}

	registered, err := s.Registrations.Exists(ctx, tx, clientID, tripID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if registered {
		return domain.ConflictError{Msg: "client is already registered for this trip"}
	}

	count, err := s.Registrations.CountByTrip(ctx, tx, tripID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if count >= maxPeople {
		return domain.ConflictError{Msg: "trip has reached maximum capacity"}
	}

	reg := models.Registration{
		ClientID:     clientID,
		TripID:       tripID,
		RegisteredAt: utils.EncodeDateInt(s.now()),
	}
	if err := s.Registrations.Insert(ctx, tx, reg); err != nil {
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Msg: "client is already registered for this trip", Err: err}
		}
		return domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: fmt.Errorf("commit registration: %w", err)}
	}
	committed = true

	utils.LogEvent(s.RequestID, "registration", "register",
		fmt.Sprintf("client_id=%d trip_id=%d registered_at=%d", clientID, tripID, reg.RegisteredAt))
	return nil
}

// Unregister cancels the registration of clientID for tripID.
func (s RegistrationService) Unregister(ctx context.Context, clientID, tripID int64) (err error) {
	defer func() { s.Metrics.ObserveUnregistration(resultLabel(err)) }()

	if clientID <= 0 || tripID <= 0 {
		return domain.NotFoundError{Resource: "registration"}
	}

	n, err := s.Registrations.Delete(ctx, clientID, tripID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "registration"}
	}

	utils.LogEvent(s.RequestID, "registration", "unregister",
		fmt.Sprintf("client_id=%d trip_id=%d", clientID, tripID))
	return nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case domain.IsNotFound(err):
		return "not_found"
	case domain.IsConflict(err):
		return "conflict"
	default:
		return "error"
	}
}
