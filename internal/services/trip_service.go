package services

import (
	"context"
	"fmt"

	"travel/internal/domain"
	"travel/internal/domain/models"
	"travel/internal/repositories"
	"travel/internal/utils"
)

// TripService reads trips and client registrations.
type TripService struct {
	Clients   repositories.ClientRepository
	Trips     repositories.TripRepository
	RequestID string
}

func (s TripService) ListTrips(ctx context.Context) ([]models.Trip, error) {
	trips, err := s.Trips.ListWithCountries(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return trips, nil
}

// ListClientTrips returns the trips of a known client; an unknown client is
// NotFound while a client without registrations gets an empty list.
func (s TripService) ListClientTrips(ctx context.Context, clientID int64) ([]models.ClientTrip, error) {
	if clientID <= 0 {
		return nil, domain.NotFoundError{Resource: "client"}
	}

	ok, err := s.Clients.Exists(ctx, nil, clientID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	if !ok {
		return nil, domain.NotFoundError{Resource: "client"}
	}

	trips, err := s.Trips.ListByClient(ctx, clientID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "trips", "list_client_trips", fmt.Sprintf("client_id=%d count=%d", clientID, len(trips)))
	return trips, nil
}
