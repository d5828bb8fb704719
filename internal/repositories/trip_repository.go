package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "travel/internal/config"
	"travel/internal/domain/models"
	"travel/internal/utils"

	"github.com/jmoiron/sqlx"
)

type TripRepository struct {
	DB *sqlx.DB
}

func (r TripRepository) db() *sqlx.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

type tripCountryRow struct {
	ID          int64          `db:"IdTrip"`
	Name        string         `db:"Name"`
	Description *string        `db:"Description"`
	DateFrom    time.Time      `db:"DateFrom"`
	DateTo      time.Time      `db:"DateTo"`
	MaxPeople   int            `db:"MaxPeople"`
	CountryID   sql.NullInt64  `db:"IdCountry"`
	CountryName sql.NullString `db:"CountryName"`
}

type clientTripRow struct {
	ID           int64     `db:"IdTrip"`
	Name         string    `db:"Name"`
	Description  *string   `db:"Description"`
	DateFrom     time.Time `db:"DateFrom"`
	DateTo       time.Time `db:"DateTo"`
	MaxPeople    int       `db:"MaxPeople"`
	RegisteredAt int       `db:"RegisteredAt"`
	PaymentDate  *int      `db:"PaymentDate"`
}

// ListWithCountries returns every trip with its country names. Rows arrive
// ordered by IdTrip, one per (trip, country), and are folded per trip.
func (r TripRepository) ListWithCountries(ctx context.Context) ([]models.Trip, error) {
	rows := []tripCountryRow{}
	err := sqlx.SelectContext(ctx, r.db(), &rows, `
		SELECT t.IdTrip, t.Name, t.Description, t.DateFrom, t.DateTo, t.MaxPeople,
		       c.IdCountry, c.Name AS CountryName
		FROM Trip t
		LEFT JOIN Country_Trip ct ON t.IdTrip = ct.IdTrip
		LEFT JOIN Country c ON ct.IdCountry = c.IdCountry
		ORDER BY t.IdTrip`)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	out := []models.Trip{}
	for _, row := range rows {
		if len(out) == 0 || out[len(out)-1].ID != row.ID {
			out = append(out, models.Trip{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				DateFrom:    row.DateFrom,
				DateTo:      row.DateTo,
				MaxPeople:   row.MaxPeople,
				Countries:   []string{},
			})
		}
		if row.CountryID.Valid {
			cur := &out[len(out)-1]
			cur.Countries = append(cur.Countries, row.CountryName.String)
		}
	}
	return out, nil
}

// ListByClient returns the trips clientID is registered for with decoded
// registration and payment dates.
func (r TripRepository) ListByClient(ctx context.Context, clientID int64) ([]models.ClientTrip, error) {
	rows := []clientTripRow{}
	err := sqlx.SelectContext(ctx, r.db(), &rows, `
		SELECT t.IdTrip, t.Name, t.Description, t.DateFrom, t.DateTo, t.MaxPeople,
		       ct.RegisteredAt, ct.PaymentDate
		FROM Client_Trip ct
		JOIN Trip t ON ct.IdTrip = t.IdTrip
		WHERE ct.IdClient = ?`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list trips of client %d: %w", clientID, err)
	}

	out := make([]models.ClientTrip, 0, len(rows))
	for _, row := range rows {
		registeredAt, paymentDate, err := decodeRegistrationDates(row.RegisteredAt, row.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("trip %d: %w", row.ID, err)
		}
		out = append(out, models.ClientTrip{
			ID:           row.ID,
			Name:         row.Name,
			Description:  row.Description,
			DateFrom:     row.DateFrom,
			DateTo:       row.DateTo,
			MaxPeople:    row.MaxPeople,
			RegisteredAt: registeredAt,
			PaymentDate:  paymentDate,
		})
	}
	return out, nil
}

// LockCapacity reads MaxPeople and takes a row lock on the trip until q's
// transaction ends. found is false when the trip does not exist.
func (r TripRepository) LockCapacity(ctx context.Context, q sqlx.QueryerContext, tripID int64) (maxPeople int, found bool, err error) {
	err = sqlx.GetContext(ctx, q, &maxPeople, `SELECT MaxPeople FROM Trip WHERE IdTrip = ? FOR UPDATE`, tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lock trip %d: %w", tripID, err)
	}
	return maxPeople, true, nil
}

// Countries lists the country names of one trip.
func (r TripRepository) Countries(ctx context.Context, tripID int64) ([]string, error) {
	names := []string{}
	err := sqlx.SelectContext(ctx, r.db(), &names, `
		SELECT c.Name
		FROM Country_Trip ct
		JOIN Country c ON ct.IdCountry = c.IdCountry
		WHERE ct.IdTrip = ?`, tripID)
	if err != nil {
		return nil, fmt.Errorf("countries of trip %d: %w", tripID, err)
	}
	return names, nil
}

func decodeRegistrationDates(registered int, payment *int) (time.Time, *time.Time, error) {
	registeredAt, err := utils.DecodeDateInt(registered)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("registered at: %w", err)
	}
	if payment == nil {
		return registeredAt, nil, nil
	}
	paid, err := utils.DecodeDateInt(*payment)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("payment date: %w", err)
	}
	return registeredAt, &paid, nil
}
