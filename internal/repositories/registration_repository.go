package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "travel/internal/config"
	"travel/internal/domain/models"

	"github.com/jmoiron/sqlx"
)

type RegistrationRepository struct {
	DB *sqlx.DB
}

func (r RegistrationRepository) db() *sqlx.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// BeginTx opens the registration transaction. READ COMMITTED lets a count
// taken after the trip row lock observe every committed registration.
func (r RegistrationRepository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("db not available")
	}
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("begin registration tx: %w", err)
	}
	return tx, nil
}

func (r RegistrationRepository) Exists(ctx context.Context, q sqlx.QueryerContext, clientID, tripID int64) (bool, error) {
	var one int
	err := sqlx.GetContext(ctx, q, &one,
		`SELECT 1 FROM Client_Trip WHERE IdClient = ? AND IdTrip = ?`, clientID, tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return true, nil
}

func (r RegistrationRepository) CountByTrip(ctx context.Context, q sqlx.QueryerContext, tripID int64) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, q, &n, `SELECT COUNT(*) FROM Client_Trip WHERE IdTrip = ?`, tripID); err != nil {
		return 0, fmt.Errorf("count registrations of trip %d: %w", tripID, err)
	}
	return n, nil
}

func (r RegistrationRepository) Insert(ctx context.Context, e sqlx.ExecerContext, reg models.Registration) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO Client_Trip (IdClient, IdTrip, RegisteredAt, PaymentDate)
		VALUES (?, ?, ?, ?)`,
		reg.ClientID, reg.TripID, reg.RegisteredAt, reg.PaymentDate)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

// Delete removes the registration and reports how many rows went away.
func (r RegistrationRepository) Delete(ctx context.Context, clientID, tripID int64) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`DELETE FROM Client_Trip WHERE IdClient = ? AND IdTrip = ?`, clientID, tripID)
	if err != nil {
		return 0, fmt.Errorf("delete registration: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete registration: %w", err)
	}
	return n, nil
}

type ticketRow struct {
	ClientID     int64     `db:"IdClient"`
	TripID       int64     `db:"IdTrip"`
	FirstName    string    `db:"FirstName"`
	LastName     string    `db:"LastName"`
	Email        string    `db:"Email"`
	TripName     string    `db:"TripName"`
	DateFrom     time.Time `db:"DateFrom"`
	DateTo       time.Time `db:"DateTo"`
	RegisteredAt int       `db:"RegisteredAt"`
	PaymentDate  *int      `db:"PaymentDate"`
}

// GetTicket loads one registration joined with its client and trip.
// found is false when the pair is not registered.
func (r RegistrationRepository) GetTicket(ctx context.Context, clientID, tripID int64) (models.Ticket, bool, error) {
	var row ticketRow
	err := sqlx.GetContext(ctx, r.db(), &row, `
		SELECT ct.IdClient, ct.IdTrip, c.FirstName, c.LastName, c.Email,
		       t.Name AS TripName, t.DateFrom, t.DateTo, ct.RegisteredAt, ct.PaymentDate
		FROM Client_Trip ct
		JOIN Client c ON c.IdClient = ct.IdClient
		JOIN Trip t ON t.IdTrip = ct.IdTrip
		WHERE ct.IdClient = ? AND ct.IdTrip = ?`, clientID, tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ticket{}, false, nil
	}
	if err != nil {
		return models.Ticket{}, false, fmt.Errorf("load ticket: %w", err)
	}

	registeredAt, paymentDate, err := decodeRegistrationDates(row.RegisteredAt, row.PaymentDate)
	if err != nil {
		return models.Ticket{}, false, err
	}
	return models.Ticket{
		ClientID:     row.ClientID,
		TripID:       row.TripID,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Email:        row.Email,
		TripName:     row.TripName,
		DateFrom:     row.DateFrom,
		DateTo:       row.DateTo,
		RegisteredAt: registeredAt,
		PaymentDate:  paymentDate,
	}, true, nil
}
