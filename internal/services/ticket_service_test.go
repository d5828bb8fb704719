package services

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"travel/internal/domain"
	"travel/internal/domain/models"
	"travel/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTicketWithLoader(t *testing.T) {
	paid := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)
	svc := TicketService{
		Loader: func(ctx context.Context, clientID, tripID int64) (models.Ticket, error) {
			return models.Ticket{
				ClientID:     clientID,
				TripID:       tripID,
				FirstName:    "Anna",
				LastName:     "Nowak",
				Email:        "anna@example.com",
				TripName:     "Rome",
				DateFrom:     jan(3),
				DateTo:       jan(8),
				Countries:    []string{"Italy", "Vatican"},
				RegisteredAt: jan(1),
				PaymentDate:  &paid,
			}, nil
		},
	}

	pdf, name, err := svc.Generate(context.Background(), 3, 11)
	require.NoError(t, err)
	assert.Equal(t, "ticket-3-11.pdf", name)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output is not a PDF")
}

func TestGenerateTicketLoadsFromStore(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("FROM Client_Trip ct\\s+JOIN Client c").WithArgs(int64(3), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{
			"IdClient", "IdTrip", "FirstName", "LastName", "Email",
			"TripName", "DateFrom", "DateTo", "RegisteredAt", "PaymentDate",
		}).AddRow(int64(3), int64(11), "Anna", "Nowak", "anna@example.com", "Rome", jan(3), jan(8), int64(20251220), nil))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.Name")).WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"Name"}).AddRow("Italy"))

	svc := TicketService{
		Registrations: repositories.RegistrationRepository{DB: db},
		Trips:         repositories.TripRepository{DB: db},
	}
	pdf, _, err := svc.Generate(context.Background(), 3, 11)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateTicketUnknownRegistration(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("FROM Client_Trip ct").WithArgs(int64(3), int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"IdClient"}))

	svc := TicketService{
		Registrations: repositories.RegistrationRepository{DB: db},
		Trips:         repositories.TripRepository{DB: db},
	}
	_, _, err := svc.Generate(context.Background(), 3, 12)
	require.True(t, domain.IsNotFound(err), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateTicketNonPositiveIDs(t *testing.T) {
	_, _, err := TicketService{}.Generate(context.Background(), 0, 4)
	require.True(t, domain.IsNotFound(err), "got %v", err)
}
