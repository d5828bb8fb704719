package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"travel/internal/domain"
	"travel/internal/domain/models"
	"travel/internal/repositories"
	"travel/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TicketService renders the registration confirmation PDF.
type TicketService struct {
	Registrations repositories.RegistrationRepository
	Trips         repositories.TripRepository
	RequestID     string
	Loader        func(ctx context.Context, clientID, tripID int64) (models.Ticket, error)
}

func (s TicketService) Generate(ctx context.Context, clientID, tripID int64) ([]byte, string, error) {
	if clientID <= 0 || tripID <= 0 {
		return nil, "", domain.NotFoundError{Resource: "registration"}
	}
	t, err := s.load(ctx, clientID, tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "tickets", "generate", fmt.Sprintf("client_id=%d trip_id=%d", clientID, tripID))

	pdf, err := buildTicketPDF(t)
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	return pdf, fmt.Sprintf("ticket-%d-%d.pdf", clientID, tripID), nil
}

func (s TicketService) load(ctx context.Context, clientID, tripID int64) (models.Ticket, error) {
	if s.Loader != nil {
		return s.Loader(ctx, clientID, tripID)
	}
	t, found, err := s.Registrations.GetTicket(ctx, clientID, tripID)
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	if !found {
		return models.Ticket{}, domain.NotFoundError{Resource: "registration"}
	}
	countries, err := s.Trips.Countries(ctx, tripID)
	if err != nil {
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	t.Countries = countries
	return t, nil
}

func buildTicketPDF(t models.Ticket) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip registration", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP REGISTRATION")
	pdf.Ln(12)

	paid := "not paid"
	if t.PaymentDate != nil {
		paid = utils.FormatDate(*t.PaymentDate)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Client        : %s %s", safe(t.FirstName, "-"), safe(t.LastName, "-")),
		fmt.Sprintf("Email         : %s", safe(t.Email, "-")),
		fmt.Sprintf("Trip          : %s", safe(t.TripName, "-")),
		fmt.Sprintf("Dates         : %s - %s", utils.FormatDate(t.DateFrom), utils.FormatDate(t.DateTo)),
		fmt.Sprintf("Countries     : %s", safe(strings.Join(t.Countries, ", "), "-")),
		fmt.Sprintf("Registered at : %s", utils.FormatDate(t.RegisteredAt)),
		fmt.Sprintf("Payment date  : %s", paid),
		fmt.Sprintf("Reference     : REG-%d-%d", t.ClientID, t.TripID),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Issued "+time.Now().Format("2006-01-02 15:04")+". Present this confirmation at departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
