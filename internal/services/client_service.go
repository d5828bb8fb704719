package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"travel/internal/domain"
	"travel/internal/domain/models"
	"travel/internal/metrics"
	"travel/internal/repositories"
	"travel/internal/utils"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s\p{Z}]+@[^@\s\p{Z}]+\.[^@\s\p{Z}]+$`)
	peselPattern = regexp.MustCompile(`^[0-9]{11}$`)
)

type ClientService struct {
	Clients   repositories.ClientRepository
	Metrics   *metrics.Metrics
	RequestID string
}

// ValidateClient checks the fields CreateClient would reject.
func ValidateClient(in models.ClientInput) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return domain.ValidationError{Field: "firstName", Msg: "is required"}
	}
	if strings.TrimSpace(in.LastName) == "" {
		return domain.ValidationError{Field: "lastName", Msg: "is required"}
	}
	if !emailPattern.MatchString(in.Email) {
		return domain.ValidationError{Field: "email", Msg: "invalid email format"}
	}
	if in.Pesel != nil && *in.Pesel != "" && !peselPattern.MatchString(*in.Pesel) {
		return domain.ValidationError{Field: "pesel", Msg: "invalid pesel format"}
	}
	return nil
}

// CreateClient validates in and stores it, returning the new client id.
func (s ClientService) CreateClient(ctx context.Context, in models.ClientInput) (int64, error) {
	if err := ValidateClient(in); err != nil {
		return 0, err
	}

	id, err := s.Clients.Create(ctx, in)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	s.Metrics.IncrementClientsCreated()
	utils.LogEvent(s.RequestID, "clients", "create", fmt.Sprintf("client_id=%d", id))
	return id, nil
}
