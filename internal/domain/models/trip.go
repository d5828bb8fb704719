package models

import "time"

// Trip is a bookable travel offering with a date range and capacity.
type Trip struct {
	ID          int64     `json:"idTrip"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	DateFrom    time.Time `json:"dateFrom"`
	DateTo      time.Time `json:"dateTo"`
	MaxPeople   int       `json:"maxPeople"`
	Countries   []string  `json:"countries"`
}

// ClientTrip is a trip annotated with one client's registration.
type ClientTrip struct {
	ID           int64      `json:"idTrip"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	DateFrom     time.Time  `json:"dateFrom"`
	DateTo       time.Time  `json:"dateTo"`
	MaxPeople    int        `json:"maxPeople"`
	RegisteredAt time.Time  `json:"registeredAt"`
	PaymentDate  *time.Time `json:"paymentDate"`
}
