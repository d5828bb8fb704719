package models

import "time"

// Registration mirrors a Client_Trip row. Dates are stored as YYYYMMDD ints.
type Registration struct {
	ClientID     int64 `db:"IdClient"`
	TripID       int64 `db:"IdTrip"`
	RegisteredAt int   `db:"RegisteredAt"`
	PaymentDate  *int  `db:"PaymentDate"`
}

// Ticket gathers what the registration confirmation PDF prints.
type Ticket struct {
	ClientID     int64
	TripID       int64
	FirstName    string
	LastName     string
	Email        string
	TripName     string
	DateFrom     time.Time
	DateTo       time.Time
	Countries    []string
	RegisteredAt time.Time
	PaymentDate  *time.Time
}
