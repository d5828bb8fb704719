package models

// Client is a person who may register for trips.
type Client struct {
	ID        int64   `db:"IdClient" json:"idClient"`
	FirstName string  `db:"FirstName" json:"firstName"`
	LastName  string  `db:"LastName" json:"lastName"`
	Email     string  `db:"Email" json:"email"`
	Telephone *string `db:"Telephone" json:"telephone,omitempty"`
	Pesel     *string `db:"Pesel" json:"pesel,omitempty"`
}

// ClientInput is the payload accepted by POST /api/clients.
type ClientInput struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Telephone *string `json:"telephone"`
	Pesel     *string `json:"pesel"`
}
