package models

// User is an operator account allowed to call the mutating endpoints.
type User struct {
	ID           int64  `db:"IdUser"`
	Email        string `db:"Email"`
	PasswordHash string `db:"PasswordHash"`
	Role         string `db:"Role"`
}
