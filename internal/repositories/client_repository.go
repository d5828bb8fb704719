package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "travel/internal/config"
	intdb "travel/internal/db"
	"travel/internal/domain/models"

	"github.com/jmoiron/sqlx"
)

type ClientRepository struct {
	DB *sqlx.DB
}

func (r ClientRepository) db() *sqlx.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Exists checks the Client table through q, which may be the pool or an open tx.
func (r ClientRepository) Exists(ctx context.Context, q sqlx.QueryerContext, id int64) (bool, error) {
	if q == nil {
		q = r.db()
	}
	var one int
	err := sqlx.GetContext(ctx, q, &one, `SELECT 1 FROM Client WHERE IdClient = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check client %d: %w", id, err)
	}
	return true, nil
}

// Create inserts a client and returns the generated IdClient.
func (r ClientRepository) Create(ctx context.Context, in models.ClientInput) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO Client (FirstName, LastName, Email, Telephone, Pesel)
		VALUES (?, ?, ?, ?, ?)`,
		strings.TrimSpace(in.FirstName),
		strings.TrimSpace(in.LastName),
		strings.TrimSpace(in.Email),
		intdb.NullIfEmpty(in.Telephone),
		intdb.NullIfEmpty(in.Pesel),
	)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read client id: %w", err)
	}
	return id, nil
}
