package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "travel/internal/config"
	"travel/internal/domain/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	DB *sqlx.DB
}

func (r UserRepository) db() *sqlx.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByEmail returns the operator account; found is false when none matches.
func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, bool, error) {
	var u models.User
	err := sqlx.GetContext(ctx, r.db(), &u,
		`SELECT IdUser, Email, PasswordHash, Role FROM AppUser WHERE Email = ? LIMIT 1`,
		strings.TrimSpace(email))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("load user: %w", err)
	}
	return u, true, nil
}

// Create inserts an operator account and returns its IdUser.
func (r UserRepository) Create(ctx context.Context, email, passwordHash, role string) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO AppUser (Email, PasswordHash, Role) VALUES (?, ?, ?)`,
		strings.TrimSpace(email), passwordHash, role)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read user id: %w", err)
	}
	return id, nil
}
