package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	intdb "travel/internal/db"
	"travel/internal/domain"
	"travel/internal/repositories"
	"travel/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

// AuthService issues and verifies operator bearer tokens.
type AuthService struct {
	Users     repositories.UserRepository
	Secret    []byte
	TTL       time.Duration
	Now       domain.Clock
	RequestID string
}

type operatorClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks the operator password and returns a signed token.
func (s AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ValidationError{Msg: "email and password are required"}
	}
	if len(s.Secret) == 0 {
		return "", domain.InternalError{Msg: "auth is not configured"}
	}

	user, found, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	if !found {
		return "", domain.UnauthorizedError{Msg: "invalid email or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.UnauthorizedError{Msg: "invalid email or password", Err: err}
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	now := s.now()
	claims := operatorClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", domain.InternalError{Err: fmt.Errorf("sign token: %w", err)}
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", user.ID))
	return token, nil
}

// ParseToken verifies raw and returns the operator it was issued to.
func (s AuthService) ParseToken(raw string) (domain.RequestContext, error) {
	claims := &operatorClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token", Err: err}
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token subject", Err: err}
	}
	return domain.RequestContext{
		UserID: domain.ID(id),
		Role:   domain.Role(claims.Role),
		Email:  claims.Email,
	}, nil
}

// EnsureAdmin creates an admin account for email unless one already exists.
// created reports whether a row was inserted.
func (s AuthService) EnsureAdmin(ctx context.Context, email, password string) (created bool, err error) {
	if email == "" || password == "" {
		return false, domain.ValidationError{Msg: "admin email and password are required"}
	}

	_, found, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	if found {
		return false, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, domain.InternalError{Err: fmt.Errorf("hash password: %w", err)}
	}
	id, err := s.Users.Create(ctx, email, hash, string(domain.RoleAdmin))
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return false, nil
		}
		return false, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "bootstrap_admin", fmt.Sprintf("user_id=%d", id))
	return true, nil
}

// HashPassword bcrypt-hashes an operator password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
