package services

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"travel/internal/domain"
	"travel/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var qUserByEmail = regexp.QuoteMeta("SELECT IdUser, Email, PasswordHash, Role FROM AppUser WHERE Email = ? LIMIT 1")

func hashForTest(t *testing.T, pw string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func authSvc(db *sqlx.DB, now time.Time) AuthService {
	return AuthService{
		Users:  repositories.UserRepository{DB: db},
		Secret: []byte("test-secret"),
		TTL:    time.Hour,
		Now:    func() time.Time { return now },
	}
}

func expectUser(mock sqlmock.Sqlmock, email, hash, role string) {
	mock.ExpectQuery(qUserByEmail).WithArgs(email).
		WillReturnRows(sqlmock.NewRows([]string{"IdUser", "Email", "PasswordHash", "Role"}).
			AddRow(int64(7), email, hash, role))
}

func TestLoginIssuesParsableToken(t *testing.T) {
	db, mock := newMockDB(t)
	expectUser(mock, "ops@travel.test", hashForTest(t, "s3cret"), "operator")

	svc := authSvc(db, time.Now())
	token, err := svc.Login(context.Background(), "ops@travel.test", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	op, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.ID(7), op.UserID)
	assert.Equal(t, domain.RoleOperator, op.Role)
	assert.Equal(t, "ops@travel.test", op.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := newMockDB(t)
	expectUser(mock, "ops@travel.test", hashForTest(t, "s3cret"), "operator")

	_, err := authSvc(db, time.Now()).Login(context.Background(), "ops@travel.test", "guess")
	require.True(t, domain.IsUnauthorized(err), "got %v", err)
}

func TestLoginUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(qUserByEmail).WithArgs("nobody@travel.test").
		WillReturnRows(sqlmock.NewRows([]string{"IdUser", "Email", "PasswordHash", "Role"}))

	_, err := authSvc(db, time.Now()).Login(context.Background(), "nobody@travel.test", "x")
	require.True(t, domain.IsUnauthorized(err), "got %v", err)
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestLoginRequiresCredentialsAndSecret(t *testing.T) {
	db, _ := newMockDB(t)

	_, err := authSvc(db, time.Now()).Login(context.Background(), "", "x")
	require.True(t, domain.IsValidation(err))

	svc := authSvc(db, time.Now())
	svc.Secret = nil
	_, err = svc.Login(context.Background(), "ops@travel.test", "x")
	require.True(t, domain.IsInternal(err))
}

func TestParseTokenRejectsExpiredAndForeignTokens(t *testing.T) {
	db, mock := newMockDB(t)
	expectUser(mock, "ops@travel.test", hashForTest(t, "s3cret"), "admin")

	issued := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	token, err := authSvc(db, issued).Login(context.Background(), "ops@travel.test", "s3cret")
	require.NoError(t, err)

	_, err = authSvc(db, issued.Add(30*time.Minute)).ParseToken(token)
	require.NoError(t, err)

	_, err = authSvc(db, issued.Add(2*time.Hour)).ParseToken(token)
	require.True(t, domain.IsUnauthorized(err), "got %v", err)

	other := authSvc(db, issued.Add(30*time.Minute))
	other.Secret = []byte("another-secret")
	_, err = other.ParseToken(token)
	require.True(t, domain.IsUnauthorized(err), "got %v", err)

	_, err = other.ParseToken("not-a-token")
	require.True(t, domain.IsUnauthorized(err))
}

func TestHashPasswordMatches(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw")))
}

func TestEnsureAdminCreatesMissingAccount(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(qUserByEmail).WithArgs("root@travel.test").
		WillReturnRows(sqlmock.NewRows([]string{"IdUser", "Email", "PasswordHash", "Role"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO AppUser (Email, PasswordHash, Role) VALUES (?, ?, ?)")).
		WithArgs("root@travel.test", sqlmock.AnyArg(), "admin").
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := authSvc(db, time.Now()).EnsureAdmin(context.Background(), "root@travel.test", "changeme")
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureAdminThenLogin(t *testing.T) {
	db, mock := newMockDB(t)

	var stored string
	mock.ExpectQuery(qUserByEmail).WithArgs("root@travel.test").
		WillReturnRows(sqlmock.NewRows([]string{"IdUser", "Email", "PasswordHash", "Role"}))
	mock.ExpectExec("INSERT INTO AppUser").
		WithArgs("root@travel.test", hashCapture{&stored}, "admin").
		WillReturnResult(sqlmock.NewResult(1, 1))

	svc := authSvc(db, time.Now())
	_, err := svc.EnsureAdmin(context.Background(), "root@travel.test", "changeme")
	require.NoError(t, err)
	require.NotEmpty(t, stored)

	expectUser(mock, "root@travel.test", stored, "admin")
	token, err := svc.Login(context.Background(), "root@travel.test", "changeme")
	require.NoError(t, err)
	op, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, op.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureAdminKeepsExistingAccount(t *testing.T) {
	db, mock := newMockDB(t)
	expectUser(mock, "root@travel.test", "$2a$04$existing", "admin")

	created, err := authSvc(db, time.Now()).EnsureAdmin(context.Background(), "root@travel.test", "changeme")
	require.NoError(t, err)
	assert.False(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureAdminConcurrentInsert(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(qUserByEmail).
		WillReturnRows(sqlmock.NewRows([]string{"IdUser", "Email", "PasswordHash", "Role"}))
	mock.ExpectExec("INSERT INTO AppUser").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	created, err := authSvc(db, time.Now()).EnsureAdmin(context.Background(), "root@travel.test", "changeme")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestEnsureAdminRequiresCredentials(t *testing.T) {
	db, _ := newMockDB(t)
	_, err := authSvc(db, time.Now()).EnsureAdmin(context.Background(), "root@travel.test", "")
	require.True(t, domain.IsValidation(err))
}

// hashCapture matches any string argument and keeps it.
type hashCapture struct{ dst *string }

func (h hashCapture) Match(v driver.Value) bool {
	s, ok := v.(string)
	if ok {
		*h.dst = s
	}
	return ok
}
