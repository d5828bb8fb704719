package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullIfEmpty(t *testing.T) {
	blank := "   "
	value := " 123 "
	assert.Nil(t, NullIfEmpty(nil))
	assert.Nil(t, NullIfEmpty(&blank))
	assert.Equal(t, "123", NullIfEmpty(&value))
}

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-2' for key 'PRIMARY'"}
	assert.True(t, IsDuplicateKey(dup))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert registration: %w", dup)))
	assert.False(t, IsDuplicateKey(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsDuplicateKey(errors.New("boom")))
}

func TestEnsureSchemaAppliesEveryStatement(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()

	stmts := Statements()
	require.Len(t, stmts, 6)
	for range stmts {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, EnsureSchema(context.Background(), sqlx.NewDb(raw, "mysql")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaStopsOnError(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS Country").WillReturnError(errors.New("denied"))

	err = EnsureSchema(context.Background(), sqlx.NewDb(raw, "mysql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
	require.NoError(t, mock.ExpectationsWereMet())
}
