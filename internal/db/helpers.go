package db

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ER_DUP_ENTRY
const errDupEntry uint16 = 1062

// NullIfEmpty stores blank optional strings as NULL.
func NullIfEmpty(s *string) any {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return v
}

// IsDuplicateKey reports whether err is a unique/primary key violation.
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == errDupEntry
}
