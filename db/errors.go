package db

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicate is returned by implementations when an insert trips a unique
// constraint (e.g. a second follow edge for the same ordered pair). Callers
// match it with errors.Is instead of inspecting driver errors.
var ErrDuplicate = errors.New("duplicate row")

const mysqlDupEntry = 1062

// IsDupKeyErr reports whether err is a MySQL duplicate-key violation.
func IsDupKeyErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDupEntry
}
