// Package repository implements data persistence for vault entities.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). Driver constraint errors are mapped to domain conflict
// errors so a race with a concurrent write surfaces as a referential
// integrity failure instead of leaking driver detail.
package repository

import (
	"strings"
)

// isUniqueViolation reports whether err is a unique constraint violation for
// either supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint"
	// MySQL: "Error 1062 ... Duplicate entry"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry")
}

// isForeignKeyViolation reports whether err is a foreign key constraint
// violation for either supported driver.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL: "violates foreign key constraint"
	// MySQL: "a foreign key constraint fails" (errors 1451/1452)
	return strings.Contains(msg, "foreign key constraint")
}
