// Package repository implements data persistence for identity entities.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). Driver constraint errors are mapped to domain conflict
// errors; for users the violated column is sniffed from the constraint name
// so the caller learns which field collided.
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
	return strings.Contains(msg, "foreign key constraint")
}

// violatesColumn reports whether the constraint error mentions the given
// column. Both drivers embed the index name, which carries the column name.
func violatesColumn(err error, column string) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), column)
}
