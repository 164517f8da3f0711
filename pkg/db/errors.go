package db

import "strings"

// IsUniqueViolation reports whether err references a Postgres unique
// violation. When constraintName is given, the error text must mention it.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}
