// errors/common_errors.go
package errors

import "errors"

var (
	ErrGoogleNotConfigured = errors.New("google oauth is not configured")
	ErrDatabaseOperation   = errors.New("database operation failed")
)
