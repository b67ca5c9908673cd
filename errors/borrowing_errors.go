// errors/borrowing_errors.go
package errors

import "errors"

var (
	ErrBorrowingNotFound    = errors.New("borrowing not found")
	ErrAlreadyReturned      = errors.New("book already returned")
	ErrInvalidBorrowingData = errors.New("invalid borrowing data")
)
