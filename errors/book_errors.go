// errors/book_errors.go
package errors

import "errors"

var (
	ErrBookTitleNotFound    = errors.New("book title not found")
	ErrInvalidBookTitleData = errors.New("invalid book title data")
	ErrBookTitleHasCopies   = errors.New("cannot delete a title with copies")

	ErrBookCopyNotFound    = errors.New("book copy not found")
	ErrInvalidBookCopyData = errors.New("invalid book copy data")
	ErrDuplicateBarcode    = errors.New("duplicate barcode")
	ErrBookCopyBorrowed    = errors.New("book copy currently borrowed")
	ErrBookCopyUnavailable = errors.New("book copy not available")
)
