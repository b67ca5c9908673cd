// util/validation_util.go

package util

import (
	"fmt"
	"strings"

	apperrors "github.com/nmhung1294/INT3505E-02-demo/errors"
	"github.com/nmhung1294/INT3505E-02-demo/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateUser(user model.User) error {
	if user.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrInvalidUserData)
	}
	if user.Email == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrInvalidUserData)
	}
	if !strings.Contains(user.Email, "@") {
		return fmt.Errorf("%w: email is not a valid address", apperrors.ErrInvalidUserData)
	}
	return nil
}

func (v *ValidationUtil) ValidateBookTitle(title model.BookTitle) error {
	if title.Title == "" {
		return fmt.Errorf("%w: title cannot be empty", apperrors.ErrInvalidBookTitleData)
	}
	if title.Author == "" {
		return fmt.Errorf("%w: author cannot be empty", apperrors.ErrInvalidBookTitleData)
	}
	return nil
}

func (v *ValidationUtil) ValidateBookCopy(copy model.BookCopy) error {
	if copy.BookTitleID == 0 {
		return fmt.Errorf("%w: book copy must reference a book title", apperrors.ErrInvalidBookCopyData)
	}
	if copy.Barcode == "" {
		return fmt.Errorf("%w: barcode cannot be empty", apperrors.ErrInvalidBookCopyData)
	}
	if copy.Condition != "" && !v.ValidCondition(copy.Condition) {
		return fmt.Errorf("%w: condition must be one of %s", apperrors.ErrInvalidBookCopyData,
			strings.Join([]string{model.ConditionGood, model.ConditionDamaged, model.ConditionLost}, ", "))
	}
	return nil
}

func (v *ValidationUtil) ValidCondition(condition string) bool {
	switch condition {
	case model.ConditionGood, model.ConditionDamaged, model.ConditionLost:
		return true
	}
	return false
}

func (v *ValidationUtil) ValidateBorrowing(borrowing model.Borrowing) error {
	if borrowing.BookCopyID == 0 {
		return fmt.Errorf("%w: borrowing must reference a book copy", apperrors.ErrInvalidBorrowingData)
	}
	if borrowing.UserID == 0 {
		return fmt.Errorf("%w: borrowing must reference a user", apperrors.ErrInvalidBorrowingData)
	}
	return nil
}
