// dao/borrowing_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nmhung1294/INT3505E-02-demo/audit"
	app_errors "github.com/nmhung1294/INT3505E-02-demo/errors"
	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"github.com/nmhung1294/INT3505E-02-demo/model"
)

type BorrowingDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewBorrowingDAO(db *gorm.DB, auditService audit.Service) *BorrowingDAO {
	return &BorrowingDAO{DB: db, AuditService: auditService}
}

// BorrowBook creates the borrowing and marks the copy unavailable in one
// transaction. The copy must still be available inside the transaction,
// otherwise two concurrent borrows could both succeed.
func (dao *BorrowingDAO) BorrowBook(ctx context.Context, borrowing model.Borrowing) (*model.Borrowing, error) {
	start := time.Now()

	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var copy model.BookCopy
		if err := tx.First(&copy, borrowing.BookCopyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return app_errors.ErrBookCopyNotFound
			}
			return app_errors.ErrDatabaseOperation
		}
		if !copy.Available {
			return app_errors.ErrBookCopyUnavailable
		}

		if err := tx.Create(&borrowing).Error; err != nil {
			return app_errors.ErrDatabaseOperation
		}
		if err := tx.Model(&model.BookCopy{}).Where("id = ?", copy.ID).
			Update("available", false).Error; err != nil {
			return app_errors.ErrDatabaseOperation
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to borrow book",
			zap.Error(err),
			zap.Uint("bookCopyID", borrowing.BookCopyID),
			zap.Uint("userID", borrowing.UserID),
			zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	logger.Info("Book borrowed",
		zap.Uint("borrowingID", borrowing.ID),
		zap.Uint("bookCopyID", borrowing.BookCopyID),
		zap.Uint("userID", borrowing.UserID),
		zap.Duration("duration", time.Since(start)))

	dao.logAudit(ctx, audit.AuditLog{
		Timestamp: time.Now(),
		UserID:    fmt.Sprint(borrowing.UserID),
		Action:    audit.ActionBookBorrowed,
		Resource:  fmt.Sprintf("borrowing:%d", borrowing.ID),
		Success:   true,
	})

	return dao.GetBorrowing(ctx, borrowing.ID)
}

// ReturnBook stamps the return, records the fine and frees the copy in one
// transaction.
func (dao *BorrowingDAO) ReturnBook(ctx context.Context, id uint, returnDate time.Time, fine float64) (*model.Borrowing, error) {
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var borrowing model.Borrowing
		if err := tx.First(&borrowing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return app_errors.ErrBorrowingNotFound
			}
			return app_errors.ErrDatabaseOperation
		}
		if borrowing.ReturnDate != nil {
			return app_errors.ErrAlreadyReturned
		}

		if err := tx.Model(&model.Borrowing{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"return_date": returnDate,
				"fine":        fine,
			}).Error; err != nil {
			return app_errors.ErrDatabaseOperation
		}
		if err := tx.Model(&model.BookCopy{}).Where("id = ?", borrowing.BookCopyID).
			Update("available", true).Error; err != nil {
			return app_errors.ErrDatabaseOperation
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to return book", zap.Error(err), zap.Uint("borrowingID", id))
		return nil, err
	}

	borrowing, getErr := dao.GetBorrowing(ctx, id)
	if getErr != nil {
		return nil, getErr
	}

	logger.Info("Book returned",
		zap.Uint("borrowingID", id),
		zap.Float64("fine", fine))

	dao.logAudit(ctx, audit.AuditLog{
		Timestamp: time.Now(),
		UserID:    fmt.Sprint(borrowing.UserID),
		Action:    audit.ActionBookReturned,
		Resource:  fmt.Sprintf("borrowing:%d", id),
		Success:   true,
	})

	return borrowing, nil
}

func (dao *BorrowingDAO) GetBorrowing(ctx context.Context, id uint) (*model.Borrowing, error) {
	var borrowing model.Borrowing
	err := dao.DB.WithContext(ctx).
		Preload("BookCopy").Preload("BookCopy.BookTitle").Preload("User").
		First(&borrowing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_errors.ErrBorrowingNotFound
	}
	if err != nil {
		logger.Error("Failed to get borrowing", zap.Error(err), zap.Uint("borrowingID", id))
		return nil, app_errors.ErrDatabaseOperation
	}
	return &borrowing, nil
}

func (dao *BorrowingDAO) ListBorrowings(ctx context.Context, criteria model.BorrowingSearchCriteria, limit, offset int) ([]model.Borrowing, int64, error) {
	query := dao.DB.WithContext(ctx).Model(&model.Borrowing{})

	switch criteria.Status {
	case model.BorrowingStatusActive:
		query = query.Where("return_date IS NULL")
	case model.BorrowingStatusReturned:
		query = query.Where("return_date IS NOT NULL")
	case model.BorrowingStatusOverdue:
		query = query.Where("return_date IS NULL AND due_date < ?", time.Now())
	}
	if criteria.UserID != 0 {
		query = query.Where("user_id = ?", criteria.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count borrowings", zap.Error(err))
		return nil, 0, app_errors.ErrDatabaseOperation
	}

	var borrowings []model.Borrowing
	if err := query.Preload("BookCopy").Preload("User").
		Limit(limit).Offset(offset).Find(&borrowings).Error; err != nil {
		logger.Error("Failed to list borrowings", zap.Error(err))
		return nil, 0, app_errors.ErrDatabaseOperation
	}

	return borrowings, total, nil
}

// CountActiveForTitle counts open borrowings across all copies of a title.
func (dao *BorrowingDAO) CountActiveForTitle(ctx context.Context, titleID uint) (int64, error) {
	var count int64
	err := dao.DB.WithContext(ctx).Model(&model.Borrowing{}).
		Joins("JOIN book_copy ON book_copy.id = borrowing.book_copy_id").
		Where("book_copy.book_title_id = ? AND borrowing.return_date IS NULL", titleID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count active borrowings", zap.Error(err), zap.Uint("bookTitleID", titleID))
		return 0, app_errors.ErrDatabaseOperation
	}
	return count, nil
}

func (dao *BorrowingDAO) logAudit(ctx context.Context, log audit.AuditLog) {
	if dao.AuditService == nil {
		return
	}
	if err := dao.AuditService.LogAction(ctx, log); err != nil {
		logger.Warn("Failed to write audit log", zap.Error(err), zap.String("action", log.Action))
	}
}
