// dao/book_copy_dao.go
package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	app_errors "github.com/nmhung1294/INT3505E-02-demo/errors"
	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"github.com/nmhung1294/INT3505E-02-demo/model"
)

type BookCopyDAO struct {
	DB *gorm.DB
}

func NewBookCopyDAO(db *gorm.DB) *BookCopyDAO {
	return &BookCopyDAO{DB: db}
}

func (dao *BookCopyDAO) CreateBookCopy(ctx context.Context, copy model.BookCopy) (uint, error) {
	start := time.Now()

	var title model.BookTitle
	err := dao.DB.WithContext(ctx).First(&title, copy.BookTitleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, app_errors.ErrBookTitleNotFound
	}
	if err != nil {
		return 0, app_errors.ErrDatabaseOperation
	}

	if err := dao.DB.WithContext(ctx).Create(&copy).Error; err != nil {
		if isUniqueViolation(err) {
			return 0, app_errors.ErrDuplicateBarcode
		}
		logger.Error("Failed to create book copy",
			zap.Error(err),
			zap.String("barcode", copy.Barcode),
			zap.Duration("duration", time.Since(start)))
		return 0, app_errors.ErrDatabaseOperation
	}

	logger.Info("Book copy created",
		zap.Uint("bookCopyID", copy.ID),
		zap.String("barcode", copy.Barcode),
		zap.Duration("duration", time.Since(start)))
	return copy.ID, nil
}

func (dao *BookCopyDAO) UpdateBookCopy(ctx context.Context, id uint, updates map[string]interface{}) error {
	if _, err := dao.GetBookCopy(ctx, id); err != nil {
		return err
	}

	if err := dao.DB.WithContext(ctx).Model(&model.BookCopy{}).
		Where("id = ?", id).Updates(updates).Error; err != nil {
		logger.Error("Failed to update book copy", zap.Error(err), zap.Uint("bookCopyID", id))
		return app_errors.ErrDatabaseOperation
	}

	logger.Info("Book copy updated", zap.Uint("bookCopyID", id))
	return nil
}

func (dao *BookCopyDAO) DeleteBookCopy(ctx context.Context, id uint) error {
	if _, err := dao.GetBookCopy(ctx, id); err != nil {
		return err
	}

	borrowed, err := dao.HasActiveBorrowing(ctx, id)
	if err != nil {
		return err
	}
	if borrowed {
		return app_errors.ErrBookCopyBorrowed
	}

	if err := dao.DB.WithContext(ctx).Delete(&model.BookCopy{}, id).Error; err != nil {
		logger.Error("Failed to delete book copy", zap.Error(err), zap.Uint("bookCopyID", id))
		return app_errors.ErrDatabaseOperation
	}

	logger.Info("Book copy deleted", zap.Uint("bookCopyID", id))
	return nil
}

func (dao *BookCopyDAO) GetBookCopy(ctx context.Context, id uint) (*model.BookCopy, error) {
	var copy model.BookCopy
	err := dao.DB.WithContext(ctx).Preload("BookTitle").First(&copy, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_errors.ErrBookCopyNotFound
	}
	if err != nil {
		logger.Error("Failed to get book copy", zap.Error(err), zap.Uint("bookCopyID", id))
		return nil, app_errors.ErrDatabaseOperation
	}
	return &copy, nil
}

func (dao *BookCopyDAO) ListBookCopies(ctx context.Context, criteria model.BookCopySearchCriteria, limit, offset int) ([]model.BookCopy, int64, error) {
	query := dao.DB.WithContext(ctx).Model(&model.BookCopy{})

	if criteria.Available != nil {
		query = query.Where("available = ?", *criteria.Available)
	}
	if criteria.Condition != "" {
		query = query.Where("condition = ?", criteria.Condition)
	}
	if criteria.BookTitleID != 0 {
		query = query.Where("book_title_id = ?", criteria.BookTitleID)
	}
	if criteria.Search != "" {
		query = query.Where("barcode LIKE ?", "%"+criteria.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count book copies", zap.Error(err))
		return nil, 0, app_errors.ErrDatabaseOperation
	}

	var copies []model.BookCopy
	if err := query.Preload("BookTitle").Limit(limit).Offset(offset).Find(&copies).Error; err != nil {
		logger.Error("Failed to list book copies", zap.Error(err))
		return nil, 0, app_errors.ErrDatabaseOperation
	}

	return copies, total, nil
}

// HasActiveBorrowing reports whether the copy is currently out.
func (dao *BookCopyDAO) HasActiveBorrowing(ctx context.Context, copyID uint) (bool, error) {
	var count int64
	err := dao.DB.WithContext(ctx).Model(&model.Borrowing{}).
		Where("book_copy_id = ? AND return_date IS NULL", copyID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check active borrowing", zap.Error(err), zap.Uint("bookCopyID", copyID))
		return false, app_errors.ErrDatabaseOperation
	}
	return count > 0, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
