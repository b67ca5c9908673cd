// dao/book_title_dao.go
package dao

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	app_errors "github.com/nmhung1294/INT3505E-02-demo/errors"
	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"github.com/nmhung1294/INT3505E-02-demo/model"
)

type BookTitleDAO struct {
	DB *gorm.DB
}

func NewBookTitleDAO(db *gorm.DB) *BookTitleDAO {
	return &BookTitleDAO{DB: db}
}

func (dao *BookTitleDAO) CreateBookTitle(ctx context.Context, title model.BookTitle) (uint, error) {
	start := time.Now()
	if err := dao.DB.WithContext(ctx).Create(&title).Error; err != nil {
		logger.Error("Failed to create book title",
			zap.Error(err),
			zap.String("title", title.Title),
			zap.Duration("duration", time.Since(start)))
		return 0, app_errors.ErrDatabaseOperation
	}

	logger.Info("Book title created",
		zap.Uint("bookTitleID", title.ID),
		zap.Duration("duration", time.Since(start)))
	return title.ID, nil
}

func (dao *BookTitleDAO) UpdateBookTitle(ctx context.Context, title model.BookTitle) error {
	existing, err := dao.GetBookTitle(ctx, title.ID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"title":     title.Title,
		"author":    title.Author,
		"publisher": title.Publisher,
		"year":      title.Year,
		"category":  title.Category,
	}
	if err := dao.DB.WithContext(ctx).Model(&model.BookTitle{}).
		Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		logger.Error("Failed to update book title", zap.Error(err), zap.Uint("bookTitleID", title.ID))
		return app_errors.ErrDatabaseOperation
	}

	logger.Info("Book title updated", zap.Uint("bookTitleID", title.ID))
	return nil
}

func (dao *BookTitleDAO) DeleteBookTitle(ctx context.Context, id uint) error {
	title, err := dao.GetBookTitle(ctx, id)
	if err != nil {
		return err
	}
	if len(title.Copies) > 0 {
		return app_errors.ErrBookTitleHasCopies
	}

	if err := dao.DB.WithContext(ctx).Delete(&model.BookTitle{}, id).Error; err != nil {
		logger.Error("Failed to delete book title", zap.Error(err), zap.Uint("bookTitleID", id))
		return app_errors.ErrDatabaseOperation
	}

	logger.Info("Book title deleted", zap.Uint("bookTitleID", id))
	return nil
}

func (dao *BookTitleDAO) GetBookTitle(ctx context.Context, id uint) (*model.BookTitle, error) {
	var title model.BookTitle
	err := dao.DB.WithContext(ctx).Preload("Copies").First(&title, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_errors.ErrBookTitleNotFound
	}
	if err != nil {
		logger.Error("Failed to get book title", zap.Error(err), zap.Uint("bookTitleID", id))
		return nil, app_errors.ErrDatabaseOperation
	}
	return &title, nil
}

func (dao *BookTitleDAO) ListBookTitles(ctx context.Context, criteria model.BookTitleSearchCriteria, limit, offset int) ([]model.BookTitle, int64, error) {
	query := dao.DB.WithContext(ctx).Model(&model.BookTitle{})

	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.Search != "" {
		pattern := "%" + criteria.Search + "%"
		query = query.Where("title LIKE ? OR author LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count book titles", zap.Error(err))
		return nil, 0, app_errors.ErrDatabaseOperation
	}

	var titles []model.BookTitle
	if err := query.Preload("Copies").Limit(limit).Offset(offset).Find(&titles).Error; err != nil {
		logger.Error("Failed to list book titles", zap.Error(err))
		return nil, 0, app_errors.ErrDatabaseOperation
	}

	return titles, total, nil
}
