package service

import (
	"context"

	"github.com/nmhung1294/INT3505E-02-demo/dao"
	apperrors "github.com/nmhung1294/INT3505E-02-demo/errors"
	"github.com/nmhung1294/INT3505E-02-demo/model"
	"github.com/nmhung1294/INT3505E-02-demo/util"
)

type IBookCopyService interface {
	CreateBookCopy(ctx context.Context, copy model.BookCopy) (*model.BookCopy, error)
	UpdateBookCopy(ctx context.Context, id uint, update model.BookCopyUpdate) (*model.BookCopy, error)
	DeleteBookCopy(ctx context.Context, id uint) error
	GetBookCopy(ctx context.Context, id uint) (*model.BookCopy, error)
	ListBookCopies(ctx context.Context, criteria model.BookCopySearchCriteria, limit, offset int) ([]model.BookCopy, int64, error)
}

type BookCopyService struct {
	copyDAO        *dao.BookCopyDAO
	validationUtil *util.ValidationUtil
}

func NewBookCopyService(copyDAO *dao.BookCopyDAO, validationUtil *util.ValidationUtil) *BookCopyService {
	return &BookCopyService{copyDAO: copyDAO, validationUtil: validationUtil}
}

func (s *BookCopyService) CreateBookCopy(ctx context.Context, copy model.BookCopy) (*model.BookCopy, error) {
	if err := s.validationUtil.ValidateBookCopy(copy); err != nil {
		return nil, err
	}
	id, err := s.copyDAO.CreateBookCopy(ctx, copy)
	if err != nil {
		return nil, err
	}
	return s.copyDAO.GetBookCopy(ctx, id)
}

func (s *BookCopyService) UpdateBookCopy(ctx context.Context, id uint, update model.BookCopyUpdate) (*model.BookCopy, error) {
	updates := map[string]interface{}{}
	if update.Available != nil {
		updates["available"] = *update.Available
	}
	if update.Condition != nil {
		if !s.validationUtil.ValidCondition(*update.Condition) {
			return nil, apperrors.ErrInvalidBookCopyData
		}
		updates["condition"] = *update.Condition
	}
	if len(updates) > 0 {
		if err := s.copyDAO.UpdateBookCopy(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.copyDAO.GetBookCopy(ctx, id)
}

func (s *BookCopyService) DeleteBookCopy(ctx context.Context, id uint) error {
	return s.copyDAO.DeleteBookCopy(ctx, id)
}

func (s *BookCopyService) GetBookCopy(ctx context.Context, id uint) (*model.BookCopy, error) {
	return s.copyDAO.GetBookCopy(ctx, id)
}

func (s *BookCopyService) ListBookCopies(ctx context.Context, criteria model.BookCopySearchCriteria, limit, offset int) ([]model.BookCopy, int64, error) {
	return s.copyDAO.ListBookCopies(ctx, criteria, limit, offset)
}
