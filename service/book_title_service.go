package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nmhung1294/INT3505E-02-demo/dao"
	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"github.com/nmhung1294/INT3505E-02-demo/model"
	"github.com/nmhung1294/INT3505E-02-demo/util"
	"go.uber.org/zap"
)

type IBookTitleService interface {
	CreateBookTitle(ctx context.Context, title model.BookTitle) (*model.BookTitle, error)
	UpdateBookTitle(ctx context.Context, title model.BookTitle) (*model.BookTitle, error)
	DeleteBookTitle(ctx context.Context, id uint) error
	GetBookTitle(ctx context.Context, id uint) (*model.BookTitle, error)
	GetBookTitleStatistics(ctx context.Context, id uint) (*model.BookTitleStatistics, error)
	ListBookTitles(ctx context.Context, criteria model.BookTitleSearchCriteria, limit, offset int) ([]model.BookTitle, int64, error)
}

type BookTitleService struct {
	titleDAO       *dao.BookTitleDAO
	borrowingDAO   *dao.BorrowingDAO
	validationUtil *util.ValidationUtil
}

func NewBookTitleService(titleDAO *dao.BookTitleDAO, borrowingDAO *dao.BorrowingDAO, validationUtil *util.ValidationUtil) *BookTitleService {
	return &BookTitleService{
		titleDAO:       titleDAO,
		borrowingDAO:   borrowingDAO,
		validationUtil: validationUtil,
	}
}

func (s *BookTitleService) CreateBookTitle(ctx context.Context, title model.BookTitle) (*model.BookTitle, error) {
	if err := s.validationUtil.ValidateBookTitle(title); err != nil {
		return nil, err
	}
	id, err := s.titleDAO.CreateBookTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return s.titleDAO.GetBookTitle(ctx, id)
}

func (s *BookTitleService) UpdateBookTitle(ctx context.Context, title model.BookTitle) (*model.BookTitle, error) {
	if err := s.validationUtil.ValidateBookTitle(title); err != nil {
		return nil, err
	}
	if err := s.titleDAO.UpdateBookTitle(ctx, title); err != nil {
		return nil, err
	}
	return s.titleDAO.GetBookTitle(ctx, title.ID)
}

func (s *BookTitleService) DeleteBookTitle(ctx context.Context, id uint) error {
	return s.titleDAO.DeleteBookTitle(ctx, id)
}

func (s *BookTitleService) GetBookTitle(ctx context.Context, id uint) (*model.BookTitle, error) {
	return s.titleDAO.GetBookTitle(ctx, id)
}

// GetBookTitleStatistics aggregates copy availability for a title. The
// title fetch and the open-borrowing count hit different tables, so they
// run concurrently.
func (s *BookTitleService) GetBookTitleStatistics(ctx context.Context, id uint) (*model.BookTitleStatistics, error) {
	var (
		title  *model.BookTitle
		active int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		title, err = s.titleDAO.GetBookTitle(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		active, err = s.borrowingDAO.CountActiveForTitle(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &model.BookTitleStatistics{
		TotalCopies:     len(title.Copies),
		BorrowedCopies:  int(active),
		ConditionCounts: map[string]int{},
	}
	for _, copy := range title.Copies {
		if copy.Available {
			stats.AvailableCopies++
		}
		stats.ConditionCounts[copy.Condition]++
	}

	logger.Debug("Computed book title statistics",
		zap.Uint("bookTitleID", id),
		zap.Int("totalCopies", stats.TotalCopies),
		zap.Int("borrowedCopies", stats.BorrowedCopies))
	return stats, nil
}

func (s *BookTitleService) ListBookTitles(ctx context.Context, criteria model.BookTitleSearchCriteria, limit, offset int) ([]model.BookTitle, int64, error) {
	return s.titleDAO.ListBookTitles(ctx, criteria, limit, offset)
}
