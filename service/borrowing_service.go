package service

import (
	"context"
	"math"
	"time"

	"github.com/nmhung1294/INT3505E-02-demo/dao"
	"github.com/nmhung1294/INT3505E-02-demo/model"
	"github.com/nmhung1294/INT3505E-02-demo/util"
)

const defaultLoanPeriod = 14 * 24 * time.Hour

type IBorrowingService interface {
	BorrowBook(ctx context.Context, userID, bookCopyID uint, dueDate *time.Time) (*model.Borrowing, error)
	ReturnBook(ctx context.Context, id uint) (*model.Borrowing, error)
	GetBorrowing(ctx context.Context, id uint) (*model.Borrowing, error)
	ListBorrowings(ctx context.Context, criteria model.BorrowingSearchCriteria, limit, offset int) ([]model.Borrowing, int64, error)
}

type BorrowingService struct {
	borrowingDAO   *dao.BorrowingDAO
	validationUtil *util.ValidationUtil
	eventBus       *util.EventBus
	finePerDay     float64
	now            func() time.Time
}

func NewBorrowingService(borrowingDAO *dao.BorrowingDAO, validationUtil *util.ValidationUtil, eventBus *util.EventBus, finePerDay float64) *BorrowingService {
	return &BorrowingService{
		borrowingDAO:   borrowingDAO,
		validationUtil: validationUtil,
		eventBus:       eventBus,
		finePerDay:     finePerDay,
		now:            time.Now,
	}
}

// BorrowBook lends a copy to a user. A missing due date defaults to the
// standard loan period.
func (s *BorrowingService) BorrowBook(ctx context.Context, userID, bookCopyID uint, dueDate *time.Time) (*model.Borrowing, error) {
	if dueDate == nil {
		d := s.now().Add(defaultLoanPeriod)
		dueDate = &d
	}
	borrowing := model.Borrowing{
		BookCopyID: bookCopyID,
		UserID:     userID,
		DueDate:    dueDate,
	}
	if err := s.validationUtil.ValidateBorrowing(borrowing); err != nil {
		return nil, err
	}
	created, err := s.borrowingDAO.BorrowBook(ctx, borrowing)
	if err != nil {
		return nil, err
	}
	s.eventBus.Publish(ctx, util.EventBookBorrowed, created)
	return created, nil
}

// ReturnBook closes a borrowing, charging a fine for every started day
// past the due date.
func (s *BorrowingService) ReturnBook(ctx context.Context, id uint) (*model.Borrowing, error) {
	borrowing, err := s.borrowingDAO.GetBorrowing(ctx, id)
	if err != nil {
		return nil, err
	}

	returnDate := s.now()
	fine := s.FineFor(borrowing, returnDate)

	returned, err := s.borrowingDAO.ReturnBook(ctx, id, returnDate, fine)
	if err != nil {
		return nil, err
	}
	s.eventBus.Publish(ctx, util.EventBookReturned, returned)
	return returned, nil
}

// FineFor computes the fine owed when a borrowing is returned at the
// given time. Partial overdue days count as full days.
func (s *BorrowingService) FineFor(borrowing *model.Borrowing, returnedAt time.Time) float64 {
	if !borrowing.Overdue(returnedAt) {
		return 0
	}
	overdueDays := math.Ceil(returnedAt.Sub(*borrowing.DueDate).Hours() / 24)
	return overdueDays * s.finePerDay
}

func (s *BorrowingService) GetBorrowing(ctx context.Context, id uint) (*model.Borrowing, error) {
	return s.borrowingDAO.GetBorrowing(ctx, id)
}

func (s *BorrowingService) ListBorrowings(ctx context.Context, criteria model.BorrowingSearchCriteria, limit, offset int) ([]model.Borrowing, int64, error) {
	return s.borrowingDAO.ListBorrowings(ctx, criteria, limit, offset)
}
