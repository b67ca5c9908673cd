// test/mock/services.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nmhung1294/INT3505E-02-demo/model"
)

// MockUserService is a mock implementation of service.IUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, user model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email string) (*model.User, string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockUserService) GoogleAuthURL() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockUserService) LoginWithGoogle(ctx context.Context, code string) (*model.User, string, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockUserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) FindUserBySubject(ctx context.Context, subject string) (*model.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockBookTitleService is a mock implementation of service.IBookTitleService
type MockBookTitleService struct {
	mock.Mock
}

func (m *MockBookTitleService) CreateBookTitle(ctx context.Context, title model.BookTitle) (*model.BookTitle, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookTitle), args.Error(1)
}

func (m *MockBookTitleService) UpdateBookTitle(ctx context.Context, title model.BookTitle) (*model.BookTitle, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookTitle), args.Error(1)
}

func (m *MockBookTitleService) DeleteBookTitle(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookTitleService) GetBookTitle(ctx context.Context, id uint) (*model.BookTitle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookTitle), args.Error(1)
}

func (m *MockBookTitleService) GetBookTitleStatistics(ctx context.Context, id uint) (*model.BookTitleStatistics, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookTitleStatistics), args.Error(1)
}

func (m *MockBookTitleService) ListBookTitles(ctx context.Context, criteria model.BookTitleSearchCriteria, limit, offset int) ([]model.BookTitle, int64, error) {
	args := m.Called(ctx, criteria, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.BookTitle), args.Get(1).(int64), args.Error(2)
}

// MockBookCopyService is a mock implementation of service.IBookCopyService
type MockBookCopyService struct {
	mock.Mock
}

func (m *MockBookCopyService) CreateBookCopy(ctx context.Context, copy model.BookCopy) (*model.BookCopy, error) {
	args := m.Called(ctx, copy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookCopy), args.Error(1)
}

func (m *MockBookCopyService) UpdateBookCopy(ctx context.Context, id uint, update model.BookCopyUpdate) (*model.BookCopy, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookCopy), args.Error(1)
}

func (m *MockBookCopyService) DeleteBookCopy(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookCopyService) GetBookCopy(ctx context.Context, id uint) (*model.BookCopy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookCopy), args.Error(1)
}

func (m *MockBookCopyService) ListBookCopies(ctx context.Context, criteria model.BookCopySearchCriteria, limit, offset int) ([]model.BookCopy, int64, error) {
	args := m.Called(ctx, criteria, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.BookCopy), args.Get(1).(int64), args.Error(2)
}

// MockBorrowingService is a mock implementation of service.IBorrowingService
type MockBorrowingService struct {
	mock.Mock
}

func (m *MockBorrowingService) BorrowBook(ctx context.Context, userID, bookCopyID uint, dueDate *time.Time) (*model.Borrowing, error) {
	args := m.Called(ctx, userID, bookCopyID, dueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Borrowing), args.Error(1)
}

func (m *MockBorrowingService) ReturnBook(ctx context.Context, id uint) (*model.Borrowing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Borrowing), args.Error(1)
}

func (m *MockBorrowingService) GetBorrowing(ctx context.Context, id uint) (*model.Borrowing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Borrowing), args.Error(1)
}

func (m *MockBorrowingService) ListBorrowings(ctx context.Context, criteria model.BorrowingSearchCriteria, limit, offset int) ([]model.Borrowing, int64, error) {
	args := m.Called(ctx, criteria, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Borrowing), args.Get(1).(int64), args.Error(2)
}
