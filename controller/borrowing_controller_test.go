// controller/borrowing_controller_test.go
package controller

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	"github.com/nmhung1294/INT3505E-02-demo/cache"
	apperrors "github.com/nmhung1294/INT3505E-02-demo/errors"
	"github.com/nmhung1294/INT3505E-02-demo/model"
	"github.com/nmhung1294/INT3505E-02-demo/test/mock"
)

func newBorrowingRouter(svc *mock.MockBorrowingService, user *model.User) (*gin.Engine, *cache.TTLCache) {
	responseCache := cache.New(time.Minute)
	ctrl := NewBorrowingController(svc, responseCache)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if user != nil {
			c.Set("currentUser", user)
		}
		c.Next()
	})
	api := router.Group("/api")
	ctrl.RegisterRoutes(api)
	return router, responseCache
}

func TestBorrowBook(t *testing.T) {
	svc := new(mock.MockBorrowingService)
	user := &model.User{ID: 5, Name: "Carol", Email: "carol@example.com"}
	router, _ := newBorrowingRouter(svc, user)

	borrowing := &model.Borrowing{ID: 1, BookCopyID: 9, UserID: 5}
	svc.On("BorrowBook", tmock.Anything, uint(5), uint(9), (*time.Time)(nil)).
		Return(borrowing, nil).Once()

	w := doJSON(router, http.MethodPost, "/api/borrowings", gin.H{"book_copy_id": 9})
	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestBorrowBookRequiresPrincipal(t *testing.T) {
	svc := new(mock.MockBorrowingService)
	router, _ := newBorrowingRouter(svc, nil)

	w := doJSON(router, http.MethodPost, "/api/borrowings", gin.H{"book_copy_id": 9})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "BorrowBook")
}

func TestBorrowBookUnavailableCopy(t *testing.T) {
	svc := new(mock.MockBorrowingService)
	user := &model.User{ID: 5}
	router, _ := newBorrowingRouter(svc, user)

	svc.On("BorrowBook", tmock.Anything, uint(5), uint(9), (*time.Time)(nil)).
		Return(nil, apperrors.ErrBookCopyUnavailable).Once()

	w := doJSON(router, http.MethodPost, "/api/borrowings", gin.H{"book_copy_id": 9})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBorrowBookInvalidDueDate(t *testing.T) {
	svc := new(mock.MockBorrowingService)
	user := &model.User{ID: 5}
	router, _ := newBorrowingRouter(svc, user)

	w := doJSON(router, http.MethodPost, "/api/borrowings", gin.H{"book_copy_id": 9, "due_date": "next tuesday"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "BorrowBook")
}

func TestBorrowBookInvalidatesCopyCache(t *testing.T) {
	svc := new(mock.MockBorrowingService)
	user := &model.User{ID: 5}
	router, responseCache := newBorrowingRouter(svc, user)

	// Seed cached copy and title views like the read handlers would.
	copyKey := cache.MakeKey("/api/book_copies", nil)
	titleKey := cache.MakeKey("/api/book_titles", nil)
	responseCache.Set(copyKey, "cached-copies")
	responseCache.Set(titleKey, "cached-titles")

	borrowing := &model.Borrowing{ID: 1, BookCopyID: 9, UserID: 5}
	svc.On("BorrowBook", tmock.Anything, uint(5), uint(9), (*time.Time)(nil)).
		Return(borrowing, nil).Once()

	doJSON(router, http.MethodPost, "/api/borrowings", gin.H{"book_copy_id": 9})

	_, ok := responseCache.Get(copyKey)
	assert.False(t, ok)
	_, ok = responseCache.Get(titleKey)
	assert.False(t, ok)
}

func TestReturnBookAlreadyReturned(t *testing.T) {
	svc := new(mock.MockBorrowingService)
	router, _ := newBorrowingRouter(svc, &model.User{ID: 5})

	svc.On("ReturnBook", tmock.Anything, uint(3)).
		Return(nil, apperrors.ErrAlreadyReturned).Once()

	w := doJSON(router, http.MethodPost, "/api/borrowings/3/return", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReturnBook(t *testing.T) {
	svc := new(mock.MockBorrowingService)
	router, responseCache := newBorrowingRouter(svc, &model.User{ID: 5})

	copyKey := cache.MakeKey("/api/book_copies", nil)
	responseCache.Set(copyKey, "cached-copies")

	now := time.Now()
	returned := &model.Borrowing{ID: 3, BookCopyID: 9, UserID: 5, ReturnDate: &now, Fine: 5000}
	svc.On("ReturnBook", tmock.Anything, uint(3)).Return(returned, nil).Once()

	w := doJSON(router, http.MethodPost, "/api/borrowings/3/return", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	_, ok := responseCache.Get(copyKey)
	assert.False(t, ok)
}

func TestListBorrowingsFilters(t *testing.T) {
	svc := new(mock.MockBorrowingService)
	router, _ := newBorrowingRouter(svc, &model.User{ID: 5})

	svc.On("ListBorrowings", tmock.Anything,
		model.BorrowingSearchCriteria{Status: model.BorrowingStatusActive, UserID: 5}, 10, 0).
		Return([]model.Borrowing{}, int64(0), nil).Once()

	w := doJSON(router, http.MethodGet, "/api/borrowings?status=active&user_id=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
