// controller/book_title_controller_test.go
package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	"github.com/nmhung1294/INT3505E-02-demo/cache"
	apperrors "github.com/nmhung1294/INT3505E-02-demo/errors"
	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"github.com/nmhung1294/INT3505E-02-demo/model"
	"github.com/nmhung1294/INT3505E-02-demo/test/mock"
)

func TestMain(m *testing.M) {
	logger.InitLogger(os.TempDir())
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTitleRouter(svc *mock.MockBookTitleService) (*gin.Engine, *cache.TTLCache) {
	responseCache := cache.New(time.Minute)
	ctrl := NewBookTitleController(svc, responseCache)
	router := gin.New()
	api := router.Group("/api")
	ctrl.RegisterRoutes(api)
	return router, responseCache
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestListBookTitlesServesSecondRequestFromCache(t *testing.T) {
	svc := new(mock.MockBookTitleService)
	router, _ := newTitleRouter(svc)

	titles := []model.BookTitle{{ID: 1, Title: "Dune", Author: "Frank Herbert"}}
	svc.On("ListBookTitles", tmock.Anything, tmock.Anything, 10, 0).
		Return(titles, int64(1), nil).Once()

	first := doJSON(router, http.MethodGet, "/api/book_titles", nil)
	assert.Equal(t, http.StatusOK, first.Code)

	second := doJSON(router, http.MethodGet, "/api/book_titles", nil)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	// The service was hit exactly once; the repeat came from the cache.
	svc.AssertExpectations(t)
}

func TestListBookTitlesDistinctQueriesCachedSeparately(t *testing.T) {
	svc := new(mock.MockBookTitleService)
	router, _ := newTitleRouter(svc)

	svc.On("ListBookTitles", tmock.Anything, tmock.Anything, 10, 0).
		Return([]model.BookTitle{}, int64(0), nil).Twice()

	doJSON(router, http.MethodGet, "/api/book_titles?category=scifi", nil)
	doJSON(router, http.MethodGet, "/api/book_titles?category=history", nil)

	svc.AssertExpectations(t)
}

func TestCreateBookTitleInvalidatesListCache(t *testing.T) {
	svc := new(mock.MockBookTitleService)
	router, _ := newTitleRouter(svc)

	svc.On("ListBookTitles", tmock.Anything, tmock.Anything, 10, 0).
		Return([]model.BookTitle{}, int64(0), nil).Twice()
	created := &model.BookTitle{ID: 2, Title: "Hyperion", Author: "Dan Simmons"}
	svc.On("CreateBookTitle", tmock.Anything, tmock.Anything).Return(created, nil).Once()

	doJSON(router, http.MethodGet, "/api/book_titles", nil)

	w := doJSON(router, http.MethodPost, "/api/book_titles", gin.H{"title": "Hyperion", "author": "Dan Simmons"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// The list must be recomputed after the write.
	doJSON(router, http.MethodGet, "/api/book_titles", nil)
	svc.AssertExpectations(t)
}

func TestFailedCreateLeavesCacheIntact(t *testing.T) {
	svc := new(mock.MockBookTitleService)
	router, _ := newTitleRouter(svc)

	svc.On("ListBookTitles", tmock.Anything, tmock.Anything, 10, 0).
		Return([]model.BookTitle{}, int64(0), nil).Once()
	svc.On("CreateBookTitle", tmock.Anything, tmock.Anything).
		Return(nil, apperrors.ErrInvalidBookTitleData).Once()

	doJSON(router, http.MethodGet, "/api/book_titles", nil)

	w := doJSON(router, http.MethodPost, "/api/book_titles", gin.H{"title": "", "author": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Cached list survives the failed write; the service is not hit again.
	doJSON(router, http.MethodGet, "/api/book_titles", nil)
	svc.AssertExpectations(t)
}

func TestGetBookTitleNotFound(t *testing.T) {
	svc := new(mock.MockBookTitleService)
	router, _ := newTitleRouter(svc)

	svc.On("GetBookTitle", tmock.Anything, uint(42)).
		Return(nil, apperrors.ErrBookTitleNotFound).Once()

	w := doJSON(router, http.MethodGet, "/api/book_titles/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBookTitleInvalidID(t *testing.T) {
	svc := new(mock.MockBookTitleService)
	router, _ := newTitleRouter(svc)

	w := doJSON(router, http.MethodGet, "/api/book_titles/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteBookTitleWithCopiesConflicts(t *testing.T) {
	svc := new(mock.MockBookTitleService)
	router, _ := newTitleRouter(svc)

	svc.On("DeleteBookTitle", tmock.Anything, uint(3)).
		Return(apperrors.ErrBookTitleHasCopies).Once()

	w := doJSON(router, http.MethodDelete, "/api/book_titles/3", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetBookTitleStatistics(t *testing.T) {
	svc := new(mock.MockBookTitleService)
	router, _ := newTitleRouter(svc)

	stats := &model.BookTitleStatistics{
		TotalCopies:     3,
		AvailableCopies: 2,
		BorrowedCopies:  1,
		ConditionCounts: map[string]int{model.ConditionGood: 3},
	}
	svc.On("GetBookTitleStatistics", tmock.Anything, uint(1)).Return(stats, nil).Once()

	w := doJSON(router, http.MethodGet, "/api/book_titles/1/statistics", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var got model.BookTitleStatistics
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 3, got.TotalCopies)
	assert.Equal(t, 1, got.BorrowedCopies)

	// A second read is served from the cache.
	again := doJSON(router, http.MethodGet, "/api/book_titles/1/statistics", nil)
	assert.Equal(t, http.StatusOK, again.Code)
	svc.AssertExpectations(t)
}
