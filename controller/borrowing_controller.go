// controller/borrowing_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nmhung1294/INT3505E-02-demo/cache"
	"github.com/nmhung1294/INT3505E-02-demo/model"
	"github.com/nmhung1294/INT3505E-02-demo/service"
	"github.com/nmhung1294/INT3505E-02-demo/util"
	helper_util "github.com/nmhung1294/INT3505E-02-demo/util/helper"
)

type BorrowingController struct {
	borrowingService service.IBorrowingService
	cache            *cache.TTLCache
}

func NewBorrowingController(borrowingService service.IBorrowingService, responseCache *cache.TTLCache) *BorrowingController {
	return &BorrowingController{borrowingService: borrowingService, cache: responseCache}
}

func (ctrl *BorrowingController) RegisterRoutes(api *gin.RouterGroup) {
	borrowings := api.Group("/borrowings")
	borrowings.GET("", ctrl.ListBorrowings)
	borrowings.POST("", ctrl.BorrowBook)
	borrowings.GET("/:id", ctrl.GetBorrowing)
	borrowings.POST("/:id/return", ctrl.ReturnBook)
}

type borrowRequest struct {
	BookCopyID uint   `json:"book_copy_id" binding:"required"`
	DueDate    string `json:"due_date"`
}

// BorrowBook handles POST /api/borrowings
func (ctrl *BorrowingController) BorrowBook(c *gin.Context) {
	user := util.CurrentUser(c)
	if user == nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid borrowing payload", err)
		return
	}
	dueDate, err := helper_util.ParseNullableTime(req.DueDate)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid due date", err)
		return
	}

	borrowing, err := ctrl.borrowingService.BorrowBook(c.Request.Context(), user.ID, req.BookCopyID, dueDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Copy availability changed, so cached copy and title views are stale.
	ctrl.cache.DeleteByPrefix(bookCopyPrefix)
	ctrl.cache.DeleteByPrefix(bookTitlePrefix)
	c.JSON(http.StatusCreated, borrowing)
}

// ReturnBook handles POST /api/borrowings/:id/return
func (ctrl *BorrowingController) ReturnBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	borrowing, err := ctrl.borrowingService.ReturnBook(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ctrl.cache.DeleteByPrefix(bookCopyPrefix)
	ctrl.cache.DeleteByPrefix(bookTitlePrefix)
	c.JSON(http.StatusOK, borrowing)
}

// GetBorrowing handles GET /api/borrowings/:id
func (ctrl *BorrowingController) GetBorrowing(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	borrowing, err := ctrl.borrowingService.GetBorrowing(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, borrowing)
}

// ListBorrowings handles GET /api/borrowings
func (ctrl *BorrowingController) ListBorrowings(c *gin.Context) {
	page, size, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}
	var criteria model.BorrowingSearchCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid search parameters", err)
		return
	}

	borrowings, total, err := ctrl.borrowingService.ListBorrowings(c.Request.Context(), criteria, size, (page-1)*size)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"borrowings": borrowings,
		"page_info":  helper_util.NewPageInfo(page, size, total),
	})
}
