// controller/book_copy_controller.go
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

const bookCopyPrefix = "/api/book_copies"

type BookCopyController struct {
	copyService service.IBookCopyService
	cache       *cache.TTLCache
}

func NewBookCopyController(copyService service.IBookCopyService, responseCache *cache.TTLCache) *BookCopyController {
	return &BookCopyController{copyService: copyService, cache: responseCache}
}

func (ctrl *BookCopyController) RegisterRoutes(api *gin.RouterGroup) {
	copies := api.Group("/book_copies")
	copies.GET("", ctrl.ListBookCopies)
	copies.POST("", ctrl.CreateBookCopy)
	copies.GET("/:id", ctrl.GetBookCopy)
	copies.PATCH("/:id", ctrl.UpdateBookCopy)
	copies.DELETE("/:id", ctrl.DeleteBookCopy)
}

// ListBookCopies handles GET /api/book_copies
func (ctrl *BookCopyController) ListBookCopies(c *gin.Context) {
	key := cache.MakeKey(c.Request.URL.Path, c.Request.URL.Query())
	if cached, ok := ctrl.cache.Get(key); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	page, size, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}
	var criteria model.BookCopySearchCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid search parameters", err)
		return
	}

	copies, total, err := ctrl.copyService.ListBookCopies(c.Request.Context(), criteria, size, (page-1)*size)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := gin.H{
		"book_copies": copies,
		"page_info":   helper_util.NewPageInfo(page, size, total),
	}
	ctrl.cache.Set(key, response)
	c.JSON(http.StatusOK, response)
}

// GetBookCopy handles GET /api/book_copies/:id
func (ctrl *BookCopyController) GetBookCopy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	key := cache.MakeKey(c.Request.URL.Path, nil)
	if cached, ok := ctrl.cache.Get(key); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	copy, err := ctrl.copyService.GetBookCopy(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ctrl.cache.Set(key, copy)
	c.JSON(http.StatusOK, copy)
}

// CreateBookCopy handles POST /api/book_copies
func (ctrl *BookCopyController) CreateBookCopy(c *gin.Context) {
	var copy model.BookCopy
	if err := c.ShouldBindJSON(&copy); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid book copy payload", err)
		return
	}
	copy.ID = 0

	created, err := ctrl.copyService.CreateBookCopy(c.Request.Context(), copy)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ctrl.cache.DeleteByPrefix(bookCopyPrefix)
	ctrl.cache.DeleteByPrefix(bookTitlePrefix)
	c.JSON(http.StatusCreated, created)
}

// UpdateBookCopy handles PATCH /api/book_copies/:id
func (ctrl *BookCopyController) UpdateBookCopy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var update model.BookCopyUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid book copy payload", err)
		return
	}

	updated, err := ctrl.copyService.UpdateBookCopy(c.Request.Context(), id, update)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ctrl.cache.DeleteByPrefix(bookCopyPrefix)
	ctrl.cache.DeleteByPrefix(bookTitlePrefix)
	c.JSON(http.StatusOK, updated)
}

// DeleteBookCopy handles DELETE /api/book_copies/:id
func (ctrl *BookCopyController) DeleteBookCopy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctrl.copyService.DeleteBookCopy(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	ctrl.cache.DeleteByPrefix(bookCopyPrefix)
	ctrl.cache.DeleteByPrefix(bookTitlePrefix)
	c.JSON(http.StatusOK, gin.H{"message": "Book copy deleted"})
}
