// controller/book_title_controller.go
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

const bookTitlePrefix = "/api/book_titles"

type BookTitleController struct {
	titleService service.IBookTitleService
	cache        *cache.TTLCache
}

func NewBookTitleController(titleService service.IBookTitleService, responseCache *cache.TTLCache) *BookTitleController {
	return &BookTitleController{titleService: titleService, cache: responseCache}
}

func (ctrl *BookTitleController) RegisterRoutes(api *gin.RouterGroup) {
	titles := api.Group("/book_titles")
	titles.GET("", ctrl.ListBookTitles)
	titles.POST("", ctrl.CreateBookTitle)
	titles.GET("/:id", ctrl.GetBookTitle)
	titles.PUT("/:id", ctrl.UpdateBookTitle)
	titles.DELETE("/:id", ctrl.DeleteBookTitle)
	titles.GET("/:id/statistics", ctrl.GetBookTitleStatistics)
}

// ListBookTitles handles GET /api/book_titles
func (ctrl *BookTitleController) ListBookTitles(c *gin.Context) {
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
	var criteria model.BookTitleSearchCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid search parameters", err)
		return
	}

	titles, total, err := ctrl.titleService.ListBookTitles(c.Request.Context(), criteria, size, (page-1)*size)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := gin.H{
		"book_titles": titles,
		"page_info":   helper_util.NewPageInfo(page, size, total),
	}
	ctrl.cache.Set(key, response)
	c.JSON(http.StatusOK, response)
}

// GetBookTitle handles GET /api/book_titles/:id
func (ctrl *BookTitleController) GetBookTitle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	key := cache.MakeKey(c.Request.URL.Path, nil)
	if cached, ok := ctrl.cache.Get(key); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	title, err := ctrl.titleService.GetBookTitle(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ctrl.cache.Set(key, title)
	c.JSON(http.StatusOK, title)
}

// GetBookTitleStatistics handles GET /api/book_titles/:id/statistics
func (ctrl *BookTitleController) GetBookTitleStatistics(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	key := cache.MakeKey(c.Request.URL.Path, nil)
	if cached, ok := ctrl.cache.Get(key); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	stats, err := ctrl.titleService.GetBookTitleStatistics(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ctrl.cache.Set(key, stats)
	c.JSON(http.StatusOK, stats)
}

// CreateBookTitle handles POST /api/book_titles
func (ctrl *BookTitleController) CreateBookTitle(c *gin.Context) {
	var title model.BookTitle
	if err := c.ShouldBindJSON(&title); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid book title payload", err)
		return
	}
	title.ID = 0

	created, err := ctrl.titleService.CreateBookTitle(c.Request.Context(), title)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ctrl.cache.DeleteByPrefix(bookTitlePrefix)
	c.JSON(http.StatusCreated, created)
}

// UpdateBookTitle handles PUT /api/book_titles/:id
func (ctrl *BookTitleController) UpdateBookTitle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var title model.BookTitle
	if err := c.ShouldBindJSON(&title); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid book title payload", err)
		return
	}
	title.ID = id

	updated, err := ctrl.titleService.UpdateBookTitle(c.Request.Context(), title)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ctrl.cache.DeleteByPrefix(bookTitlePrefix)
	c.JSON(http.StatusOK, updated)
}

// DeleteBookTitle handles DELETE /api/book_titles/:id
func (ctrl *BookTitleController) DeleteBookTitle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctrl.titleService.DeleteBookTitle(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	ctrl.cache.DeleteByPrefix(bookTitlePrefix)
	c.JSON(http.StatusOK, gin.H{"message": "Book title deleted"})
}
