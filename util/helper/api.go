package helper_util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageInfo is the pagination block returned alongside every listing.
type PageInfo struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int64 `json:"total_pages"`
}

func GetPaginationParams(c *gin.Context) (page int, size int, err error) {
	page, err = strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 0, 0, err
	}
	size, err = strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		return 0, 0, err
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	return page, size, nil
}

func NewPageInfo(page, size int, total int64) PageInfo {
	return PageInfo{
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: (total + int64(size) - 1) / int64(size),
	}
}
