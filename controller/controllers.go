// controller/controllers.go
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nmhung1294/INT3505E-02-demo/cache"
	apperrors "github.com/nmhung1294/INT3505E-02-demo/errors"
	"github.com/nmhung1294/INT3505E-02-demo/service"
	"github.com/nmhung1294/INT3505E-02-demo/util"
)

// Controllers bundles the HTTP layer for route registration.
type Controllers struct {
	AuthController      *AuthController
	BookTitleController *BookTitleController
	BookCopyController  *BookCopyController
	BorrowingController *BorrowingController
	WebhookController   *WebhookController
}

func InitializeControllers(services *service.Services, responseCache *cache.TTLCache, notification *util.NotificationService, cookie CookieConfig) *Controllers {
	return &Controllers{
		AuthController:      NewAuthController(services.UserService, cookie),
		BookTitleController: NewBookTitleController(services.BookTitleService, responseCache),
		BookCopyController:  NewBookCopyController(services.BookCopyService, responseCache),
		BorrowingController: NewBorrowingController(services.BorrowingService, responseCache),
		WebhookController:   NewWebhookController(notification),
	}
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid id parameter", err)
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service-layer sentinel errors onto HTTP
// statuses. Anything unmapped is treated as an internal failure.
func respondServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrBookTitleNotFound),
		errors.Is(err, apperrors.ErrBookCopyNotFound),
		errors.Is(err, apperrors.ErrBorrowingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrEmailConflict),
		errors.Is(err, apperrors.ErrDuplicateBarcode),
		errors.Is(err, apperrors.ErrBookTitleHasCopies),
		errors.Is(err, apperrors.ErrBookCopyBorrowed),
		errors.Is(err, apperrors.ErrBookCopyUnavailable),
		errors.Is(err, apperrors.ErrAlreadyReturned):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidUserData),
		errors.Is(err, apperrors.ErrInvalidBookTitleData),
		errors.Is(err, apperrors.ErrInvalidBookCopyData),
		errors.Is(err, apperrors.ErrInvalidBorrowingData),
		errors.Is(err, apperrors.ErrGoogleNotConfigured):
		status = http.StatusBadRequest
	}
	util.RespondWithError(c, status, err.Error(), err)
}
