package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/nmhung1294/INT3505E-02-demo/audit"
	"github.com/nmhung1294/INT3505E-02-demo/dao"
	"github.com/nmhung1294/INT3505E-02-demo/util"
)

// Services bundles the service layer for injection into controllers.
type Services struct {
	UserService      IUserService
	BookTitleService IBookTitleService
	BookCopyService  IBookCopyService
	BorrowingService IBorrowingService
}

// Config carries the values the service layer needs from the
// application configuration.
type Config struct {
	TokenSecret []byte
	TokenTTL    time.Duration
	FinePerDay  float64
	Google      *GoogleOAuth
}

// InitializeServices wires DAOs and services against the given database
// handle.
func InitializeServices(db *gorm.DB, auditService audit.Service, validationUtil *util.ValidationUtil, eventBus *util.EventBus, cfg Config) *Services {
	userDAO := dao.NewUserDAO(db, auditService)
	titleDAO := dao.NewBookTitleDAO(db)
	copyDAO := dao.NewBookCopyDAO(db)
	borrowingDAO := dao.NewBorrowingDAO(db, auditService)

	return &Services{
		UserService:      NewUserService(userDAO, validationUtil, eventBus, cfg.Google, cfg.TokenSecret, cfg.TokenTTL),
		BookTitleService: NewBookTitleService(titleDAO, borrowingDAO, validationUtil),
		BookCopyService:  NewBookCopyService(copyDAO, validationUtil),
		BorrowingService: NewBorrowingService(borrowingDAO, validationUtil, eventBus, cfg.FinePerDay),
	}
}
