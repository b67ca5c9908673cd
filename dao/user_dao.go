// dao/user_dao.go
package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nmhung1294/INT3505E-02-demo/audit"
	app_errors "github.com/nmhung1294/INT3505E-02-demo/errors"
	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"github.com/nmhung1294/INT3505E-02-demo/model"
)

type UserDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewUserDAO(db *gorm.DB, auditService audit.Service) *UserDAO {
	return &UserDAO{DB: db, AuditService: auditService}
}

func (dao *UserDAO) CreateUser(ctx context.Context, user model.User) (uint, error) {
	start := time.Now()
	logger.Info("Creating new user", zap.String("email", user.Email))

	var existing model.User
	err := dao.DB.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return 0, app_errors.ErrEmailConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing email", zap.Error(err), zap.String("email", user.Email))
		return 0, app_errors.ErrDatabaseOperation
	}

	if err := dao.DB.WithContext(ctx).Create(&user).Error; err != nil {
		logger.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.Duration("duration", time.Since(start)))
		return 0, app_errors.ErrDatabaseOperation
	}

	logger.Info("User created successfully",
		zap.Uint("userID", user.ID),
		zap.Duration("duration", time.Since(start)))

	dao.logAudit(ctx, audit.AuditLog{
		Timestamp: time.Now(),
		UserID:    fmt.Sprint(user.ID),
		Action:    audit.ActionUserRegistered,
		Resource:  fmt.Sprintf("user:%d", user.ID),
		Success:   true,
		Details:   mustJSON(map[string]string{"email": user.Email, "name": user.Name}),
	})

	return user.ID, nil
}

func (dao *UserDAO) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := dao.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_errors.ErrUserNotFound
	}
	if err != nil {
		logger.Error("Failed to get user", zap.Error(err), zap.Uint("userID", id))
		return nil, app_errors.ErrDatabaseOperation
	}
	return &user, nil
}

func (dao *UserDAO) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := dao.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app_errors.ErrUserNotFound
	}
	if err != nil {
		logger.Error("Failed to get user by email", zap.Error(err), zap.String("email", email))
		return nil, app_errors.ErrDatabaseOperation
	}
	return &user, nil
}

func (dao *UserDAO) logAudit(ctx context.Context, log audit.AuditLog) {
	if dao.AuditService == nil {
		return
	}
	if err := dao.AuditService.LogAction(ctx, log); err != nil {
		logger.Warn("Failed to write audit log", zap.Error(err), zap.String("action", log.Action))
	}
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
