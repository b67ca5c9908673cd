package service

import (
	"context"
	"strconv"
	"time"

	"github.com/nmhung1294/INT3505E-02-demo/auth"
	"github.com/nmhung1294/INT3505E-02-demo/dao"
	apperrors "github.com/nmhung1294/INT3505E-02-demo/errors"
	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"github.com/nmhung1294/INT3505E-02-demo/model"
	"github.com/nmhung1294/INT3505E-02-demo/util"
	"go.uber.org/zap"
)

type IUserService interface {
	RegisterUser(ctx context.Context, user model.User) (*model.User, error)
	Login(ctx context.Context, email string) (*model.User, string, error)
	GoogleAuthURL() (string, error)
	LoginWithGoogle(ctx context.Context, code string) (*model.User, string, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	FindUserBySubject(ctx context.Context, subject string) (*model.User, error)
}

type UserService struct {
	userDAO        *dao.UserDAO
	validationUtil *util.ValidationUtil
	eventBus       *util.EventBus
	google         *GoogleOAuth
	secret         []byte
	tokenTTL       time.Duration
}

func NewUserService(userDAO *dao.UserDAO, validationUtil *util.ValidationUtil, eventBus *util.EventBus, google *GoogleOAuth, secret []byte, tokenTTL time.Duration) *UserService {
	return &UserService{
		userDAO:        userDAO,
		validationUtil: validationUtil,
		eventBus:       eventBus,
		google:         google,
		secret:         secret,
		tokenTTL:       tokenTTL,
	}
}

func (s *UserService) RegisterUser(ctx context.Context, user model.User) (*model.User, error) {
	if err := s.validationUtil.ValidateUser(user); err != nil {
		return nil, err
	}
	id, err := s.userDAO.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	created, err := s.userDAO.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.eventBus.Publish(ctx, util.EventUserRegistered, created)
	logger.Info("User registered", zap.Uint("userID", created.ID), zap.String("email", created.Email))
	return created, nil
}

// Login authenticates by email and issues a signed session token.
func (s *UserService) Login(ctx context.Context, email string) (*model.User, string, error) {
	user, err := s.userDAO.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) GoogleAuthURL() (string, error) {
	if s.google == nil {
		return "", apperrors.ErrGoogleNotConfigured
	}
	return s.google.AuthCodeURL()
}

// LoginWithGoogle exchanges an authorization code, upserts the Google
// account as a local user and issues a session token for it.
func (s *UserService) LoginWithGoogle(ctx context.Context, code string) (*model.User, string, error) {
	if s.google == nil {
		return nil, "", apperrors.ErrGoogleNotConfigured
	}
	info, err := s.google.FetchUserInfo(ctx, code)
	if err != nil {
		return nil, "", err
	}
	user, err := s.userDAO.GetUserByEmail(ctx, info.Email)
	if err == apperrors.ErrUserNotFound {
		var id uint
		id, err = s.userDAO.CreateUser(ctx, model.User{Name: info.Name, Email: info.Email})
		if err == nil {
			user, err = s.userDAO.GetUserByID(ctx, id)
		}
		if err == nil {
			s.eventBus.Publish(ctx, util.EventUserRegistered, user)
		}
	}
	if err != nil {
		return nil, "", err
	}
	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return s.userDAO.GetUserByID(ctx, id)
}

// FindUserBySubject resolves an authenticated subject to a stored user.
// Subjects are the decimal user IDs carried in session tokens and
// introspection responses.
func (s *UserService) FindUserBySubject(ctx context.Context, subject string) (*model.User, error) {
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	return s.userDAO.GetUserByID(ctx, uint(id))
}

func (s *UserService) issueToken(userID uint) (string, error) {
	var expiresAt int64
	if s.tokenTTL > 0 {
		expiresAt = time.Now().Add(s.tokenTTL).Unix()
	}
	return auth.IssueToken(s.secret, userID, expiresAt)
}
