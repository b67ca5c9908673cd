// auth/local.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"

	app_errors "github.com/nmhung1294/INT3505E-02-demo/errors"
	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"github.com/nmhung1294/INT3505E-02-demo/model"
)

// TokenClaims are the claims this service issues and verifies locally.
type TokenClaims struct {
	UserID uint `json:"id"`
	jwt.StandardClaims
}

// LocalStrategy verifies HS256-signed tokens with a shared secret. It never
// suspends; verification is purely computational.
type LocalStrategy struct {
	secret    []byte
	directory Directory
}

func NewLocalStrategy(secret []byte, directory Directory) *LocalStrategy {
	return &LocalStrategy{secret: secret, directory: directory}
}

func (s *LocalStrategy) Resolve(ctx context.Context, credential string) (*model.User, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, reject(ReasonInvalidToken, http.StatusUnauthorized, "Invalid token", err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, reject(ReasonInvalidToken, http.StatusUnauthorized, "Invalid token", nil)
	}

	subject := strconv.FormatUint(uint64(claims.UserID), 10)
	user, err := s.directory.FindUserBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) {
			// Structurally valid token referencing a deleted account.
			logger.Warn("Token subject no longer exists", zap.String("subject", subject))
			return nil, reject(ReasonInvalidSubject, http.StatusUnauthorized, "Invalid user", err)
		}
		return nil, err
	}

	return user, nil
}

// IssueToken signs a token for the given user with the strategy's secret.
// Login and the Google callback use it; verification is Resolve's inverse.
func IssueToken(secret []byte, userID uint, expiresAt int64) (string, error) {
	claims := TokenClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
