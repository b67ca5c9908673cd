package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

func TestLocalResolveValidToken(t *testing.T) {
	s := NewLocalStrategy([]byte("secret"), testDirectory())

	user, err := s.Resolve(context.Background(), validToken(t, "secret", 1))
	assert.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "Alice", user.Name)
}

func TestLocalResolveWrongSecret(t *testing.T) {
	s := NewLocalStrategy([]byte("secret"), testDirectory())

	_, err := s.Resolve(context.Background(), validToken(t, "other-secret", 1))
	assertRejected(t, err, ReasonInvalidToken, http.StatusUnauthorized)
}

func TestLocalResolveExpiredToken(t *testing.T) {
	s := NewLocalStrategy([]byte("secret"), testDirectory())

	expired, err := IssueToken([]byte("secret"), 1, time.Now().Add(-time.Hour).Unix())
	assert.NoError(t, err)

	_, err = s.Resolve(context.Background(), expired)
	assertRejected(t, err, ReasonInvalidToken, http.StatusUnauthorized)
}

func TestLocalResolveMalformedToken(t *testing.T) {
	s := NewLocalStrategy([]byte("secret"), testDirectory())

	for _, credential := range []string{"garbage", "a.b.c", ""} {
		_, err := s.Resolve(context.Background(), credential)
		assertRejected(t, err, ReasonInvalidToken, http.StatusUnauthorized)
	}
}

func TestLocalResolveTokenWithoutSubjectClaim(t *testing.T) {
	s := NewLocalStrategy([]byte("secret"), testDirectory())

	// Signed correctly but carries no user id claim.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	assert.NoError(t, err)

	_, err = s.Resolve(context.Background(), token)
	assertRejected(t, err, ReasonInvalidToken, http.StatusUnauthorized)
}

func TestLocalResolveUnknownSubject(t *testing.T) {
	s := NewLocalStrategy([]byte("secret"), testDirectory())

	_, err := s.Resolve(context.Background(), validToken(t, "secret", 42))
	assertRejected(t, err, ReasonInvalidSubject, http.StatusUnauthorized)
}

func TestLocalResolveTokenWithoutExpiry(t *testing.T) {
	// An expiry claim is optional; a token without one stays valid.
	s := NewLocalStrategy([]byte("secret"), testDirectory())

	token, err := IssueToken([]byte("secret"), 1, 0)
	assert.NoError(t, err)

	user, err := s.Resolve(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
}
