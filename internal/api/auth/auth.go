// Package auth implements the login gate and the bearer-token session check
// for the HTTP API.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apierrors "xcribe/internal/api/errors"
	"xcribe/internal/api/middleware"
	"xcribe/internal/config"
)

// Service issues and verifies session tokens for the single credential pair
// the application knows about.
type Service struct {
	username string
	password string
	secret   []byte
	tokenTTL time.Duration
}

// NewService builds the auth service. When no JWT secret is configured a
// random per-process secret is generated; sessions then do not survive a
// restart, which is acceptable for this single-user gate.
func NewService(cfg config.AuthConfig) *Service {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			panic("failed to generate session secret: " + err.Error())
		}
		secret = []byte(hex.EncodeToString(buf))
	}
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		username: cfg.Username,
		password: cfg.Password,
		secret:   secret,
		tokenTTL: ttl,
	}
}

// Login checks the credentials and returns a signed session token.
func (s *Service) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return "", errors.New("incorrect credentials, access denied")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    "xcribe",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks a session token and returns the subject.
func (s *Service) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired session")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", errors.New("invalid session claims")
	}
	return claims.Subject, nil
}

// RequireAuth rejects requests without a valid bearer token.
func (s *Service) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			middleware.HandleError(c, apierrors.NewUnauthorizedError("missing bearer token"))
			return
		}
		subject, err := s.Verify(tokenString)
		if err != nil {
			middleware.HandleError(c, apierrors.NewUnauthorizedError(err.Error()))
			return
		}
		c.Set("user", subject)
		c.Next()
	}
}
