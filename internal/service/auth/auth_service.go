package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pickup-bff/internal/domain"
	"pickup-bff/pkg/logger"
)

// Session token errors
var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")
)

// Service verifies the backend's session token locally, so a forged or expired cookie is
// rejected without a round trip. The backend stays the authority on the user.
type Service struct {
	secret []byte
	logger *logger.Logger
	now    func() time.Time
}

// NewService creates a new auth service. An empty secret disables local verification.
func NewService(secret string, logger *logger.Logger) *Service {
	return &Service{
		secret: []byte(secret),
		logger: logger,
		now:    time.Now,
	}
}

// Enabled reports whether tokens are verified locally
func (s *Service) Enabled() bool {
	return len(s.secret) > 0
}

// VerifySession checks the signature and expiry of a session token and returns its claims
func (s *Service) VerifySession(tokenString string) (*domain.SessionClaims, error) {
	if !isJWTToken(tokenString) {
		return nil, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Verify the signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Debug("Session token has expired")
			return nil, ErrTokenExpired
		}
		s.logger.WithError(err).Warn("Failed to parse/validate session token")
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	session := &domain.SessionClaims{
		Sub:    getStringValue(claims, "sub"),
		LineID: getStringValue(claims, "lineId"),
		Role:   getStringValue(claims, "role"),
		Exp:    getInt64Value(claims, "exp"),
	}

	// Ensure we have at least an identifier
	if session.Sub == "" {
		s.logger.Warn("No user identifier found in session token")
		return nil, ErrInvalidToken
	}

	return session, nil
}

func isJWTToken(token string) bool {
	// JWT tokens have exactly 3 segments separated by dots
	if token == "" {
		return false
	}

	dotCount := 0
	for _, char := range token {
		if char == '.' {
			dotCount++
		}
	}
	return dotCount == 2
}

// Helper functions to safely extract values from claims
func getStringValue(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

func getInt64Value(m map[string]interface{}, key string) int64 {
	if val, ok := m[key].(float64); ok {
		return int64(val)
	}
	return 0
}
