package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"pickup-bff/internal/domain"
)

// ErrTransport marks failures where no response envelope was received
var ErrTransport = errors.New("backend unreachable")

// APIError is the backend error envelope together with the HTTP status it came with
type APIError struct {
	Status    int              `json:"-"`
	Code      domain.ErrorCode `json:"code"`
	Message   string           `json:"message"`
	Timestamp string           `json:"timestamp,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend returned status %d: %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// Class groups backend failures by how the caller must react
type Class string

const (
	ClassNone      Class = ""
	ClassAuth      Class = "auth"
	ClassRateLimit Class = "rate_limit"
	ClassBusiness  Class = "business"
	ClassNotFound  Class = "not_found"
	ClassTransport Class = "transport"
	ClassUnknown   Class = "unknown"
)

var rateLimitHints = []string{"too many", "rate limit", "rate-limit", "頻繁", "太多"}

// IsRateLimitMessage reports whether a FORBIDDEN message describes throttling
func IsRateLimitMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, hint := range rateLimitHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// Classify tells an expired session, a throttled caller, a business rejection,
// and a transport failure apart
func Classify(err error) Class {
	if err == nil {
		return ClassNone
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusUnauthorized:
			return ClassAuth
		case apiErr.Status == http.StatusForbidden && apiErr.Code == domain.CodeForbidden && IsRateLimitMessage(apiErr.Message):
			return ClassRateLimit
		case apiErr.Status == http.StatusTooManyRequests:
			return ClassRateLimit
		case apiErr.Code != "":
			return ClassBusiness
		case apiErr.Status == http.StatusNotFound:
			return ClassNotFound
		default:
			return ClassUnknown
		}
	}

	if errors.Is(err, ErrTransport) || errors.Is(err, context.DeadlineExceeded) {
		return ClassTransport
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ClassTransport
	}
	return ClassUnknown
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
