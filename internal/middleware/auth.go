package middleware

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"pickup-bff/internal/domain"
	"pickup-bff/internal/service"
	"pickup-bff/internal/service/auth"
	"pickup-bff/pkg/errors"
	"pickup-bff/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// UserContextKey is the key for the resolved viewer in context
	UserContextKey ContextKey = "user"
	// SessionContextKey is the key for the raw session cookie value in context
	SessionContextKey ContextKey = "session"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// SessionResolver turns a session cookie into the signed-in user
type SessionResolver interface {
	Resolve(ctx context.Context, session string) (*domain.User, error)
}

// TokenVerifier checks a session token locally
type TokenVerifier interface {
	Enabled() bool
	VerifySession(token string) (*domain.SessionClaims, error)
}

// Session reads the session cookie and attaches the viewer to the request. It never rejects a
// request: an unknown session is anonymous, and a rejected one is also cleared.
func Session(cookieName string, verifier TokenVerifier, resolver SessionResolver, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			session := cookie.Value
			log := logger.WithField("request_id", GetRequestID(r.Context()))

			if verifier != nil && verifier.Enabled() {
				if _, err := verifier.VerifySession(session); err != nil {
					if stderrors.Is(err, auth.ErrTokenExpired) {
						log.Debug("Session token expired")
					} else {
						log.WithError(err).Warn("Session token rejected")
					}
					ClearSessionCookie(w, cookieName)
					next.ServeHTTP(w, r)
					return
				}
			}

			user, err := resolver.Resolve(r.Context(), session)
			if err != nil {
				if stderrors.Is(err, service.ErrSessionExpired) {
					ClearSessionCookie(w, cookieName)
				} else {
					log.WithError(err).Warn("Failed to resolve session, continuing anonymously")
				}
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), SessionContextKey, session)))
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, session)
			if user != nil {
				ctx = context.WithValue(ctx, UserContextKey, user)
				log.WithField("user_id", user.ID).Debug("Session resolved")
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests without a signed-in viewer
func RequireUser(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUser(r.Context()) == nil {
				writeErrorResponse(w, r, errors.NewAuthenticationError("請先登入"), logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID creates a middleware that adds a unique request ID to each request
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClearSessionCookie expires the session cookie on the client
func ClearSessionCookie(w http.ResponseWriter, cookieName string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetUser returns the signed-in viewer, or nil
func GetUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(UserContextKey).(*domain.User)
	return user
}

// GetSession returns the raw session cookie value
func GetSession(ctx context.Context) string {
	session, _ := ctx.Value(SessionContextKey).(string)
	return session
}

// GetRequestID returns the request ID
func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDContextKey).(string)
	return requestID
}

// writeErrorResponse writes an error response to the client
func writeErrorResponse(w http.ResponseWriter, r *http.Request, appErr *errors.AppError, logger *logger.Logger) {
	logger.WithError(appErr).WithField("path", r.URL.Path).Info("Request rejected")

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Code = appErr.Code
	response.Error.Message = appErr.Message
	response.Error.Redirect = appErr.Redirect
	response.Error.Details = appErr.Details
	response.Error.RequestID = GetRequestID(r.Context())
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	_ = json.NewEncoder(w).Encode(response)
}
