package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickup-bff/internal/domain"
	"pickup-bff/internal/service"
	"pickup-bff/internal/service/auth"
	apperrors "pickup-bff/pkg/errors"
	"pickup-bff/pkg/logger"
)

const cookieName = "session"

type stubResolver struct {
	user  *domain.User
	err   error
	calls int
}

func (s *stubResolver) Resolve(ctx context.Context, session string) (*domain.User, error) {
	s.calls++
	return s.user, s.err
}

type stubVerifier struct {
	enabled bool
	err     error
}

func (s stubVerifier) Enabled() bool { return s.enabled }

func (s stubVerifier) VerifySession(token string) (*domain.SessionClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.SessionClaims{Sub: "u1"}, nil
}

// captureHandler records the viewer and session the request carried
func captureHandler(user **domain.User, session *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*user = GetUser(r.Context())
		*session = GetSession(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func clearedCookie(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName && c.MaxAge < 0 {
			return true
		}
	}
	return false
}

func TestSession(t *testing.T) {
	tests := []struct {
		name        string
		cookie      string
		verifier    TokenVerifier
		resolver    *stubResolver
		wantUser    bool
		wantSession string
		wantCleared bool
		wantResolve int
	}{
		{
			name:     "no cookie",
			resolver: &stubResolver{user: &domain.User{ID: "u1"}},
		},
		{
			name:        "resolved viewer",
			cookie:      "tok",
			resolver:    &stubResolver{user: &domain.User{ID: "u1"}},
			wantUser:    true,
			wantSession: "tok",
			wantResolve: 1,
		},
		{
			name:        "unknown user stays anonymous",
			cookie:      "tok",
			resolver:    &stubResolver{},
			wantSession: "tok",
			wantResolve: 1,
		},
		{
			name:        "expired session is cleared",
			cookie:      "tok",
			resolver:    &stubResolver{err: service.ErrSessionExpired},
			wantSession: "tok",
			wantCleared: true,
			wantResolve: 1,
		},
		{
			name:        "backend failure keeps the cookie",
			cookie:      "tok",
			resolver:    &stubResolver{err: errors.New("boom")},
			wantSession: "tok",
			wantResolve: 1,
		},
		{
			name:        "forged token never reaches the backend",
			cookie:      "tok",
			verifier:    stubVerifier{enabled: true, err: auth.ErrInvalidToken},
			resolver:    &stubResolver{user: &domain.User{ID: "u1"}},
			wantCleared: true,
		},
		{
			name:        "verified token",
			cookie:      "tok",
			verifier:    stubVerifier{enabled: true},
			resolver:    &stubResolver{user: &domain.User{ID: "u1"}},
			wantUser:    true,
			wantSession: "tok",
			wantResolve: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var user *domain.User
			var session string
			handler := Session(cookieName, tt.verifier, tt.resolver, logger.NewNop())(captureHandler(&user, &session))

			req := httptest.NewRequest(http.MethodGet, "/api/activities/a1", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantUser, user != nil)
			assert.Equal(t, tt.wantSession, session)
			assert.Equal(t, tt.wantCleared, clearedCookie(rec))
			assert.Equal(t, tt.wantResolve, tt.resolver.calls)
		})
	}
}

func TestRequireUser(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	handler := RequestID(RequireUser(logger.NewNop())(next))

	t.Run("anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/activities", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		var body apperrors.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, apperrors.ErrorTypeAuthentication, body.Error.Type)
		assert.Equal(t, "/login", body.Error.Redirect)
		assert.NotEmpty(t, body.Error.RequestID)
	})

	t.Run("signed in", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/activities", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserContextKey, &domain.User{ID: "u1"}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "from-proxy")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "from-proxy", seen)
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := CORS(DefaultCORSConfig([]string{"https://app.example.com"}), logger.NewNop())(next)

	t.Run("allowed origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/activities", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/activities", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
