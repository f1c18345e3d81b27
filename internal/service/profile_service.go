package service

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"pickup-bff/internal/domain"
	"pickup-bff/internal/service/backend"
	"pickup-bff/internal/service/nickname"
	"pickup-bff/pkg/errors"
	"pickup-bff/pkg/logger"
	"pickup-bff/pkg/utils"
)

// ErrSessionExpired means the backend no longer accepts the session cookie
var ErrSessionExpired = stderrors.New("session expired")

// ProfileCache is the part of CacheService the profile flows use
type ProfileCache interface {
	GetSessionUser(ctx context.Context, session string) (*domain.User, bool)
	StoreSessionUser(ctx context.Context, session string, user *domain.User)
	DropSession(ctx context.Context, session string)
	GetNicknameAvailability(ctx context.Context, nickname string) (available, ok bool)
	StoreNicknameAvailability(ctx context.Context, nickname string, available bool)
}

// ProfileService resolves sessions to users and forwards profile edits
type ProfileService struct {
	backend UserBackend
	cache   ProfileCache
	checker *nickname.Checker
	logger  *logger.Logger
}

// NewProfileService creates a new profile service. Nickname checks wait quiet before calling the backend.
func NewProfileService(backend UserBackend, cache ProfileCache, logger *logger.Logger, quiet time.Duration) *ProfileService {
	s := &ProfileService{
		backend: backend,
		cache:   cache,
		logger:  logger,
	}
	s.checker = nickname.NewChecker(quiet, s.lookupNickname)
	return s
}

// Resolve returns the user behind a session cookie. A session the backend does not know
// resolves to nil (anonymous); a rejected one returns ErrSessionExpired.
func (s *ProfileService) Resolve(ctx context.Context, session string) (*domain.User, error) {
	if session == "" {
		return nil, nil
	}
	if user, ok := s.cache.GetSessionUser(ctx, session); ok {
		return user, nil
	}

	user, err := s.backend.CurrentUser(ctx, session)
	if err != nil {
		if backend.Classify(err) == backend.ClassAuth {
			s.cache.DropSession(ctx, session)
			return nil, ErrSessionExpired
		}
		// signed in with LINE but no profile yet
		if backend.StatusOf(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, toAppError(err, "讀取使用者資料失敗")
	}

	s.cache.StoreSessionUser(ctx, session, user)
	return user, nil
}

// Update forwards a profile edit. A phone number is normalized to 09xxxxxxxx first.
func (s *ProfileService) Update(ctx context.Context, session string, viewer *domain.User, update domain.ProfileUpdate) (*domain.User, error) {
	if viewer == nil {
		return nil, errors.NewAuthenticationError(messageLoginRequired)
	}

	if update.Phone != nil && strings.TrimSpace(*update.Phone) != "" {
		phone, err := utils.NormalizePhoneNumber(*update.Phone)
		if err != nil {
			return nil, errors.NewValidationError("請輸入有效的手機號碼", map[string]interface{}{
				"field": "phone",
			})
		}
		update.Phone = &phone
	}
	if update.Nickname != nil {
		trimmed := strings.TrimSpace(*update.Nickname)
		if trimmed == "" {
			return nil, errors.NewValidationError("請填寫暱稱", map[string]interface{}{
				"field": "nickname",
			})
		}
		update.Nickname = &trimmed
	}

	user, err := s.backend.UpdateUser(ctx, session, viewer.ID, update)
	if err != nil {
		if backend.Classify(err) == backend.ClassAuth {
			s.cache.DropSession(ctx, session)
		}
		return nil, toAppError(err, "更新個人資料失敗")
	}

	// the cached viewer is now out of date
	s.cache.DropSession(ctx, session)
	if update.Nickname != nil {
		s.cache.StoreNicknameAvailability(ctx, *update.Nickname, false)
	}

	s.logger.WithField("user_id", viewer.ID).Info("Profile updated")
	return user, nil
}

// CheckNickname reports whether a nickname is free, debounced per viewer
func (s *ProfileService) CheckNickname(ctx context.Context, session string, viewer *domain.User, value string) (nickname.Result, error) {
	if viewer == nil {
		return nickname.Result{}, errors.NewAuthenticationError(messageLoginRequired)
	}

	result, err := s.checker.Check(withSession(ctx, session), viewer.ID, viewer.Nickname, value)
	if err != nil {
		return nickname.Result{}, errors.NewBadRequestError("請求已取消")
	}
	return result, nil
}

// Profile loads another user's public profile
func (s *ProfileService) Profile(ctx context.Context, session, userID string) (*domain.User, error) {
	user, err := s.backend.GetUser(ctx, session, userID)
	if err != nil {
		return nil, toAppError(err, "找不到此使用者")
	}
	return user, nil
}

// Logout ends the session. The cached viewer is dropped even when the backend call fails.
func (s *ProfileService) Logout(ctx context.Context, session string) {
	if session == "" {
		return
	}
	if err := s.backend.Logout(ctx, session); err != nil {
		s.logger.WithError(err).WithField("class", string(backend.Classify(err))).Warn("Backend logout failed")
	}
	s.cache.DropSession(ctx, session)
}

func (s *ProfileService) lookupNickname(ctx context.Context, value string) (bool, error) {
	if available, ok := s.cache.GetNicknameAvailability(ctx, value); ok {
		return available, nil
	}

	available, err := s.backend.CheckNickname(ctx, sessionFrom(ctx), value)
	if err != nil {
		s.logger.WithField("nickname", value).WithError(err).Warn("Nickname check failed")
		return false, err
	}
	s.cache.StoreNicknameAvailability(ctx, value, available)
	return available, nil
}

type sessionKey struct{}

func withSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func sessionFrom(ctx context.Context) string {
	session, _ := ctx.Value(sessionKey{}).(string)
	return session
}
