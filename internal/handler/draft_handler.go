package handler

import (
	"context"
	"net/http"

	"pickup-bff/internal/domain"
	"pickup-bff/internal/middleware"
	"pickup-bff/pkg/errors"
	"pickup-bff/pkg/logger"
)

// DraftService stores the create form a viewer has not submitted yet
type DraftService interface {
	Save(ctx context.Context, userID string, draft domain.ActivityDraft) (*domain.SavedDraft, error)
	Load(ctx context.Context, userID string) (*domain.SavedDraft, error)
	Discard(ctx context.Context, userID string) error
}

// DraftHandler serves /api/activities/draft
type DraftHandler struct {
	drafts DraftService
	logger *logger.Logger
}

// NewDraftHandler creates a new draft handler. drafts may be nil when no database is configured.
func NewDraftHandler(drafts DraftService, logger *logger.Logger) *DraftHandler {
	return &DraftHandler{
		drafts: drafts,
		logger: logger,
	}
}

// Get handles GET /api/activities/draft
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.ready(w, r)
	if !ok {
		return
	}
	saved, err := h.drafts.Load(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

// Put handles PUT /api/activities/draft
func (h *DraftHandler) Put(w http.ResponseWriter, r *http.Request) {
	user, ok := h.ready(w, r)
	if !ok {
		return
	}
	var draft domain.ActivityDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	saved, err := h.drafts.Save(r.Context(), user.ID, draft)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

// Delete handles DELETE /api/activities/draft
func (h *DraftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.ready(w, r)
	if !ok {
		return
	}
	if err := h.drafts.Discard(r.Context(), user.ID); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DraftHandler) ready(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	if h.drafts == nil {
		respondError(w, r, errors.NewBusinessError("DRAFTS_DISABLED", "草稿功能未啟用", http.StatusServiceUnavailable), h.logger)
		return nil, false
	}
	user := middleware.GetUser(r.Context())
	if user == nil {
		respondError(w, r, errors.NewAuthenticationError("請先登入"), h.logger)
		return nil, false
	}
	return user, true
}
