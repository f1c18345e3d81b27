package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pickup-bff/internal/domain"
	"pickup-bff/internal/middleware"
	"pickup-bff/internal/service"
	"pickup-bff/internal/service/eligibility"
	"pickup-bff/internal/service/form"
	"pickup-bff/pkg/errors"
	"pickup-bff/pkg/logger"
)

// ActivityService is what the activity routes need from the service layer
type ActivityService interface {
	Validate(draft domain.ActivityDraft) form.Result
	Normalize(draft domain.ActivityDraft, in form.FieldInput) (domain.ActivityDraft, form.Result)
	View(ctx context.Context, session string, viewer *domain.User, activityID string) (*eligibility.View, error)
	Search(ctx context.Context, session string, params domain.SearchParams) (*service.SearchResult, error)
	Mine(ctx context.Context, session string) ([]service.ActivityCard, error)
	UserActivities(ctx context.Context, session, userID string) ([]service.ActivityCard, error)
	CaptainContacts(ctx context.Context, session string, viewer *domain.User, activityID string) ([]domain.ParticipantContact, error)
	Create(ctx context.Context, session string, viewer *domain.User, draft domain.ActivityDraft) (*domain.Activity, error)
	EditDraft(ctx context.Context, session string, viewer *domain.User, activityID string) (*domain.ActivityDraft, error)
	Update(ctx context.Context, session string, viewer *domain.User, activityID string, draft domain.ActivityDraft) (*domain.Activity, error)
	Delete(ctx context.Context, session string, viewer *domain.User, activityID string) error
	Join(ctx context.Context, session string, viewer *domain.User, activityID string) *service.RosterResult
	Leave(ctx context.Context, session string, viewer *domain.User, activityID string) *service.RosterResult
}

// ActivityHandler serves the activity pages
type ActivityHandler struct {
	activities ActivityService
	cookieName string
	logger     *logger.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activities ActivityService, cookieName string, logger *logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		activities: activities,
		cookieName: cookieName,
		logger:     logger,
	}
}

// NormalizeRequest is the body of POST /api/activities/normalize
type NormalizeRequest struct {
	Draft domain.ActivityDraft `json:"draft"`
	Input form.FieldInput      `json:"input"`
}

// NormalizeResponse carries the draft after a numeric field edit
type NormalizeResponse struct {
	Draft  domain.ActivityDraft `json:"draft"`
	Result form.Result          `json:"result"`
}

// Validate handles POST /api/activities/validate
func (h *ActivityHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var draft domain.ActivityDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, h.activities.Validate(draft))
}

// Normalize handles POST /api/activities/normalize
func (h *ActivityHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	draft, result := h.activities.Normalize(req.Draft, req.Input)
	respondJSON(w, http.StatusOK, NormalizeResponse{Draft: draft, Result: result})
}

// Search handles GET /api/activities
func (h *ActivityHandler) Search(w http.ResponseWriter, r *http.Request) {
	params, err := parseSearchParams(r)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	result, err := h.activities.Search(r.Context(), middleware.GetSession(r.Context()), params)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Mine handles GET /api/activities/me
func (h *ActivityHandler) Mine(w http.ResponseWriter, r *http.Request) {
	cards, err := h.activities.Mine(r.Context(), middleware.GetSession(r.Context()))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": cards})
}

// UserActivities handles GET /api/users/{id}/activities
func (h *ActivityHandler) UserActivities(w http.ResponseWriter, r *http.Request) {
	cards, err := h.activities.UserActivities(r.Context(), middleware.GetSession(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": cards})
}

// Contacts handles GET /api/activities/{id}/contacts
func (h *ActivityHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contacts, err := h.activities.CaptainContacts(ctx, middleware.GetSession(ctx), middleware.GetUser(ctx), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": contacts})
}

// Get handles GET /api/activities/{id}
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.activities.View(ctx, middleware.GetSession(ctx), middleware.GetUser(ctx), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Create handles POST /api/activities
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft domain.ActivityDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	ctx := r.Context()
	activity, err := h.activities.Create(ctx, middleware.GetSession(ctx), middleware.GetUser(ctx), draft)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusCreated, activity)
}

// Edit handles GET /api/activities/{id}/edit
func (h *ActivityHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	draft, err := h.activities.EditDraft(ctx, middleware.GetSession(ctx), middleware.GetUser(ctx), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

// Update handles PUT /api/activities/{id}
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var draft domain.ActivityDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	ctx := r.Context()
	activity, err := h.activities.Update(ctx, middleware.GetSession(ctx), middleware.GetUser(ctx), chi.URLParam(r, "id"), draft)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

// Delete handles DELETE /api/activities/{id}
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.activities.Delete(ctx, middleware.GetSession(ctx), middleware.GetUser(ctx), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Join handles POST /api/activities/{id}/join
func (h *ActivityHandler) Join(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.respondRoster(w, h.activities.Join(ctx, middleware.GetSession(ctx), middleware.GetUser(ctx), chi.URLParam(r, "id")))
}

// Leave handles POST /api/activities/{id}/leave
func (h *ActivityHandler) Leave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.respondRoster(w, h.activities.Leave(ctx, middleware.GetSession(ctx), middleware.GetUser(ctx), chi.URLParam(r, "id")))
}

// respondRoster always answers 200: the outcome itself says whether the roster changed
func (h *ActivityHandler) respondRoster(w http.ResponseWriter, result *service.RosterResult) {
	if result.Outcome.ClearSession {
		middleware.ClearSessionCookie(w, h.cookieName)
	}
	if result.Outcome.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(result.Outcome.RetryAfter))
	}
	respondJSON(w, http.StatusOK, result)
}

func parseSearchParams(r *http.Request) (domain.SearchParams, error) {
	q := r.URL.Query()
	params := domain.SearchParams{
		Page:      domain.DefaultSearchPage,
		Limit:     domain.DefaultSearchLimit,
		StartDate: strings.TrimSpace(q.Get("startDate")),
		EndDate:   strings.TrimSpace(q.Get("endDate")),
		City:      strings.TrimSpace(q.Get("city")),
		District:  strings.TrimSpace(q.Get("district")),
		Title:     strings.TrimSpace(q.Get("title")),
		Location:  strings.TrimSpace(q.Get("location")),
	}

	for name, dst := range map[string]*int{"page": &params.Page, "limit": &params.Limit} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return params, errors.NewBadRequestError("Invalid field: " + name)
		}
		*dst = n
	}

	if err := validateStruct(params); err != nil {
		return params, err
	}
	return params, nil
}
