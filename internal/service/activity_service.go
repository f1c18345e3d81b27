package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"pickup-bff/internal/domain"
	"pickup-bff/internal/service/backend"
	"pickup-bff/internal/service/eligibility"
	"pickup-bff/internal/service/form"
	"pickup-bff/pkg/errors"
	"pickup-bff/pkg/logger"
)

// ActivityService composes the form validator, the eligibility engine and the backend
// into the operations the activity pages need
type ActivityService struct {
	backend   ActivityBackend
	cache     ActivityCache
	drafts    DraftStore
	validator *form.Validator
	logger    *logger.Logger
	now       func() time.Time
}

// NewActivityService creates a new activity service. drafts may be nil.
func NewActivityService(backend ActivityBackend, cache ActivityCache, drafts DraftStore, validator *form.Validator, logger *logger.Logger) *ActivityService {
	return &ActivityService{
		backend:   backend,
		cache:     cache,
		drafts:    drafts,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// RosterResult is the outcome of a join or leave together with the refetched page state
type RosterResult struct {
	Outcome domain.Outcome    `json:"outcome"`
	View    *eligibility.View `json:"view,omitempty"`
}

// ActivityCard is one search or "my activities" entry
type ActivityCard struct {
	domain.Activity
	Badge eligibility.Badge `json:"badge"`
}

// SearchResult is a page of activity cards
type SearchResult struct {
	Items      []ActivityCard `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}

// Validate checks a draft without calling the backend
func (s *ActivityService) Validate(draft domain.ActivityDraft) form.Result {
	return s.validator.Validate(draft)
}

// Normalize applies one raw numeric field edit and re-validates the result
func (s *ActivityService) Normalize(draft domain.ActivityDraft, in form.FieldInput) (domain.ActivityDraft, form.Result) {
	draft = s.validator.Apply(draft, in)
	return draft, s.validator.Validate(draft)
}

// View loads an activity and its roster and derives the page state for viewer (nil when signed out)
func (s *ActivityService) View(ctx context.Context, session string, viewer *domain.User, activityID string) (*eligibility.View, error) {
	activity, participants, err := s.cache.GetActivityAggregate(ctx, activityID, func(ctx context.Context, id string) (*domain.Activity, []domain.Participant, error) {
		return s.fetchAggregate(ctx, session, id)
	})
	if err != nil {
		return nil, toAppError(err, "找不到此活動")
	}

	roster, err := domain.NewRoster(participants, activity.MaxParticipants)
	if err != nil {
		s.logger.WithActivity(activityID, "").WithError(err).Error("Backend returned an inconsistent roster")
		_ = s.cache.InvalidateActivity(ctx, activityID)
		return nil, errors.NewExternalError("活動名單資料異常，請稍後再試", err)
	}

	view := eligibility.Evaluate(activity, roster, viewer, s.now())
	return &view, nil
}

// fetchAggregate loads the activity and its participants in parallel
func (s *ActivityService) fetchAggregate(ctx context.Context, session, activityID string) (*domain.Activity, []domain.Participant, error) {
	var (
		activity     *domain.Activity
		participants []domain.Participant
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.backend.GetActivity(gctx, session, activityID)
		if err != nil {
			return err
		}
		activity = a
		return nil
	})
	g.Go(func() error {
		ps, err := s.backend.GetParticipants(gctx, session, activityID)
		if err != nil {
			return err
		}
		participants = ps
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return activity, participants, nil
}

// Search proxies a paginated search and decorates each item with its badge
func (s *ActivityService) Search(ctx context.Context, session string, params domain.SearchParams) (*SearchResult, error) {
	page, err := s.backend.SearchActivities(ctx, session, params)
	if err != nil {
		return nil, toAppError(err, "搜尋活動失敗，請稍後再試")
	}

	now := s.now()
	result := &SearchResult{
		Items:      make([]ActivityCard, 0, len(page.Items)),
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}
	for i := range page.Items {
		result.Items = append(result.Items, ActivityCard{
			Activity: page.Items[i],
			Badge:    eligibility.ListingBadge(&page.Items[i], now),
		})
	}
	return result, nil
}

// Mine lists the activities of the signed-in user
func (s *ActivityService) Mine(ctx context.Context, session string) ([]ActivityCard, error) {
	activities, err := s.backend.MyActivities(ctx, session)
	if err != nil {
		return nil, toAppError(err, "讀取我的活動失敗，請稍後再試")
	}

	return s.cards(activities), nil
}

// UserActivities lists the activities shown on another user's profile page
func (s *ActivityService) UserActivities(ctx context.Context, session, userID string) ([]ActivityCard, error) {
	activities, err := s.backend.UserActivities(ctx, session, userID)
	if err != nil {
		return nil, toAppError(err, "讀取使用者活動失敗，請稍後再試")
	}
	return s.cards(activities), nil
}

func (s *ActivityService) cards(activities []domain.Activity) []ActivityCard {
	now := s.now()
	cards := make([]ActivityCard, 0, len(activities))
	for i := range activities {
		cards = append(cards, ActivityCard{
			Activity: activities[i],
			Badge:    eligibility.ListingBadge(&activities[i], now),
		})
	}
	return cards
}

// CaptainContacts returns the phone numbers of everyone on the roster, waiting list included.
// Only the activity's creator may see them.
func (s *ActivityService) CaptainContacts(ctx context.Context, session string, viewer *domain.User, activityID string) ([]domain.ParticipantContact, error) {
	if _, err := s.ownedActivity(ctx, session, viewer, activityID); err != nil {
		return nil, err
	}

	participants, err := s.backend.GetParticipants(ctx, session, activityID)
	if err != nil {
		return nil, toAppError(err, "讀取報名名單失敗，請稍後再試")
	}
	userIDs := make([]string, 0, len(participants))
	for _, p := range participants {
		userIDs = append(userIDs, p.UserID)
	}

	contacts, err := s.backend.ParticipantContacts(ctx, session, activityID, userIDs)
	if err != nil {
		return nil, toAppError(err, "讀取聯絡資料失敗，請稍後再試")
	}

	s.logger.WithActivity(activityID, viewer.ID).WithField("count", len(contacts)).Info("Roster contacts read")
	return contacts, nil
}

// Create validates a new activity, repairs its quotas and sends it.
// A saved draft of the creator is discarded once the activity exists.
func (s *ActivityService) Create(ctx context.Context, session string, viewer *domain.User, draft domain.ActivityDraft) (*domain.Activity, error) {
	if viewer == nil {
		return nil, errors.NewAuthenticationError(messageLoginRequired)
	}

	req, result := s.validator.PrepareCreate(draft)
	if !result.Valid {
		return nil, violationError(result)
	}

	activity, err := s.backend.CreateActivity(ctx, session, req)
	if err != nil {
		return nil, toAppError(err, "建立活動失敗，請稍後再試")
	}

	log := s.logger.WithActivity(activity.ID, viewer.ID)
	log.Info("Activity created")

	if s.drafts != nil {
		if err := s.drafts.Discard(ctx, viewer.ID); err != nil {
			log.WithError(err).Warn("Failed to discard draft after create")
		}
	}
	return activity, nil
}

// EditDraft loads an activity into the edit form. Only its creator may do so.
func (s *ActivityService) EditDraft(ctx context.Context, session string, viewer *domain.User, activityID string) (*domain.ActivityDraft, error) {
	activity, err := s.ownedActivity(ctx, session, viewer, activityID)
	if err != nil {
		return nil, err
	}
	draft := domain.DraftFromActivity(activity)
	return &draft, nil
}

// Update validates an edited activity and sends it. Quotas are sent as entered.
func (s *ActivityService) Update(ctx context.Context, session string, viewer *domain.User, activityID string, draft domain.ActivityDraft) (*domain.Activity, error) {
	if _, err := s.ownedActivity(ctx, session, viewer, activityID); err != nil {
		return nil, err
	}

	req, result := s.validator.PrepareUpdate(draft)
	if !result.Valid {
		return nil, violationError(result)
	}

	activity, err := s.backend.UpdateActivity(ctx, session, activityID, req)
	s.invalidate(ctx, activityID)
	if err != nil {
		return nil, toAppError(err, "更新活動失敗，請稍後再試")
	}

	s.logger.WithActivity(activityID, viewer.ID).Info("Activity updated")
	return activity, nil
}

// Delete removes an activity. Only its creator may do so.
func (s *ActivityService) Delete(ctx context.Context, session string, viewer *domain.User, activityID string) error {
	if _, err := s.ownedActivity(ctx, session, viewer, activityID); err != nil {
		return err
	}

	err := s.backend.DeleteActivity(ctx, session, activityID)
	s.invalidate(ctx, activityID)
	if err != nil {
		return toAppError(err, "刪除活動失敗，請稍後再試")
	}

	s.logger.WithActivity(activityID, viewer.ID).Info("Activity deleted")
	return nil
}

// Join asks the backend for a seat. On success the page state is refetched, never predicted;
// on failure it is left untouched.
func (s *ActivityService) Join(ctx context.Context, session string, viewer *domain.User, activityID string) *RosterResult {
	if viewer == nil {
		return &RosterResult{Outcome: signInOutcome(domain.ActionJoin)}
	}
	err := s.backend.JoinActivity(ctx, session, activityID, viewer.JoinPosition())
	return s.afterRosterChange(ctx, session, viewer, activityID, domain.ActionJoin, err)
}

// Leave gives up the viewer's seat or waiting-list place
func (s *ActivityService) Leave(ctx context.Context, session string, viewer *domain.User, activityID string) *RosterResult {
	if viewer == nil {
		return &RosterResult{Outcome: signInOutcome(domain.ActionLeave)}
	}
	err := s.backend.LeaveActivity(ctx, session, activityID)
	return s.afterRosterChange(ctx, session, viewer, activityID, domain.ActionLeave, err)
}

func (s *ActivityService) afterRosterChange(ctx context.Context, session string, viewer *domain.User, activityID string, action domain.Action, err error) *RosterResult {
	log := s.logger.WithActivity(activityID, viewer.ID).WithField("action", string(action))
	outcome := MapOutcome(action, err)

	if err != nil {
		switch outcome.Kind {
		case domain.OutcomeWarning:
			log.WithField("code", string(outcome.Code)).Info("Roster change declined")
		default:
			log.WithError(err).WithField("class", string(backend.Classify(err))).Warn("Roster change failed")
		}
		if outcome.ClearSession {
			s.cache.DropSession(ctx, session)
		}
		return &RosterResult{Outcome: outcome}
	}

	log.Info("Roster changed")
	s.invalidate(ctx, activityID)

	view, viewErr := s.View(ctx, session, viewer, activityID)
	if viewErr != nil {
		log.WithError(viewErr).Warn("Failed to refetch activity after roster change")
		return &RosterResult{Outcome: outcome}
	}
	return &RosterResult{Outcome: outcome, View: view}
}

// ownedActivity loads an activity and checks the viewer created it
func (s *ActivityService) ownedActivity(ctx context.Context, session string, viewer *domain.User, activityID string) (*domain.Activity, error) {
	if viewer == nil {
		return nil, errors.NewAuthenticationError(messageLoginRequired)
	}

	activity, err := s.backend.GetActivity(ctx, session, activityID)
	if err != nil {
		return nil, toAppError(err, "找不到此活動")
	}
	if activity.CreatedBy != viewer.ID {
		return nil, errors.NewAuthorizationError("只有活動建立者可以修改此活動")
	}
	return activity, nil
}

func (s *ActivityService) invalidate(ctx context.Context, activityID string) {
	if err := s.cache.InvalidateActivity(ctx, activityID); err != nil {
		s.logger.WithActivity(activityID, "").WithError(err).Warn("Failed to invalidate activity cache")
	}
}

func signInOutcome(action domain.Action) domain.Outcome {
	return domain.Outcome{
		Action:   action,
		Kind:     domain.OutcomeRedirect,
		Code:     domain.CodeUnauthorized,
		Message:  messageLoginRequired,
		Redirect: domain.RouteLogin,
	}
}
