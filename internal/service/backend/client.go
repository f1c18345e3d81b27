package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"pickup-bff/internal/config"
	"pickup-bff/internal/domain"
	"pickup-bff/pkg/logger"
)

// Client talks to the activity REST backend on behalf of a signed-in browser session.
// It never retries: a failed call is reported once and the caller decides what to show.
type Client struct {
	baseURL    string
	cookieName string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a backend client
func NewClient(cfg *config.Config, logger *logger.Logger) *Client {
	timeout := cfg.BackendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BackendAPIURL,
		cookieName: cfg.SessionCookieName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// joinRequest is the body of POST /activities/{id}/join
type joinRequest struct {
	Position string `json:"position"`
}

type nicknameResponse struct {
	Success bool `json:"success"`
}

// CurrentUser resolves the session to its user
func (c *Client) CurrentUser(ctx context.Context, session string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/users/me", session, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser forwards a profile update
func (c *Client) UpdateUser(ctx context.Context, session, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(userID), session, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckNickname reports whether nickname is still free
func (c *Client) CheckNickname(ctx context.Context, session, nickname string) (bool, error) {
	var resp nicknameResponse
	path := "/users/check-nickname?" + url.Values{"nickname": {nickname}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, session, nil, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

// GetActivity fetches one activity
func (c *Client) GetActivity(ctx context.Context, session, id string) (*domain.Activity, error) {
	var activity domain.Activity
	if err := c.do(ctx, http.MethodGet, "/activities/"+url.PathEscape(id), session, nil, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// GetParticipants fetches the roster in admission order
func (c *Client) GetParticipants(ctx context.Context, session, id string) ([]domain.Participant, error) {
	var participants []domain.Participant
	if err := c.do(ctx, http.MethodGet, "/activities/"+url.PathEscape(id)+"/participants", session, nil, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// SearchActivities runs a paginated search
func (c *Client) SearchActivities(ctx context.Context, session string, params domain.SearchParams) (*domain.ActivityPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("limit", strconv.Itoa(params.Limit))
	for key, value := range map[string]string{
		"startDate": params.StartDate,
		"endDate":   params.EndDate,
		"city":      params.City,
		"district":  params.District,
		"title":     params.Title,
		"location":  params.Location,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}

	var page domain.ActivityPage
	if err := c.do(ctx, http.MethodGet, "/activities/search?"+q.Encode(), session, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// MyActivities lists the activities the session user created or joined
func (c *Client) MyActivities(ctx context.Context, session string) ([]domain.Activity, error) {
	var activities []domain.Activity
	if err := c.do(ctx, http.MethodGet, "/activities/me", session, nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// CreateActivity creates an activity
func (c *Client) CreateActivity(ctx context.Context, session string, req domain.ActivityRequest) (*domain.Activity, error) {
	var activity domain.Activity
	if err := c.do(ctx, http.MethodPost, "/activities", session, req, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateActivity replaces an activity's editable fields
func (c *Client) UpdateActivity(ctx context.Context, session, id string, req domain.ActivityRequest) (*domain.Activity, error) {
	var activity domain.Activity
	if err := c.do(ctx, http.MethodPut, "/activities/"+url.PathEscape(id), session, req, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// DeleteActivity deletes an activity
func (c *Client) DeleteActivity(ctx context.Context, session, id string) error {
	return c.do(ctx, http.MethodDelete, "/activities/"+url.PathEscape(id), session, nil, nil)
}

// JoinActivity asks the backend to admit the session user
func (c *Client) JoinActivity(ctx context.Context, session, id, position string) error {
	return c.do(ctx, http.MethodPost, "/activities/"+url.PathEscape(id)+"/join", session, joinRequest{Position: position}, nil)
}

// LeaveActivity removes the session user from the roster
func (c *Client) LeaveActivity(ctx context.Context, session, id string) error {
	return c.do(ctx, http.MethodPost, "/activities/"+url.PathEscape(id)+"/leave", session, nil, nil)
}

// ParticipantContacts fetches contact details of the given roster users. Only the captain may ask.
func (c *Client) ParticipantContacts(ctx context.Context, session, id string, userIDs []string) ([]domain.ParticipantContact, error) {
	if len(userIDs) == 0 {
		return []domain.ParticipantContact{}, nil
	}
	var contacts []domain.ParticipantContact
	path := "/activities/" + url.PathEscape(id) + "/users?" + url.Values{"ids": {strings.Join(userIDs, ",")}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, session, nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// GetUser fetches another user's public profile
func (c *Client) GetUser(ctx context.Context, session, userID string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), session, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserActivities lists the activities a user created or joined
func (c *Client) UserActivities(ctx context.Context, session, userID string) ([]domain.Activity, error) {
	var activities []domain.Activity
	if err := c.do(ctx, http.MethodGet, "/activities/user/"+url.PathEscape(userID), session, nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// Logout ends the session on the backend
func (c *Client) Logout(ctx context.Context, session string) error {
	return c.do(ctx, http.MethodPost, "/users/logout", session, nil, nil)
}

// Notifications lists the session user's notifications
func (c *Client) Notifications(ctx context.Context, session string) ([]domain.Notification, error) {
	var notifications []domain.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", session, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks one notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, session, id string) error {
	return c.do(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/read", session, nil, nil)
}

// MarkAllNotificationsRead marks every notification of the session user as read
func (c *Client) MarkAllNotificationsRead(ctx context.Context, session string) error {
	return c.do(ctx, http.MethodPut, "/notifications/read-all", session, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, session string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: session})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"method": method,
			"path":   path,
		}).WithError(err).Warn("Backend request failed")
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %v", ErrTransport, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"method":      method,
		"path":        path,
		"status_code": resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Backend request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.WithFields(map[string]interface{}{
			"response_body": truncate(string(respBody), 256),
			"status_code":   resp.StatusCode,
		}).Error("Failed to parse backend response")
		return fmt.Errorf("failed to parse backend response: %w", err)
	}
	return nil
}

// decodeAPIError keeps the status even when the body is not the usual envelope
func decodeAPIError(status int, body []byte) error {
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(body, apiErr); err != nil || (apiErr.Code == "" && apiErr.Message == "") {
		apiErr.Code = ""
		apiErr.Message = truncate(string(bytes.TrimSpace(body)), 256)
	}
	return apiErr
}

// truncate cuts s to at most n bytes without splitting a character
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
