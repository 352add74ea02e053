// Package redmine is a thin client for the Redmine REST API, covering
// the handful of resources redm needs: issues, projects, time entries,
// time-entry activities and the current user.
package redmine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrNotFound means the requested resource does not exist remotely.
	ErrNotFound = errors.New("not found")
	// ErrAuth means the API key was rejected or lacks permission.
	ErrAuth = errors.New("authentication failed or insufficient permissions")
	// ErrConnection means the request never got a usable response.
	ErrConnection = errors.New("connection failed")
	// ErrUnknownActivity means an activity name matched nothing in the
	// remote enumeration.
	ErrUnknownActivity = errors.New("unknown activity")
)

// Client talks to a single Redmine instance. Construct one per process
// invocation and pass it down; it is safe for reuse across calls.
type Client struct {
	baseURL string
	key     string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a client for the given instance URL and API key.
func NewClient(baseURL, key string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// GetIssue fetches a single issue by id.
func (c *Client) GetIssue(ctx context.Context, id int) (Issue, error) {
	var out struct {
		Issue Issue `json:"issue"`
	}
	path := "/issues/" + strconv.Itoa(id) + ".json"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return Issue{}, err
	}
	return out.Issue, nil
}

// FilterIssues lists issues for an assignee ("me" for the current
// user), optionally narrowed to a status name. Redmine only filters by
// status id, so the name match happens client side, case-insensitively.
func (c *Client) FilterIssues(ctx context.Context, assignee, status string) ([]Issue, error) {
	q := url.Values{}
	q.Set("assigned_to_id", assignee)
	q.Set("limit", "100")
	var out struct {
		Issues []Issue `json:"issues"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/issues.json", q, nil, &out); err != nil {
		return nil, err
	}
	if status == "" {
		return out.Issues, nil
	}
	matched := make([]Issue, 0, len(out.Issues))
	for _, issue := range out.Issues {
		if strings.EqualFold(issue.Status.Name, status) {
			matched = append(matched, issue)
		}
	}
	return matched, nil
}

// ListProjects lists the projects visible to the current user.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	q := url.Values{}
	q.Set("limit", "100")
	var out struct {
		Projects []Project `json:"projects"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/projects.json", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

// GetProject fetches a single project by id.
func (c *Client) GetProject(ctx context.Context, id int) (Project, error) {
	var out struct {
		Project Project `json:"project"`
	}
	path := "/projects/" + strconv.Itoa(id) + ".json"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return Project{}, err
	}
	return out.Project, nil
}

// CreateIssue creates an issue and returns it.
func (c *Client) CreateIssue(ctx context.Context, issue NewIssue) (Issue, error) {
	body := map[string]NewIssue{"issue": issue}
	var out struct {
		Issue Issue `json:"issue"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/issues.json", nil, body, &out); err != nil {
		return Issue{}, err
	}
	return out.Issue, nil
}

// ListActivities lists the time-entry activity enumeration.
func (c *Client) ListActivities(ctx context.Context) ([]Activity, error) {
	var out struct {
		Activities []Activity `json:"time_entry_activities"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/enumerations/time_entry_activities.json", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Activities, nil
}

// ResolveActivity maps an activity name to its id with a
// case-insensitive exact match. The error for an unknown name lists the
// available activities so the user can correct it.
func (c *Client) ResolveActivity(ctx context.Context, name string) (int, error) {
	activities, err := c.ListActivities(ctx)
	if err != nil {
		return 0, err
	}
	for _, activity := range activities {
		if strings.EqualFold(activity.Name, name) {
			return activity.ID, nil
		}
	}
	names := make([]string, 0, len(activities))
	for _, activity := range activities {
		names = append(names, activity.Name)
	}
	return 0, fmt.Errorf("%w: activity %q not found. Available activities: %s",
		ErrUnknownActivity, name, strings.Join(names, ", "))
}

// CreateTimeEntry logs hours against an issue and returns the created
// entry's id.
func (c *Client) CreateTimeEntry(ctx context.Context, entry NewTimeEntry) (int, error) {
	body := map[string]NewTimeEntry{"time_entry": entry}
	var out struct {
		TimeEntry TimeEntry `json:"time_entry"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/time_entries.json", nil, body, &out); err != nil {
		return 0, err
	}
	return out.TimeEntry.ID, nil
}

// CurrentUser fetches the account behind the API key.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/users/current.json", nil, nil, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// FilterTimeEntries lists recent time entries for a user, optionally
// narrowed to one issue. Entries come back most recent first.
func (c *Client) FilterTimeEntries(ctx context.Context, userID, issueID, limit int) ([]TimeEntry, error) {
	q := url.Values{}
	q.Set("user_id", strconv.Itoa(userID))
	if issueID > 0 {
		q.Set("issue_id", strconv.Itoa(issueID))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		TimeEntries []TimeEntry `json:"time_entries"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/time_entries.json", q, nil, &out); err != nil {
		return nil, err
	}
	return out.TimeEntries, nil
}

func (c *Client) apiURL(path string, q url.Values) string {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) doJSON(ctx context.Context, method, path string, q url.Values, body, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("%w: empty Redmine URL", ErrConnection)
	}

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}

	u := c.apiURL(path, q)
	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return err
	}
	req.Header.Set("X-Redmine-API-Key", c.key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().Str("method", method).Str("url", u).Msg("redmine request")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	c.log.Debug().Int("status", resp.StatusCode).Str("url", u).Msg("redmine response")

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrAuth
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 300:
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("redmine api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
