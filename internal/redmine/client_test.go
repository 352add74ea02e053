package redmine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-key", zerolog.Nop()), server
}

func TestGetIssue(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/issues/123.json" {
			t.Errorf("path = %q, want /issues/123.json", r.URL.Path)
		}
		if got := r.Header.Get("X-Redmine-API-Key"); got != "test-key" {
			t.Errorf("API key header = %q, want test-key", got)
		}
		_, _ = w.Write([]byte(`{"issue": {"id": 123, "subject": "Fix login bug", "status": {"id": 2, "name": "In Progress"}}}`))
	})

	issue, err := client.GetIssue(context.Background(), 123)
	if err != nil {
		t.Fatalf("GetIssue: %v", err)
	}
	if issue.ID != 123 || issue.Subject != "Fix login bug" {
		t.Errorf("issue = %+v", issue)
	}
	if issue.Status.Name != "In Progress" {
		t.Errorf("status = %q, want In Progress", issue.Status.Name)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, ErrAuth},
		{"forbidden", http.StatusForbidden, ErrAuth},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})
			_, err := client.GetIssue(context.Background(), 1)
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(server.URL, "test-key", zerolog.Nop())
	server.Close()

	_, err := client.GetIssue(context.Background(), 1)
	if !errors.Is(err, ErrConnection) {
		t.Errorf("error = %v, want ErrConnection", err)
	}
}

func TestFilterIssuesStatusFilter(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("assigned_to_id"); got != "me" {
			t.Errorf("assigned_to_id = %q, want me", got)
		}
		_, _ = w.Write([]byte(`{"issues": [
			{"id": 1, "subject": "a", "status": {"id": 1, "name": "New"}},
			{"id": 2, "subject": "b", "status": {"id": 2, "name": "In Progress"}},
			{"id": 3, "subject": "c", "status": {"id": 2, "name": "in progress"}}
		]}`))
	})

	issues, err := client.FilterIssues(context.Background(), "me", "IN PROGRESS")
	if err != nil {
		t.Fatalf("FilterIssues: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2 (case-insensitive status match)", len(issues))
	}

	all, err := client.FilterIssues(context.Background(), "me", "")
	if err != nil {
		t.Fatalf("FilterIssues: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d issues without filter, want 3", len(all))
	}
}

func activitiesHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/enumerations/time_entry_activities.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"time_entry_activities": [
			{"id": 8, "name": "Development"},
			{"id": 9, "name": "Testing"},
			{"id": 10, "name": "Documentation"}
		]}`))
	}
}

func TestResolveActivityCaseInsensitive(t *testing.T) {
	client, _ := newTestClient(t, activitiesHandler(t))

	for _, name := range []string{"Development", "development", "DEVELOPMENT"} {
		id, err := client.ResolveActivity(context.Background(), name)
		if err != nil {
			t.Fatalf("ResolveActivity(%q): %v", name, err)
		}
		if id != 8 {
			t.Errorf("ResolveActivity(%q) = %d, want 8", name, id)
		}
	}
}

func TestResolveActivityUnknownListsChoices(t *testing.T) {
	client, _ := newTestClient(t, activitiesHandler(t))

	_, err := client.ResolveActivity(context.Background(), "Gardening")
	if !errors.Is(err, ErrUnknownActivity) {
		t.Fatalf("error = %v, want ErrUnknownActivity", err)
	}
	for _, name := range []string{"Development", "Testing", "Documentation"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error message should list %q, got: %v", name, err)
		}
	}
}

func TestCreateTimeEntry(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/time_entries.json" {
			t.Errorf("%s %s, want POST /time_entries.json", r.Method, r.URL.Path)
		}
		var body struct {
			TimeEntry NewTimeEntry `json:"time_entry"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.TimeEntry.IssueID != 123 || body.TimeEntry.ActivityID != 8 {
			t.Errorf("payload = %+v", body.TimeEntry)
		}
		if body.TimeEntry.Hours < 1.49 || body.TimeEntry.Hours > 1.51 {
			t.Errorf("hours = %v, want ~1.5", body.TimeEntry.Hours)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"time_entry": {"id": 456}}`))
	})

	id, err := client.CreateTimeEntry(context.Background(), NewTimeEntry{
		IssueID:    123,
		Hours:      1.5,
		ActivityID: 8,
		Comments:   "Fixed login bug",
	})
	if err != nil {
		t.Fatalf("CreateTimeEntry: %v", err)
	}
	if id != 456 {
		t.Errorf("entry id = %d, want 456", id)
	}
}

func TestCurrentUser(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/current.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"user": {"id": 5, "login": "jdoe"}}`))
	})

	user, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if user.ID != 5 || user.Login != "jdoe" {
		t.Errorf("user = %+v", user)
	}
}

func TestFilterTimeEntriesQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("user_id") != "5" || q.Get("issue_id") != "123" || q.Get("limit") != "10" {
			t.Errorf("query = %v", q)
		}
		_, _ = w.Write([]byte(`{"time_entries": [
			{"id": 1, "hours": 2.5, "comments": "work", "spent_on": "2025-07-14",
			 "issue": {"id": 123}, "activity": {"id": 8, "name": "Development"}}
		]}`))
	})

	entries, err := client.FilterTimeEntries(context.Background(), 5, 123, 10)
	if err != nil {
		t.Fatalf("FilterTimeEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].Hours != 2.5 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestCreateIssue(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Issue NewIssue `json:"issue"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Issue.ProjectID != 1 || body.Issue.Subject != "[Daily][Backend] 15-07-2025" {
			t.Errorf("payload = %+v", body.Issue)
		}
		if body.Issue.StartDate != "2025-07-15" || body.Issue.DueDate != "2025-07-15" {
			t.Errorf("dates = %q / %q", body.Issue.StartDate, body.Issue.DueDate)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"issue": {"id": 777, "subject": "[Daily][Backend] 15-07-2025"}}`))
	})

	issue, err := client.CreateIssue(context.Background(), NewIssue{
		ProjectID: 1,
		Subject:   "[Daily][Backend] 15-07-2025",
		StartDate: "2025-07-15",
		DueDate:   "2025-07-15",
	})
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}
	if issue.ID != 777 {
		t.Errorf("issue id = %d, want 777", issue.ID)
	}
}
