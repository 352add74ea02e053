package redmine

// Ref is an id/name pair as Redmine embeds it in most resources.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Issue is a Redmine work item.
type Issue struct {
	ID         int    `json:"id"`
	Subject    string `json:"subject"`
	Status     Ref    `json:"status"`
	Project    Ref    `json:"project"`
	AssignedTo Ref    `json:"assigned_to"`
}

// Project is a Redmine project.
type Project struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

// Activity is a time-entry activity from the enumeration list.
type Activity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User is a Redmine account.
type User struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// TimeEntry is a logged unit of work on an issue.
type TimeEntry struct {
	ID       int     `json:"id"`
	Hours    float64 `json:"hours"`
	Comments string  `json:"comments"`
	SpentOn  string  `json:"spent_on"`
	Issue    struct {
		ID int `json:"id"`
	} `json:"issue"`
	Activity Ref `json:"activity"`
}

// NewTimeEntry is the payload for creating a time entry.
type NewTimeEntry struct {
	IssueID    int     `json:"issue_id"`
	Hours      float64 `json:"hours"`
	ActivityID int     `json:"activity_id"`
	Comments   string  `json:"comments,omitempty"`
}

// NewIssue is the payload for creating an issue. Dates use the
// YYYY-MM-DD form Redmine expects.
type NewIssue struct {
	ProjectID   int    `json:"project_id"`
	Subject     string `json:"subject"`
	StartDate   string `json:"start_date,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Description string `json:"description,omitempty"`
}
