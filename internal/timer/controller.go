package timer

import (
	"context"
	"errors"
	"time"

	"github.com/redmcli/redm/internal/redmine"
)

// ErrNoActiveTimer is returned by Stop when no timer is running. It is
// a normal outcome for the caller to report, not a fault.
var ErrNoActiveTimer = errors.New("no timer is currently running")

// Tracker is the slice of the Redmine client the controller needs.
type Tracker interface {
	GetIssue(ctx context.Context, id int) (redmine.Issue, error)
	ResolveActivity(ctx context.Context, name string) (int, error)
	CreateTimeEntry(ctx context.Context, entry redmine.NewTimeEntry) (int, error)
}

// Controller owns the timer lifecycle rules. All state lives in the
// store; the controller itself is stateless across invocations.
type Controller struct {
	store   *Store
	tracker Tracker
	now     func() time.Time
}

// NewController builds a controller over the given store and tracker.
func NewController(store *Store, tracker Tracker) *Controller {
	return &Controller{store: store, tracker: tracker, now: time.Now}
}

// StartResult reports an accepted Start.
type StartResult struct {
	Record     Record
	Subject    string  // subject of the issue being timed
	Superseded *Record // previous timer, if one was discarded
}

// Start begins timing the given issue. The issue must exist remotely;
// on any lookup failure no state changes. A timer that is already
// running is discarded without being logged: at most one timer exists
// and stopping first is the caller's responsibility when the old time
// matters.
func (c *Controller) Start(ctx context.Context, issueID int) (StartResult, error) {
	issue, err := c.tracker.GetIssue(ctx, issueID)
	if err != nil {
		return StartResult{}, err
	}

	prev, err := c.store.Load()
	if err != nil {
		return StartResult{}, err
	}

	rec := Record{
		IssueID:   issueID,
		StartTime: c.now().UTC().Format(time.RFC3339Nano),
	}
	if err := c.store.Save(rec); err != nil {
		return StartResult{}, err
	}

	return StartResult{Record: rec, Subject: issue.Subject, Superseded: prev}, nil
}

// Status describes a running timer.
type Status struct {
	Record    Record
	StartedAt time.Time
	Elapsed   time.Duration
	Subject   string
	LookupErr error // set when the remote subject lookup failed
}

// Status reports the running timer, or nil when none is. The remote
// issue lookup only enriches the result: if it fails, elapsed time and
// the record are still returned with the error attached, so a remote
// outage never hides local timer state.
func (c *Controller) Status(ctx context.Context) (*Status, error) {
	rec, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	startedAt, err := rec.StartedAt()
	if err != nil {
		return nil, nil
	}

	elapsed := c.now().Sub(startedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	st := &Status{Record: *rec, StartedAt: startedAt, Elapsed: elapsed}
	issue, err := c.tracker.GetIssue(ctx, rec.IssueID)
	if err != nil {
		st.LookupErr = err
	} else {
		st.Subject = issue.Subject
	}
	return st, nil
}

// StopOptions carries the caller's decision for Stop.
type StopOptions struct {
	Log      bool   // submit a time entry for the elapsed time
	Activity string // activity name, required when Log is true
	Comment  string
}

// StopResult reports a Stop. IssueID, Elapsed and Hours are valid
// whenever a timer existed, including when the submission failed.
type StopResult struct {
	IssueID int
	Elapsed time.Duration
	Hours   float64
	Logged  bool
	EntryID int
	Comment string
}

// Stop ends the running timer. When opts.Log is false the record is
// cleared and no remote call is made. When it is true, the elapsed
// hours are submitted as a time entry; the record is cleared whether or
// not the submission succeeds, so a failed submission never leaves a
// stale timer silently running. Returns ErrNoActiveTimer when idle.
func (c *Controller) Stop(ctx context.Context, opts StopOptions) (StopResult, error) {
	rec, err := c.store.Load()
	if err != nil {
		return StopResult{}, err
	}
	if rec == nil {
		return StopResult{}, ErrNoActiveTimer
	}

	startedAt, err := rec.StartedAt()
	if err != nil {
		return StopResult{}, ErrNoActiveTimer
	}

	elapsed := c.now().Sub(startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	res := StopResult{
		IssueID: rec.IssueID,
		Elapsed: elapsed,
		Hours:   elapsed.Hours(),
		Comment: opts.Comment,
	}

	if !opts.Log {
		if _, err := c.store.Clear(); err != nil {
			return res, err
		}
		return res, nil
	}

	// Once a submission is attempted the timer is cleared regardless of
	// the outcome; the elapsed time is reported back to the caller.
	if err := c.submit(ctx, &res, opts); err != nil {
		if _, clearErr := c.store.Clear(); clearErr != nil {
			return res, clearErr
		}
		return res, err
	}
	if _, err := c.store.Clear(); err != nil {
		return res, err
	}
	res.Logged = true
	return res, nil
}

func (c *Controller) submit(ctx context.Context, res *StopResult, opts StopOptions) error {
	if _, err := c.tracker.GetIssue(ctx, res.IssueID); err != nil {
		return err
	}
	activityID, err := c.tracker.ResolveActivity(ctx, opts.Activity)
	if err != nil {
		return err
	}
	entryID, err := c.tracker.CreateTimeEntry(ctx, redmine.NewTimeEntry{
		IssueID:    res.IssueID,
		Hours:      res.Hours,
		ActivityID: activityID,
		Comments:   opts.Comment,
	})
	if err != nil {
		return err
	}
	res.EntryID = entryID
	return nil
}
