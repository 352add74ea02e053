package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/redmcli/redm/internal/redmine"
	"github.com/redmcli/redm/internal/timer"
	"github.com/redmcli/redm/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a timer for an issue",
	Long: `Start timing work on a Redmine issue. Only one timer can run at a
time: starting a new one discards any existing timer without logging
its elapsed time, so stop first if the old time matters.

Example:
  redm start --issue-id 123`,
	Run: withClient(func(cmd *cobra.Command, args []string, client *redmine.Client) {
		issueID, err := intFlagOrPrompt(cmd, "issue-id", "Issue ID")
		if err != nil {
			fmt.Printf("Error starting timer: invalid input - %v\n", err)
			return
		}

		ctrl, _, err := newController(client)
		if err != nil {
			fmt.Printf("Error starting timer: %v\n", err)
			return
		}

		result, err := ctrl.Start(cmd.Context(), issueID)
		if err != nil {
			switch {
			case errors.Is(err, redmine.ErrNotFound):
				fmt.Printf("Error: Issue #%d not found. Please check the issue ID.\n", issueID)
			case errors.Is(err, redmine.ErrAuth):
				fmt.Printf("Error: Authentication failed or insufficient permissions - %v\n", err)
			default:
				fmt.Printf("Error starting timer: %v\n", err)
			}
			return
		}

		if result.Superseded != nil {
			fmt.Printf("Previous timer for issue #%d stopped.\n", result.Superseded.IssueID)
		}

		startedAt, _ := result.Record.StartedAt()
		fmt.Printf("Timer started for issue #%d: %s\n", issueID, result.Subject)
		fmt.Printf("Started at: %s\n", startedAt.Local().Format("2006-01-02 15:04:05"))
	}),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the timer and optionally log the time",
	Long: `Stop the running timer. You are asked whether to log the elapsed
time to Redmine; if you accept, the activity (and a comment, when not
given with --comment) are prompted for.

Once you commit to logging, the timer is cleared even if the submission
fails, so a failed submission never leaves a stale timer running.

Example:
  redm stop --comment "Fixed login bug"`,
	Run: withClient(func(cmd *cobra.Command, args []string, client *redmine.Client) {
		comment, _ := cmd.Flags().GetString("comment")

		ctrl, store, err := newController(client)
		if err != nil {
			fmt.Printf("Error stopping timer: %v\n", err)
			return
		}

		rec, err := store.Load()
		if err != nil {
			fmt.Printf("Error stopping timer: %v\n", err)
			return
		}
		if rec == nil {
			fmt.Println("No timer is currently running.")
			return
		}

		startedAt, err := rec.StartedAt()
		if err != nil {
			fmt.Println("No timer is currently running.")
			return
		}
		elapsed := time.Since(startedAt)
		if elapsed < 0 {
			elapsed = 0
		}

		fmt.Printf("Timer for issue #%d stopped.\n", rec.IssueID)
		fmt.Printf("Time elapsed: %.2f hours\n", elapsed.Hours())

		logTime, err := tui.Confirm("Do you want to log this time to Redmine?", true)
		if err != nil {
			fmt.Println("Aborted. Timer is still running.")
			return
		}

		if !logTime {
			if _, err := ctrl.Stop(cmd.Context(), timer.StopOptions{Log: false}); err != nil &&
				!errors.Is(err, timer.ErrNoActiveTimer) {
				fmt.Printf("Error stopping timer: %v\n", err)
				return
			}
			fmt.Println("Timer stopped without logging time.")
			return
		}

		activity, err := tui.Input("Activity name", "e.g. Development", "")
		if err != nil {
			fmt.Println("Aborted. Timer is still running.")
			return
		}
		if strings.TrimSpace(comment) == "" {
			comment, err = tui.Input("Comment (optional)", "", "")
			if err != nil {
				fmt.Println("Aborted. Timer is still running.")
				return
			}
		}

		result, err := ctrl.Stop(cmd.Context(), timer.StopOptions{
			Log:      true,
			Activity: strings.TrimSpace(activity),
			Comment:  strings.TrimSpace(comment),
		})
		if err != nil {
			switch {
			case errors.Is(err, timer.ErrNoActiveTimer):
				fmt.Println("No timer is currently running.")
			case errors.Is(err, redmine.ErrNotFound):
				fmt.Printf("Error: Issue #%d not found. Timer cleared.\n", result.IssueID)
			case errors.Is(err, redmine.ErrAuth):
				fmt.Printf("Error: Authentication failed - %v. Timer cleared.\n", err)
			case errors.Is(err, redmine.ErrUnknownActivity):
				fmt.Printf("Error: %v. Timer cleared.\n", err)
			default:
				fmt.Printf("Error logging time: %v. Timer cleared.\n", err)
			}
			return
		}

		fmt.Printf("Time logged successfully: %.2f hours on issue #%d\n", result.Hours, result.IssueID)
		fmt.Printf("Activity: %s\n", strings.TrimSpace(activity))
		if result.Comment != "" {
			fmt.Printf("Comment: %s\n", result.Comment)
		}
		fmt.Printf("Time entry ID: %d\n", result.EntryID)
	}),
}

var timerStatusCmd = &cobra.Command{
	Use:   "timer-status",
	Short: "Show the current timer status",
	Long: `Show whether a timer is running, which issue it is for, and the
elapsed time. With --watch, a live view redraws the elapsed time every
second until you exit (the timer keeps running).`,
	Run: withClient(func(cmd *cobra.Command, args []string, client *redmine.Client) {
		watch, _ := cmd.Flags().GetBool("watch")

		ctrl, _, err := newController(client)
		if err != nil {
			fmt.Printf("Error reading timer: %v\n", err)
			return
		}

		status, err := ctrl.Status(cmd.Context())
		if err != nil {
			fmt.Printf("Error reading timer: %v\n", err)
			return
		}
		if status == nil {
			fmt.Println("No timer is currently running.")
			return
		}

		if watch {
			if err := tui.RunWatch(status.Record.IssueID, status.Subject, status.StartedAt); err != nil {
				fmt.Printf("Error running watch view: %v\n", err)
			}
			return
		}

		if status.Subject != "" {
			fmt.Printf("Timer is running for issue #%d: %s\n", status.Record.IssueID, status.Subject)
		} else {
			fmt.Printf("Timer is running for issue #%d\n", status.Record.IssueID)
		}
		fmt.Printf("Started at: %s\n", status.StartedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Elapsed time: %.2f hours\n", status.Elapsed.Hours())
		if status.LookupErr != nil {
			fmt.Printf("(Could not fetch issue details: %v)\n", status.LookupErr)
		}
	}),
}

func init() {
	startCmd.Flags().Int("issue-id", 0, "The ID of the issue to start timing for")
	stopCmd.Flags().StringP("comment", "m", "", "Optional comment describing the work done")
	timerStatusCmd.Flags().Bool("watch", false, "Show a live updating timer view")
}
