package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redmcli/redm/internal/redmine"
	"github.com/redmcli/redm/internal/tui"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log time worked on an issue",
	Long: `Register time spent on a Redmine issue. The entry is associated
with your account and dated today.

Activity names are matched case-insensitively; an unknown name lists
the valid choices.

Example:
  redm log --issue-id 123 --hours 2.5 --activity Development -m "Fixed login bug"`,
	Run: withClient(func(cmd *cobra.Command, args []string, client *redmine.Client) {
		issueID, err := intFlagOrPrompt(cmd, "issue-id", "Issue ID")
		if err != nil {
			fmt.Printf("Error: invalid input - %v\n", err)
			return
		}
		hours, err := floatFlagOrPrompt(cmd, "hours", "Hours worked")
		if err != nil {
			fmt.Printf("Error: invalid input - %v\n", err)
			return
		}
		activity, err := stringFlagOrPrompt(cmd, "activity", "Activity name", "e.g. Development")
		if err != nil {
			fmt.Println("Cancelled.")
			return
		}
		comment, _ := cmd.Flags().GetString("comment")

		ctx := cmd.Context()

		if _, err := client.GetIssue(ctx, issueID); err != nil {
			switch {
			case errors.Is(err, redmine.ErrNotFound):
				fmt.Printf("Error: Issue #%d not found. Please check the issue ID.\n", issueID)
			case errors.Is(err, redmine.ErrAuth):
				fmt.Printf("Error: Authentication failed or insufficient permissions - %v\n", err)
			default:
				fmt.Printf("Error logging time: %v\n", err)
			}
			return
		}

		activityID, err := client.ResolveActivity(ctx, activity)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		entryID, err := client.CreateTimeEntry(ctx, redmine.NewTimeEntry{
			IssueID:    issueID,
			Hours:      hours,
			ActivityID: activityID,
			Comments:   comment,
		})
		if err != nil {
			fmt.Printf("Error logging time: %v\n", err)
			return
		}

		fmt.Printf("Time logged successfully: %.2f hours on issue #%d\n", hours, issueID)
		fmt.Printf("Activity: %s\n", activity)
		if comment != "" {
			fmt.Printf("Comment: %s\n", comment)
		}
		fmt.Printf("Time entry ID: %d\n", entryID)
	}),
}

// intFlagOrPrompt reads an integer flag, prompting for it when unset.
func intFlagOrPrompt(cmd *cobra.Command, flag, label string) (int, error) {
	value, _ := cmd.Flags().GetInt(flag)
	if value > 0 {
		return value, nil
	}
	raw, err := tui.Input(label, "", "")
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("%q is not a valid %s", raw, strings.ToLower(label))
	}
	return parsed, nil
}

// floatFlagOrPrompt reads a float flag, prompting for it when unset.
func floatFlagOrPrompt(cmd *cobra.Command, flag, label string) (float64, error) {
	value, _ := cmd.Flags().GetFloat64(flag)
	if value > 0 {
		return value, nil
	}
	raw, err := tui.Input(label, "e.g. 2.5", "")
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("%q is not a valid number of hours", raw)
	}
	return parsed, nil
}

// stringFlagOrPrompt reads a string flag, prompting for it when unset.
func stringFlagOrPrompt(cmd *cobra.Command, flag, label, placeholder string) (string, error) {
	value, _ := cmd.Flags().GetString(flag)
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), nil
	}
	raw, err := tui.Input(label, placeholder, "")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func init() {
	logCmd.Flags().Int("issue-id", 0, "The ID of the issue to log time for")
	logCmd.Flags().Float64("hours", 0, "Number of hours worked (e.g. 2.5)")
	logCmd.Flags().String("activity", "", "Activity name (e.g. 'Development', 'Testing')")
	logCmd.Flags().StringP("comment", "m", "", "Optional comment describing the work done")
}
