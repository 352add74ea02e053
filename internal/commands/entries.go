package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redmcli/redm/internal/redmine"
)

var entriesCmd = &cobra.Command{
	Use:   "time-entries",
	Short: "List your recent time entries",
	Long: `List recent time entries logged by the current user, most recent
first, with a total at the end.

Example:
  redm time-entries
  redm time-entries --issue-id 123 --limit 20`,
	Run: withClient(func(cmd *cobra.Command, args []string, client *redmine.Client) {
		issueID, _ := cmd.Flags().GetInt("issue-id")
		limit, _ := cmd.Flags().GetInt("limit")

		ctx := cmd.Context()

		user, err := client.CurrentUser(ctx)
		if err != nil {
			fmt.Printf("Error fetching time entries: %v\n", err)
			return
		}

		entries, err := client.FilterTimeEntries(ctx, user.ID, issueID, limit)
		if err != nil {
			fmt.Printf("Error fetching time entries: %v\n", err)
			return
		}

		if len(entries) == 0 {
			if issueID > 0 {
				fmt.Printf("No time entries found for issue #%d.\n", issueID)
			} else {
				fmt.Println("No time entries found.")
			}
			return
		}

		var totalHours float64
		for _, entry := range entries {
			spentOn := entry.SpentOn
			if spentOn == "" {
				spentOn = "Unknown date"
			}
			activity := entry.Activity.Name
			if activity == "" {
				activity = "Unknown activity"
			}
			comment := ""
			if entry.Comments != "" {
				comment = fmt.Sprintf(" - %q", entry.Comments)
			}
			fmt.Printf("Time Entry #%d: %g hours on Issue #%d [%s]%s (%s)\n",
				entry.ID, entry.Hours, entry.Issue.ID, activity, comment, spentOn)
			totalHours += entry.Hours
		}

		fmt.Printf("\nTotal hours shown: %g\n", totalHours)
	}),
}

func init() {
	entriesCmd.Flags().Int("issue-id", 0, "Filter time entries by issue ID")
	entriesCmd.Flags().Int("limit", 10, "Number of time entries to show")
}
