package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redmcli/redm/internal/redmine"
	"github.com/redmcli/redm/internal/tui"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks assigned to you",
	Long: `List all Redmine issues assigned to the current user, with their
id, subject and colored status.

Example:
  redm tasks
  redm tasks --status "In Progress"`,
	Run: withClient(func(cmd *cobra.Command, args []string, client *redmine.Client) {
		status, _ := cmd.Flags().GetString("status")

		issues, err := client.FilterIssues(cmd.Context(), "me", status)
		if err != nil {
			fmt.Printf("Error fetching tasks: %v\n", err)
			return
		}

		if len(issues) == 0 {
			if status != "" {
				fmt.Printf("No tasks found with status '%s'.\n", status)
			} else {
				fmt.Println("No tasks found.")
			}
			return
		}

		for _, issue := range issues {
			fmt.Printf("%d: %s (Status: %s)\n", issue.ID, issue.Subject, tui.RenderStatus(issue.Status.Name))
		}
	}),
}

func init() {
	tasksCmd.Flags().String("status", "", "Filter tasks by status name")
}
