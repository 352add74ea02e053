package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/redmcli/redm/internal/redmine"
	"github.com/redmcli/redm/internal/tui"
)

const dailyDateLayout = "02-01-2006" // DD-MM-YYYY

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Create daily tasks for a team",
	Long: `Create daily tasks titled [Daily][<team>] DD-MM-YYYY in a project,
one per day. Without dates, a single task is created for today; with
--start-date and --end-date, one task per day in the range.

Example:
  redm daily --project-id 1 --team Backend
  redm daily --project-id 1 --team QA --start-date 15-07-2025 --end-date 19-07-2025`,
	Run: withClient(func(cmd *cobra.Command, args []string, client *redmine.Client) {
		projectID, err := intFlagOrPrompt(cmd, "project-id", "Project ID")
		if err != nil {
			fmt.Printf("Error: invalid input - %v\n", err)
			return
		}
		team, err := stringFlagOrPrompt(cmd, "team", "Team name", "e.g. Backend")
		if err != nil {
			fmt.Println("Cancelled.")
			return
		}

		ctx := cmd.Context()

		project, err := client.GetProject(ctx, projectID)
		if err != nil {
			switch {
			case errors.Is(err, redmine.ErrNotFound):
				fmt.Printf("Error: Project #%d not found.\n", projectID)
			case errors.Is(err, redmine.ErrAuth):
				fmt.Printf("Error: Authentication failed - %v\n", err)
			default:
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		startDate, ok := dateFlagOrPrompt(cmd, "start-date",
			"Start date (DD-MM-YYYY) or press Enter for today", time.Now())
		if !ok {
			return
		}
		endDate, ok := dateFlagOrPrompt(cmd, "end-date",
			"End date (DD-MM-YYYY) or press Enter for single day", time.Time{})
		if !ok {
			return
		}

		if !endDate.IsZero() && endDate.Before(startDate) {
			fmt.Println("Error: End date cannot be earlier than start date.")
			return
		}

		dates := []time.Time{startDate}
		if !endDate.IsZero() {
			dates = dates[:0]
			for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
				dates = append(dates, d)
			}
		}

		type created struct {
			id    int
			title string
		}
		var createdTasks []created

		for _, date := range dates {
			formatted := date.Format(dailyDateLayout)
			title := fmt.Sprintf("[Daily][%s] %s", team, formatted)
			redmineDate := date.Format("2006-01-02")

			issue, err := client.CreateIssue(ctx, redmine.NewIssue{
				ProjectID:   projectID,
				Subject:     title,
				StartDate:   redmineDate,
				DueDate:     redmineDate,
				Description: fmt.Sprintf("Daily task for team %s on %s", team, formatted),
			})
			if err != nil {
				fmt.Printf("Error creating task for %s: %v\n", formatted, err)
				continue
			}
			createdTasks = append(createdTasks, created{id: issue.ID, title: title})
		}

		if len(createdTasks) == 0 {
			fmt.Println("No tasks could be created.")
			return
		}

		fmt.Printf("\n%d task(s) created successfully:\n", len(createdTasks))
		for _, task := range createdTasks {
			fmt.Printf("- Task #%d: %s\n", task.id, task.title)
		}

		fmt.Printf("\nProject: %s\n", project.Name)
		fmt.Printf("Team: %s\n", team)
		if len(dates) == 1 {
			fmt.Printf("Date: %s\n", dates[0].Format(dailyDateLayout))
		} else {
			fmt.Printf("Range: %s to %s\n",
				startDate.Format(dailyDateLayout), endDate.Format(dailyDateLayout))
		}
	}),
}

// dateFlagOrPrompt reads a DD-MM-YYYY date flag, prompting when unset.
// An empty prompt answer returns def. The bool result is false when the
// command should stop (bad format or cancelled prompt).
func dateFlagOrPrompt(cmd *cobra.Command, flag, label string, def time.Time) (time.Time, bool) {
	raw, _ := cmd.Flags().GetString(flag)
	if strings.TrimSpace(raw) == "" {
		answer, err := tui.Input(label, "", "")
		if err != nil {
			fmt.Println("Cancelled.")
			return time.Time{}, false
		}
		raw = answer
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, true
	}
	parsed, err := time.Parse(dailyDateLayout, raw)
	if err != nil {
		fmt.Println("Invalid date format. Please use DD-MM-YYYY format.")
		return time.Time{}, false
	}
	return parsed, true
}

func init() {
	dailyCmd.Flags().Int("project-id", 0, "ID of the project where daily tasks will be created")
	dailyCmd.Flags().String("team", "", "Team name for creating daily tasks")
	dailyCmd.Flags().String("start-date", "", "Start date (DD-MM-YYYY); defaults to today")
	dailyCmd.Flags().String("end-date", "", "End date (DD-MM-YYYY) for a range of tasks")
}
