package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redmcli/redm/internal/redmine"
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List available time entry activities",
	Long: `List the activity names that can be used with 'redm log' and
'redm stop'. Names are matched case-insensitively when logging.`,
	Run: withClient(func(cmd *cobra.Command, args []string, client *redmine.Client) {
		activities, err := client.ListActivities(cmd.Context())
		if err != nil {
			fmt.Printf("Error fetching activities: %v\n", err)
			return
		}

		if len(activities) == 0 {
			fmt.Println("No activities found.")
			return
		}

		fmt.Println("Available activities:")
		for _, activity := range activities {
			fmt.Printf("- %s\n", activity.Name)
		}
	}),
}
