package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redmcli/redm/internal/redmine"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List available projects",
	Long: `List the projects visible to the current user with their IDs.
Project IDs are used by commands like 'redm daily'.`,
	Run: withClient(func(cmd *cobra.Command, args []string, client *redmine.Client) {
		projects, err := client.ListProjects(cmd.Context())
		if err != nil {
			fmt.Printf("Error fetching projects: %v\n", err)
			return
		}

		if len(projects) == 0 {
			fmt.Println("No projects found.")
			return
		}

		fmt.Println("Available projects:")
		for _, project := range projects {
			fmt.Printf("%d: %s\n", project.ID, project.Name)
		}
	}),
}
