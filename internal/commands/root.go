package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redmcli/redm/internal/config"
	"github.com/redmcli/redm/internal/logger"
	"github.com/redmcli/redm/internal/redmine"
	"github.com/redmcli/redm/internal/timer"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "redm",
	Short: "A command line interface for Redmine",
	Long: `redm is a command-line client for Redmine. It lists your assigned
tasks, logs time entries, and keeps a local work timer that turns
elapsed time into a Redmine time entry when you stop it.

Run 'redm config' once to store your Redmine URL and API key.`,
}

// withClient wraps a command so it runs with a configured Redmine
// client. Missing configuration is reported with instructions instead
// of failing the process.
func withClient(fn func(cmd *cobra.Command, args []string, client *redmine.Client)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load("")
		if err != nil {
			fmt.Println(err)
			return
		}
		client := redmine.NewClient(cfg.URL, cfg.Key, logger.New(verbose))
		fn(cmd, args, client)
	}
}

// newController builds the timer controller over the default timer
// store location.
func newController(client *redmine.Client) (*timer.Controller, *timer.Store, error) {
	store, err := timer.NewStore("")
	if err != nil {
		return nil, nil, err
	}
	return timer.NewController(store, client), store, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("redm %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(credentialsCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(activitiesCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(timerStatusCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(versionCmd)
}
