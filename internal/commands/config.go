package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redmcli/redm/internal/config"
	"github.com/redmcli/redm/internal/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure the Redmine URL and API key",
	Long: `Store the connection settings for your Redmine instance.

Values not given as flags are prompted for. The configuration persists
between sessions and is used by every command that talks to Redmine.

Example:
  redm config --url https://redmine.example.com --key abc123def456`,
	Run: func(cmd *cobra.Command, args []string) {
		url, _ := cmd.Flags().GetString("url")
		key, _ := cmd.Flags().GetString("key")

		var err error
		if strings.TrimSpace(url) == "" {
			url, err = tui.Input("Redmine URL", "https://redmine.example.com", "")
			if err != nil {
				fmt.Println("Configuration cancelled.")
				return
			}
		}
		if strings.TrimSpace(key) == "" {
			key, err = tui.Input("API Key", "found in your Redmine account settings", "")
			if err != nil {
				fmt.Println("Configuration cancelled.")
				return
			}
		}

		if err := config.Save("", config.Config{URL: strings.TrimSpace(url), Key: strings.TrimSpace(key)}); err != nil {
			fmt.Printf("Error saving configuration: %v\n", err)
			return
		}
		fmt.Println("Configuration saved successfully.")
	},
}

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Display the current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load("")
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("Redmine URL: %s\n", cfg.URL)
		fmt.Printf("API Key: %s\n", cfg.Key)
	},
}

func init() {
	configCmd.Flags().String("url", "", "The URL of your Redmine instance")
	configCmd.Flags().String("key", "", "Your Redmine API key")
}
