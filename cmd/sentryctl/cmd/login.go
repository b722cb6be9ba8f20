package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sentryctl/internal/config"
	"sentryctl/internal/prompt"
)

const tokenSettingsURL = "https://sentry.io/settings/account/api/auth-tokens/"

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Configure Sentry authentication",
	Long: `Store an access token and optional defaults in the config file.

Without --token, opens the Sentry token-settings page and prompts for a
token interactively.

Example:
  sentryctl login --token sntrys_... --org acme --project backend`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		// --token and --host are the root's persistent flags.
		token := viper.GetString("token")
		host := viper.GetString("host")
		org, _ := flags.GetString("org")
		project, _ := flags.GetString("project")

		path := configPath()
		// Keep whatever is already stored; a broken file starts fresh.
		existing, err := config.Read(path)
		if err != nil {
			existing = config.File{}
		}

		if token == "" {
			if !prompt.IsInteractive() {
				return &config.ConfigError{
					Message: "no token provided: pass --token or run interactively",
				}
			}
			cmd.Println("Opening Sentry to create an access token...")
			cmd.Printf("URL: %s\n\n", tokenSettingsURL)
			prompt.OpenBrowser(tokenSettingsURL)

			token, err = prompt.Token("Paste your access token")
			if err != nil {
				return err
			}
			if token == "" {
				cmd.Println("No token provided. Aborting.")
				return nil
			}
		}

		updated := existing
		updated.AccessToken = token
		if host != "" {
			updated.Host = host
		}
		if org != "" {
			updated.DefaultOrg = org
		}
		if project != "" {
			updated.DefaultProject = project
		}

		if err := config.Write(path, updated); err != nil {
			return err
		}

		cmd.Printf("Configuration saved to %s\n", path)
		cmd.Println("Token saved successfully!")
		if host != "" {
			cmd.Printf("Host: %s\n", host)
		}
		if org != "" {
			cmd.Printf("Default org: %s\n", org)
		}
		if project != "" {
			cmd.Printf("Default project: %s\n", project)
		}
		return nil
	},
}

func init() {
	flags := loginCmd.Flags()
	flags.StringP("org", "o", "", "Default organization slug")
	flags.StringP("project", "p", "", "Default project slug")

	rootCmd.AddCommand(loginCmd)
}
