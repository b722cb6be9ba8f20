package cmd

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"sentryctl/internal/api"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		user, err := client.GetAuthenticatedUser(cmd.Context())
		if err != nil {
			var apiErr *api.APIError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
				return &api.AuthError{Message: "invalid or expired access token", Cause: err}
			}
			return err
		}

		cmd.Printf("Authenticated as: %s <%s>\n", strOr(user.Name, "Unknown"), user.Email)
		cmd.Printf("User ID: %s\n", user.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
