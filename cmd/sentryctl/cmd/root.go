package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sentryctl/internal/api"
	"sentryctl/internal/config"
	"sentryctl/internal/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sentryctl",
	Short: "Sentryctl is a command line tool for interacting with the Sentry API",
	Long: `sentryctl is the command-line interface for the Sentry issue-tracking and
observability service.

It translates subcommands into authenticated REST calls: list your
organizations, search and inspect issues, fetch traces, manage projects and
DSNs, and run AI-assisted root-cause analysis.

Common workflows:

  Authenticate:
    sentryctl login

  See who you are:
    sentryctl whoami

  Search unresolved issues:
    sentryctl issues search --query "is:unresolved"

  Inspect one issue with its latest stack trace:
    sentryctl issues get PROJ-123

  Run an AI analysis on an issue:
    sentryctl issues analyze PROJ-123

Configuration:
  Credentials and defaults live in ~/.config/sentry/config.json and can be
  overridden via environment variables or flags:
    SENTRY_ACCESS_TOKEN    API access token
    SENTRY_HOST            API host (default: sentry.io)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// One correlation ID per invocation for debug logs.
		cmd.SetContext(logger.WithInvocationID(cmd.Context(), uuid.NewString()))
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

// printError renders any unrecovered error as a single line prefixed by its
// category. No stack traces.
func printError(err error) {
	var configErr *config.ConfigError
	var authErr *api.AuthError
	var validationErr *api.ValidationError
	var apiErr *api.APIError

	switch {
	case errors.As(err, &configErr):
		fmt.Fprintf(os.Stderr, "Config error: %s\n", configErr.Message)
	case errors.As(err, &authErr):
		fmt.Fprintf(os.Stderr, "Auth error: %s\n", authErr.Message)
		fmt.Fprintln(os.Stderr, "Run 'sentryctl login' to configure authentication.")
	case errors.As(err, &validationErr):
		fmt.Fprintf(os.Stderr, "Validation error: %s\n", validationErr.Message)
		if validationErr.Details != nil {
			fmt.Fprintf(os.Stderr, "Details: %v\n", validationErr.Details)
		}
	case errors.As(err, &apiErr):
		fmt.Fprintf(os.Stderr, "Error: %s\n", apiErr.Message)
		if apiErr.Status != 0 {
			fmt.Fprintf(os.Stderr, "Status: %d\n", apiErr.Status)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/sentry/config.json)")

	rootCmd.PersistentFlags().String("host", "", "Sentry host (default: sentry.io)")
	viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))

	rootCmd.PersistentFlags().StringP("token", "t", "", "API access token")
	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	viper.SetEnvPrefix("SENTRY")
	viper.AutomaticEnv()
}
