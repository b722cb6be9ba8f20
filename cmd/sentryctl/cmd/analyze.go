package cmd

import (
	"github.com/spf13/cobra"

	"sentryctl/internal/api"
	"sentryctl/internal/autofix"
)

var issuesAnalyzeCmd = &cobra.Command{
	Use:   "analyze [issue-id]",
	Short: "Analyze an issue with Seer AI",
	Long: `Start a Seer analysis run for an issue and poll until it finishes.

The run keeps going on the server even if this command is interrupted or
times out; partial results are always available in the Sentry UI.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		instruction, _ := cmd.Flags().GetString("instruction")
		issueID := args[0]

		cfg := loadConfig()
		client := newClient(cfg)
		res := newResolver(client, cfg, org, "", "")

		orgSlug, err := res.Org(cmd.Context())
		if err != nil {
			return err
		}

		poller := autofix.New(client, autofix.WithStatusFunc(func(status api.AutofixStatus) {
			cmd.Printf("Status: %s %s\n", autofixStatusIcon(status), status)
		}))

		cmd.Printf("Starting Seer analysis for issue %s...\n", issueID)
		run, err := poller.Start(cmd.Context(), orgSlug, issueID, instruction)
		if err != nil {
			return err
		}
		cmd.Printf("Analysis started. Run ID: %s\n", run.RunID)
		cmd.Println("")

		result, err := poller.Watch(cmd.Context(), orgSlug, issueID)
		if err != nil {
			return err
		}

		switch result.Outcome {
		case autofix.OutcomeNoData:
			cmd.Println("No autofix data available.")

		case autofix.OutcomeNeedsInput:
			cmd.Println("")
			cmd.Println("Analysis requires user input. Please continue in Sentry UI.")
			cmd.Println(client.IssueURL(orgSlug, issueID))

		case autofix.OutcomeTimedOut:
			cmd.Println("")
			cmd.Println("Analysis is taking longer than expected. Check Sentry UI for results.")
			cmd.Println(client.IssueURL(orgSlug, issueID))

		case autofix.OutcomeFinished:
			cmd.Println("")
			cmd.Println("Analysis complete!")
			for _, step := range result.Steps {
				cmd.Println("")
				cmd.Printf("Step: %s\n", step.Title)
				cmd.Printf("  Status: %s\n", step.Status)

				if len(step.Causes) > 0 {
					cmd.Println("")
					cmd.Println("Root Causes:")
					for _, cause := range step.Causes {
						cmd.Printf("  - %s\n", cause.Description)
					}
				}
				if len(step.Insights) > 0 {
					cmd.Println("")
					cmd.Println("Insights:")
					for _, insight := range step.Insights {
						cmd.Printf("  - %s\n", insight.Insight)
					}
				}
			}
		}
		return nil
	},
}

func init() {
	issuesAnalyzeCmd.Flags().StringP("org", "o", "", "Organization slug")
	issuesAnalyzeCmd.Flags().StringP("instruction", "i", "", "Additional instruction for Seer analysis")
	issuesCmd.AddCommand(issuesAnalyzeCmd)
}
