package cmd

import (
	"github.com/spf13/cobra"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Work with teams",
}

var teamsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List teams in an organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		query, _ := cmd.Flags().GetString("query")

		cfg := loadConfig()
		client := newClient(cfg)
		res := newResolver(client, cfg, org, "", "")

		orgSlug, err := res.Org(cmd.Context())
		if err != nil {
			return err
		}

		teams, err := client.ListTeams(cmd.Context(), orgSlug, query)
		if err != nil {
			return err
		}

		if len(teams) == 0 {
			cmd.Println("No teams found.")
			return nil
		}

		cmd.Printf("Teams in %s:\n\n", orgSlug)
		for _, team := range teams {
			cmd.Printf("  %s\n", team.Slug)
			cmd.Printf("    Name: %s\n", team.Name)
			cmd.Printf("    ID: %s\n", team.ID)
			cmd.Println("")
		}

		if len(teams) == 25 {
			cmd.Println("(Showing max 25 results. Use --query to filter.)")
		}
		return nil
	},
}

var teamsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")

		cfg := loadConfig()
		client := newClient(cfg)
		res := newResolver(client, cfg, org, "", "")

		orgSlug, err := res.Org(cmd.Context())
		if err != nil {
			return err
		}

		team, err := client.CreateTeam(cmd.Context(), orgSlug, args[0])
		if err != nil {
			return err
		}

		cmd.Printf("Created team: %s\n", team.Slug)
		cmd.Printf("  Name: %s\n", team.Name)
		cmd.Printf("  ID: %s\n", team.ID)
		return nil
	},
}

func init() {
	teamsListCmd.Flags().StringP("org", "o", "", "Organization slug")
	teamsListCmd.Flags().StringP("query", "q", "", "Filter teams by name/slug")
	teamsCreateCmd.Flags().StringP("org", "o", "", "Organization slug")

	teamsCmd.AddCommand(teamsListCmd)
	teamsCmd.AddCommand(teamsCreateCmd)
	rootCmd.AddCommand(teamsCmd)
}
