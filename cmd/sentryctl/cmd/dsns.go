package cmd

import (
	"github.com/spf13/cobra"
)

var dsnsCmd = &cobra.Command{
	Use:   "dsns",
	Short: "Manage project DSNs",
}

var dsnsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List DSNs for a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		project, _ := cmd.Flags().GetString("project")

		cfg := loadConfig()
		client := newClient(cfg)
		res := newResolver(client, cfg, org, project, "")

		orgSlug, err := res.Org(cmd.Context())
		if err != nil {
			return err
		}
		projectSlug, err := res.Project(cmd.Context())
		if err != nil {
			return err
		}

		keys, err := client.ListClientKeys(cmd.Context(), orgSlug, projectSlug)
		if err != nil {
			return err
		}

		if len(keys) == 0 {
			cmd.Println("No DSNs found.")
			return nil
		}

		cmd.Printf("DSNs for %s/%s:\n\n", orgSlug, projectSlug)
		for _, key := range keys {
			active := "No"
			if key.IsActive {
				active = "Yes"
			}
			cmd.Printf("  %s\n", key.Name)
			cmd.Printf("    DSN: %s\n", key.DSN.Public)
			cmd.Printf("    Active: %s\n", active)
			cmd.Printf("    Created: %s\n", key.DateCreated)
			cmd.Println("")
		}
		return nil
	},
}

var dsnsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new DSN",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		project, _ := cmd.Flags().GetString("project")
		name, _ := cmd.Flags().GetString("name")

		cfg := loadConfig()
		client := newClient(cfg)
		res := newResolver(client, cfg, org, project, "")

		orgSlug, err := res.Org(cmd.Context())
		if err != nil {
			return err
		}
		projectSlug, err := res.Project(cmd.Context())
		if err != nil {
			return err
		}

		if name == "" {
			name = "CLI Generated Key"
		}

		key, err := client.CreateClientKey(cmd.Context(), orgSlug, projectSlug, name)
		if err != nil {
			return err
		}

		cmd.Printf("Created DSN: %s\n\n", key.Name)
		cmd.Printf("DSN: %s\n\n", key.DSN.Public)
		cmd.Println("Add this to your SDK configuration:")
		cmd.Printf("  SENTRY_DSN=%s\n", key.DSN.Public)
		return nil
	},
}

func init() {
	dsnsListCmd.Flags().StringP("org", "o", "", "Organization slug")
	dsnsListCmd.Flags().StringP("project", "p", "", "Project slug")

	dsnsCreateCmd.Flags().StringP("org", "o", "", "Organization slug")
	dsnsCreateCmd.Flags().StringP("project", "p", "", "Project slug")
	dsnsCreateCmd.Flags().StringP("name", "n", "", "DSN name")

	dsnsCmd.AddCommand(dsnsListCmd)
	dsnsCmd.AddCommand(dsnsCreateCmd)
	rootCmd.AddCommand(dsnsCmd)
}
