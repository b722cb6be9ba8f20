package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"sentryctl/internal/api"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Work with projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects in an organization",
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

		projects, err := client.ListProjects(cmd.Context(), orgSlug, query)
		if err != nil {
			return err
		}

		if len(projects) == 0 {
			cmd.Println("No projects found.")
			return nil
		}

		cmd.Printf("Projects in %s:\n\n", orgSlug)
		for _, project := range projects {
			cmd.Printf("  %s\n", project.Slug)
			cmd.Printf("    Name: %s\n", project.Name)
			cmd.Printf("    ID: %s\n", project.ID)
			if project.Platform != nil && *project.Platform != "" {
				cmd.Printf("    Platform: %s\n", *project.Platform)
			}
			cmd.Println("")
		}

		if len(projects) == 25 {
			cmd.Println("(Showing max 25 results. Use --query to filter.)")
		}
		return nil
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		team, _ := cmd.Flags().GetString("team")
		platform, _ := cmd.Flags().GetString("platform")

		cfg := loadConfig()
		client := newClient(cfg)
		res := newResolver(client, cfg, org, "", team)

		orgSlug, err := res.Org(cmd.Context())
		if err != nil {
			return err
		}
		teamSlug, err := res.Team(cmd.Context())
		if err != nil {
			return err
		}

		project, err := client.CreateProject(cmd.Context(), orgSlug, teamSlug, args[0], platform)
		if err != nil {
			return err
		}

		cmd.Printf("Created project: %s\n", project.Slug)
		cmd.Printf("  Name: %s\n", project.Name)
		cmd.Printf("  ID: %s\n", project.ID)
		if project.Platform != nil && *project.Platform != "" {
			cmd.Printf("  Platform: %s\n", *project.Platform)
		}

		key, err := client.CreateClientKey(cmd.Context(), orgSlug, project.Slug, "Default")
		if err != nil {
			cmd.Println("")
			cmd.Println("Project created but no DSN could be generated. Create one with 'sentryctl dsns create'.")
			return nil
		}
		cmd.Printf("  DSN: %s\n", key.DSN.Public)
		return nil
	},
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a project's name, slug or platform",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		project, _ := cmd.Flags().GetString("project")
		name, _ := cmd.Flags().GetString("name")
		newSlug, _ := cmd.Flags().GetString("slug")
		platform, _ := cmd.Flags().GetString("platform")

		if name == "" && newSlug == "" && platform == "" {
			return errors.New("nothing to update: pass --name, --slug or --platform")
		}

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

		updated, err := client.UpdateProject(cmd.Context(), orgSlug, projectSlug, api.ProjectUpdate{
			Name:     name,
			Slug:     newSlug,
			Platform: platform,
		})
		if err != nil {
			return err
		}

		cmd.Printf("Updated project: %s\n", updated.Slug)
		cmd.Printf("  Name: %s\n", updated.Name)
		if updated.Platform != nil && *updated.Platform != "" {
			cmd.Printf("  Platform: %s\n", *updated.Platform)
		}
		return nil
	},
}

func init() {
	projectsListCmd.Flags().StringP("org", "o", "", "Organization slug")
	projectsListCmd.Flags().StringP("query", "q", "", "Filter projects by name/slug")

	projectsCreateCmd.Flags().StringP("org", "o", "", "Organization slug")
	projectsCreateCmd.Flags().String("team", "", "Team slug")
	projectsCreateCmd.Flags().String("platform", "", "Project platform (e.g. javascript, python)")

	projectsUpdateCmd.Flags().StringP("org", "o", "", "Organization slug")
	projectsUpdateCmd.Flags().StringP("project", "p", "", "Project slug")
	projectsUpdateCmd.Flags().String("name", "", "New project name")
	projectsUpdateCmd.Flags().String("slug", "", "New project slug")
	projectsUpdateCmd.Flags().String("platform", "", "New project platform")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsUpdateCmd)
	rootCmd.AddCommand(projectsCmd)
}
