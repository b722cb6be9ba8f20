package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var releasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "Work with releases",
}

var releasesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List releases",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		project, _ := cmd.Flags().GetString("project")
		query, _ := cmd.Flags().GetString("query")

		cfg := loadConfig()
		client := newClient(cfg)
		res := newResolver(client, cfg, org, project, "")

		orgSlug, err := res.Org(cmd.Context())
		if err != nil {
			return err
		}
		projectSlug := res.OptionalProject()

		releases, err := client.ListReleases(cmd.Context(), orgSlug, projectSlug, query)
		if err != nil {
			return err
		}

		if len(releases) == 0 {
			cmd.Println("No releases found.")
			return nil
		}

		scope := orgSlug
		if projectSlug != "" {
			scope += "/" + projectSlug
		}
		cmd.Printf("Releases in %s:\n\n", scope)

		for _, release := range releases {
			cmd.Printf("  %s\n", release.ShortVersion)
			cmd.Printf("    Version: %s\n", release.Version)
			cmd.Printf("    Created: %s\n", release.DateCreated)
			if release.DateReleased != nil {
				cmd.Printf("    Released: %s\n", *release.DateReleased)
			}
			cmd.Printf("    New issues: %d\n", release.NewGroups)

			if release.LastCommit != nil {
				subject, _, _ := strings.Cut(release.LastCommit.Message, "\n")
				cmd.Printf("    Last commit: %s\n", subject)
				cmd.Printf("      by %s <%s>\n", release.LastCommit.Author.Name, release.LastCommit.Author.Email)
			}
			if release.LastDeploy != nil {
				cmd.Printf("    Last deploy: %s\n", release.LastDeploy.Environment)
			}

			slugs := make([]string, 0, len(release.Projects))
			for _, p := range release.Projects {
				slugs = append(slugs, p.Slug)
			}
			cmd.Printf("    Projects: %s\n", strings.Join(slugs, ", "))
			cmd.Println("")
		}
		return nil
	},
}

func init() {
	releasesListCmd.Flags().StringP("org", "o", "", "Organization slug")
	releasesListCmd.Flags().StringP("project", "p", "", "Project slug")
	releasesListCmd.Flags().StringP("query", "q", "", "Filter releases by version")

	releasesCmd.AddCommand(releasesListCmd)
	rootCmd.AddCommand(releasesCmd)
}
