package cmd

import (
	"github.com/spf13/cobra"
)

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "Work with organizations",
}

var orgsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organizations",
	Long: `List the organizations visible to the configured credential.

Against the hosted service this queries every data-residency region the
account spans; a region that is down is simply skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")

		cfg := loadConfig()
		client := newClient(cfg)

		orgs, err := client.ListOrganizations(cmd.Context(), query)
		if err != nil {
			return err
		}

		if len(orgs) == 0 {
			cmd.Println("No organizations found.")
			return nil
		}

		cmd.Println("Organizations:")
		cmd.Println("")
		for _, org := range orgs {
			cmd.Printf("  %s\n", org.Slug)
			cmd.Printf("    Name: %s\n", org.Name)
			if org.Links != nil && org.Links.OrganizationURL != "" {
				cmd.Printf("    URL: %s\n", org.Links.OrganizationURL)
			}
			if org.Links != nil && org.Links.RegionURL != "" {
				cmd.Printf("    Region: %s\n", org.Links.RegionURL)
			}
			cmd.Println("")
		}

		if len(orgs) == 25 {
			cmd.Println("(Showing max 25 results. Use --query to filter.)")
		}
		return nil
	},
}

func init() {
	orgsListCmd.Flags().StringP("query", "q", "", "Filter organizations by name/slug")
	orgsCmd.AddCommand(orgsListCmd)
	rootCmd.AddCommand(orgsCmd)
}
