package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var eventsAttachmentsCmd = &cobra.Command{
	Use:   "attachments",
	Short: "Manage event attachments",
}

var attachmentsListCmd = &cobra.Command{
	Use:   "list [event-id]",
	Short: "List attachments for an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		project, _ := cmd.Flags().GetString("project")
		eventID := args[0]

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

		attachments, err := client.ListEventAttachments(cmd.Context(), orgSlug, projectSlug, eventID)
		if err != nil {
			return err
		}

		if len(attachments) == 0 {
			cmd.Println("No attachments found.")
			return nil
		}

		cmd.Printf("Attachments for event %s:\n\n", eventID)
		for _, att := range attachments {
			cmd.Printf("  %s\n", att.ID)
			cmd.Printf("    Name: %s\n", att.Name)
			cmd.Printf("    Type: %s\n", att.Type)
			cmd.Printf("    Size: %d bytes\n", att.Size)
			cmd.Printf("    MIME: %s\n", att.Mimetype)
			cmd.Printf("    Created: %s\n", att.DateCreated)
			cmd.Println("")
		}
		return nil
	},
}

var attachmentsDownloadCmd = &cobra.Command{
	Use:   "download [event-id] [attachment-id]",
	Short: "Download an event attachment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		project, _ := cmd.Flags().GetString("project")
		output, _ := cmd.Flags().GetString("output")
		eventID, attachmentID := args[0], args[1]

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

		cmd.Printf("Downloading attachment %s...\n", attachmentID)

		att, data, err := client.GetEventAttachment(cmd.Context(), orgSlug, projectSlug, eventID, attachmentID)
		if err != nil {
			return err
		}

		path := output
		if path == "" {
			path = att.Name
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}

		cmd.Printf("Saved to: %s\n", path)
		cmd.Printf("  Size: %d bytes\n", att.Size)
		cmd.Printf("  MIME: %s\n", att.Mimetype)
		return nil
	},
}

func init() {
	attachmentsListCmd.Flags().StringP("org", "o", "", "Organization slug")
	attachmentsListCmd.Flags().StringP("project", "p", "", "Project slug")

	attachmentsDownloadCmd.Flags().StringP("org", "o", "", "Organization slug")
	attachmentsDownloadCmd.Flags().StringP("project", "p", "", "Project slug")
	attachmentsDownloadCmd.Flags().String("output", "", "Output file path (defaults to the attachment name)")

	eventsAttachmentsCmd.AddCommand(attachmentsListCmd)
	eventsAttachmentsCmd.AddCommand(attachmentsDownloadCmd)
	eventsCmd.AddCommand(eventsAttachmentsCmd)
}
