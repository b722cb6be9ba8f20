package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sentryctl/internal/api"
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Search, inspect and update issues",
}

var issuesSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for issues",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		project, _ := cmd.Flags().GetString("project")
		query, _ := cmd.Flags().GetString("query")
		sort, _ := cmd.Flags().GetString("sort")
		limit, _ := cmd.Flags().GetInt("limit")

		cfg := loadConfig()
		client := newClient(cfg)
		res := newResolver(client, cfg, org, project, "")

		orgSlug, err := res.Org(cmd.Context())
		if err != nil {
			return err
		}
		projectSlug := res.OptionalProject()

		issues, err := client.ListIssues(cmd.Context(), orgSlug, api.IssueQuery{
			Project: projectSlug,
			Query:   query,
			Sort:    sort,
			Limit:   limit,
		})
		if err != nil {
			return err
		}

		if len(issues) == 0 {
			cmd.Println("No issues found.")
			return nil
		}

		scope := orgSlug
		if projectSlug != "" {
			scope += "/" + projectSlug
		}
		cmd.Printf("Issues in %s:\n\n", scope)

		for _, issue := range issues {
			cmd.Printf("  %s: %s\n", issue.ShortID, issue.Title)
			cmd.Printf("    Status: %s\n", colorizeIssueStatus(issue.Status))
			cmd.Printf("    Events: %s | Users: %s\n", issue.Count, issue.UserCount)
			cmd.Printf("    First seen: %s\n", issue.FirstSeen)
			cmd.Printf("    Last seen: %s\n", issue.LastSeen)
			cmd.Printf("    URL: %s\n", issue.Permalink)
			cmd.Println("")
		}
		return nil
	},
}

var issuesGetCmd = &cobra.Command{
	Use:   "get [issue-id]",
	Short: "Get issue details",
	Long:  "Get issue details. Accepts a short ID like PROJ-123 or a numeric ID.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		issueID := args[0]

		cfg := loadConfig()
		client := newClient(cfg)
		res := newResolver(client, cfg, org, "", "")

		orgSlug, err := res.Org(cmd.Context())
		if err != nil {
			return err
		}

		issue, err := client.GetIssue(cmd.Context(), orgSlug, issueID)
		if err != nil {
			return err
		}

		cmd.Printf("Issue: %s\n", issue.ShortID)
		cmd.Printf("Title: %s\n", issue.Title)
		cmd.Println("")
		cmd.Printf("Status: %s\n", colorizeIssueStatus(issue.Status))
		if issue.Substatus != nil && *issue.Substatus != "" {
			cmd.Printf("Substatus: %s\n", *issue.Substatus)
		}
		cmd.Printf("Type: %s\n", issue.Type)
		cmd.Printf("Project: %s\n", issue.Project.Slug)
		cmd.Println("")
		cmd.Printf("Events: %s\n", issue.Count)
		cmd.Printf("Users affected: %s\n", issue.UserCount)
		cmd.Printf("First seen: %s\n", issue.FirstSeen)
		cmd.Printf("Last seen: %s\n", issue.LastSeen)
		cmd.Println("")
		cmd.Printf("Culprit: %s\n", issue.Culprit)
		if issue.AssignedTo != nil {
			cmd.Printf("Assigned to: %s\n", issue.AssignedTo.Name)
		}
		cmd.Println("")
		cmd.Printf("URL: %s\n", issue.Permalink)

		// The latest event is best effort. The issue itself was already
		// printed, so a failure here only skips the stack trace.
		event, err := client.GetLatestEventForIssue(cmd.Context(), orgSlug, issueID)
		if err != nil || event == nil {
			return nil
		}

		cmd.Println("")
		cmd.Println("Latest Event:")
		cmd.Printf("  ID: %s\n", event.ID)
		cmd.Printf("  Platform: %s\n", strOr(event.Platform, "unknown"))

		for _, entry := range event.Entries {
			exc, ok := entry.Exception()
			if !ok || len(exc.Values) == 0 {
				continue
			}
			first := exc.Values[0]
			cmd.Println("")
			cmd.Println("Exception:")
			cmd.Printf("  Type: %s\n", strOr(first.Type, "Unknown"))
			cmd.Printf("  Value: %s\n", strOr(first.Value, ""))

			if first.Stacktrace == nil || len(first.Stacktrace.Frames) == 0 {
				break
			}
			cmd.Println("")
			cmd.Println("Stack trace (top frames):")
			frames := first.Stacktrace.Frames
			start := len(frames) - 5
			if start < 0 {
				start = 0
			}
			for i := len(frames) - 1; i >= start; i-- {
				frame := frames[i]
				file := "unknown"
				if frame.Filename != nil && *frame.Filename != "" {
					file = *frame.Filename
				} else if frame.AbsPath != nil && *frame.AbsPath != "" {
					file = *frame.AbsPath
				}
				fn := strOr(frame.Function, "<anonymous>")
				line := "?"
				if frame.LineNo != nil {
					line = strconv.Itoa(*frame.LineNo)
				}
				cmd.Printf("    at %s (%s:%s)\n", fn, file, line)
			}
			break
		}
		return nil
	},
}

var issuesUpdateCmd = &cobra.Command{
	Use:   "update [issue-id]",
	Short: "Update an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		status, _ := cmd.Flags().GetString("status")
		assign, _ := cmd.Flags().GetString("assign")

		if status == "" && assign == "" {
			return errors.New("no updates specified: use --status or --assign")
		}
		switch status {
		case "", "resolved", "unresolved", "ignored":
		default:
			return fmt.Errorf("invalid status %q: must be resolved, unresolved or ignored", status)
		}

		cfg := loadConfig()
		client := newClient(cfg)
		res := newResolver(client, cfg, org, "", "")

		orgSlug, err := res.Org(cmd.Context())
		if err != nil {
			return err
		}

		updated, err := client.UpdateIssue(cmd.Context(), orgSlug, args[0], api.IssueUpdate{
			Status:     status,
			AssignedTo: assign,
		})
		if err != nil {
			return err
		}

		cmd.Printf("Updated issue: %s\n", updated.ShortID)
		cmd.Printf("  Status: %s\n", updated.Status)
		if updated.AssignedTo != nil {
			cmd.Printf("  Assigned to: %s\n", updated.AssignedTo.Name)
		}
		return nil
	},
}

var issuesEventsCmd = &cobra.Command{
	Use:   "events [issue-id]",
	Short: "List events for an issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		query, _ := cmd.Flags().GetString("query")
		period, _ := cmd.Flags().GetString("period")
		limit, _ := cmd.Flags().GetInt("limit")
		issueID := args[0]

		cfg := loadConfig()
		client := newClient(cfg)
		res := newResolver(client, cfg, org, "", "")

		orgSlug, err := res.Org(cmd.Context())
		if err != nil {
			return err
		}

		events, err := client.ListEventsForIssue(cmd.Context(), orgSlug, issueID, api.EventQuery{
			Query:       query,
			Limit:       limit,
			Sort:        "-timestamp",
			StatsPeriod: period,
		})
		if err != nil {
			return err
		}

		if len(events) == 0 {
			cmd.Println("No events found.")
			return nil
		}

		cmd.Printf("Events for issue %s:\n\n", issueID)
		for _, event := range events {
			cmd.Printf("  %s\n", event.ID)
			cmd.Printf("    Title: %s\n", event.Title)
			cmd.Printf("    Type: %s\n", event.Type)
			if event.DateCreated != "" {
				cmd.Printf("    Date: %s\n", event.DateCreated)
			}
			if event.Message != nil && *event.Message != "" {
				cmd.Printf("    Message: %s\n", *event.Message)
			}
			if event.Platform != nil && *event.Platform != "" {
				cmd.Printf("    Platform: %s\n", *event.Platform)
			}
			cmd.Println("")
		}

		if len(events) == limit {
			cmd.Printf("(Showing %d results. Use --limit to see more.)\n", limit)
		}
		return nil
	},
}

func init() {
	issuesSearchCmd.Flags().StringP("org", "o", "", "Organization slug")
	issuesSearchCmd.Flags().StringP("project", "p", "", "Project slug")
	issuesSearchCmd.Flags().StringP("query", "q", "", "Search query (e.g. is:unresolved)")
	issuesSearchCmd.Flags().String("sort", "", "Sort by: user, freq, date, new")
	issuesSearchCmd.Flags().IntP("limit", "l", 10, "Maximum number of issues")

	issuesGetCmd.Flags().StringP("org", "o", "", "Organization slug")

	issuesUpdateCmd.Flags().StringP("org", "o", "", "Organization slug")
	issuesUpdateCmd.Flags().StringP("status", "s", "", "Set issue status: resolved, unresolved, ignored")
	issuesUpdateCmd.Flags().StringP("assign", "a", "", "Assign to user (username or email)")

	issuesEventsCmd.Flags().StringP("org", "o", "", "Organization slug")
	issuesEventsCmd.Flags().StringP("query", "q", "", "Filter events (e.g. environment:production)")
	issuesEventsCmd.Flags().String("period", "14d", "Stats period (e.g. 24h, 7d, 14d)")
	issuesEventsCmd.Flags().IntP("limit", "l", 10, "Maximum number of events")

	issuesCmd.AddCommand(issuesSearchCmd)
	issuesCmd.AddCommand(issuesGetCmd)
	issuesCmd.AddCommand(issuesUpdateCmd)
	issuesCmd.AddCommand(issuesEventsCmd)
	rootCmd.AddCommand(issuesCmd)
}
