package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sentryctl/internal/api"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Search events and manage attachments",
}

var eventsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search events",
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		project, _ := cmd.Flags().GetString("project")
		query, _ := cmd.Flags().GetString("query")
		dataset, _ := cmd.Flags().GetString("dataset")
		period, _ := cmd.Flags().GetString("period")
		limit, _ := cmd.Flags().GetInt("limit")

		var fields []string
		switch dataset {
		case "errors":
			fields = []string{"title", "project", "timestamp", "issue", "count()"}
		case "logs":
			fields = []string{"timestamp", "message", "level", "project"}
		case "spans":
			fields = []string{"id", "trace", "span.op", "span.description", "span.duration", "project", "timestamp"}
		default:
			return fmt.Errorf("invalid dataset %q: must be spans, errors or logs", dataset)
		}

		cfg := loadConfig()
		client := newClient(cfg)
		res := newResolver(client, cfg, org, "", "")

		orgSlug, err := res.Org(cmd.Context())
		if err != nil {
			return err
		}

		result, err := client.SearchEvents(cmd.Context(), orgSlug, api.SearchQuery{
			Query:       query,
			Fields:      fields,
			Limit:       limit,
			Project:     project,
			Dataset:     dataset,
			StatsPeriod: period,
			Sort:        "-timestamp",
		})
		if err != nil {
			return err
		}

		if len(result.Data) == 0 {
			cmd.Println("No events found.")
			return nil
		}

		cmd.Printf("%s events in %s:\n\n", dataset, orgSlug)
		for _, row := range result.Data {
			switch dataset {
			case "errors":
				cmd.Printf("  %s: %s\n", fieldOr(row, "issue", "N/A"), fieldOr(row, "title", "No title"))
				cmd.Printf("    Project: %s\n", fieldOr(row, "project", ""))
				cmd.Printf("    Count: %s\n", fieldOr(row, "count()", "1"))
				cmd.Printf("    Time: %s\n", fieldOr(row, "timestamp", ""))
			case "logs":
				cmd.Printf("  [%s] %s\n", fieldOr(row, "level", "info"), fieldOr(row, "message", "No message"))
				cmd.Printf("    Project: %s\n", fieldOr(row, "project", ""))
				cmd.Printf("    Time: %s\n", fieldOr(row, "timestamp", ""))
			default:
				cmd.Printf("  [%s] %s\n", fieldOr(row, "span.op", "unknown"), fieldOr(row, "span.description", "No description"))
				duration := "?"
				if d, ok := row["span.duration"].(float64); ok {
					duration = fmt.Sprintf("%.2f", d)
				}
				cmd.Printf("    Duration: %sms\n", duration)
				cmd.Printf("    Trace: %s\n", fieldOr(row, "trace", ""))
				cmd.Printf("    Project: %s\n", fieldOr(row, "project", ""))
				cmd.Printf("    Time: %s\n", fieldOr(row, "timestamp", ""))
			}
			cmd.Println("")
		}

		if len(result.Data) == limit {
			cmd.Printf("(Showing %d results. Use --limit to see more.)\n", limit)
		}
		return nil
	},
}

// fieldOr formats one column of a dynamic events row, falling back when the
// field is missing or null.
func fieldOr(row map[string]any, key, fallback string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return fallback
		}
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func init() {
	eventsSearchCmd.Flags().StringP("org", "o", "", "Organization slug")
	eventsSearchCmd.Flags().StringP("project", "p", "", "Project ID to scope the search")
	eventsSearchCmd.Flags().StringP("query", "q", "", "Search query")
	eventsSearchCmd.Flags().StringP("dataset", "d", "spans", "Dataset to search: spans, errors, logs")
	eventsSearchCmd.Flags().String("period", "24h", "Stats period (e.g. 24h, 7d)")
	eventsSearchCmd.Flags().IntP("limit", "l", 10, "Maximum number of results")

	eventsCmd.AddCommand(eventsSearchCmd)
	rootCmd.AddCommand(eventsCmd)
}
