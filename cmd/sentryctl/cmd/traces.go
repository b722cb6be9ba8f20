package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"sentryctl/internal/api"
)

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "Inspect traces",
}

var tracesGetCmd = &cobra.Command{
	Use:   "get [trace-id]",
	Short: "Get trace details",
	Long:  "Get trace details. The trace ID is a 32-character hex string.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, _ := cmd.Flags().GetString("org")
		limit, _ := cmd.Flags().GetInt("limit")
		traceID := args[0]

		cfg := loadConfig()
		client := newClient(cfg)
		res := newResolver(client, cfg, org, "", "")

		orgSlug, err := res.Org(cmd.Context())
		if err != nil {
			return err
		}

		meta, err := client.GetTraceMeta(cmd.Context(), orgSlug, traceID, "")
		if err != nil {
			return err
		}

		cmd.Printf("Trace: %s\n\n", traceID)
		cmd.Println("Summary:")
		cmd.Printf("  Total spans: %d\n", meta.SpanCount)
		cmd.Printf("  Errors: %d\n", meta.Errors)
		cmd.Printf("  Performance issues: %d\n", meta.PerformanceIssues)
		cmd.Printf("  Logs: %d\n", meta.Logs)
		cmd.Println("")

		if len(meta.SpanCountMap) > 0 {
			type opCount struct {
				op    string
				count int
			}
			ops := make([]opCount, 0, len(meta.SpanCountMap))
			for op, count := range meta.SpanCountMap {
				ops = append(ops, opCount{op, count})
			}
			sort.Slice(ops, func(i, j int) bool {
				if ops[i].count != ops[j].count {
					return ops[i].count > ops[j].count
				}
				return ops[i].op < ops[j].op
			})
			if len(ops) > 10 {
				ops = ops[:10]
			}
			cmd.Println("Operations:")
			for _, oc := range ops {
				cmd.Printf("  %s: %d\n", oc.op, oc.count)
			}
			cmd.Println("")
		}

		trace, err := client.GetTrace(cmd.Context(), orgSlug, traceID, limit)
		if err != nil {
			return err
		}

		cmd.Println("Trace URL:")
		cmd.Printf("  %s\n", client.TraceURL(orgSlug, traceID))
		cmd.Println("")

		if len(trace) == 0 {
			return nil
		}

		cmd.Printf("Spans (showing up to %d):\n\n", limit)

		roots := trace
		if len(roots) > 5 {
			roots = roots[:5]
		}
		for _, item := range roots {
			switch {
			case item.Span != nil:
				printSpan(cmd, item.Span, 0)
			case item.Issue != nil:
				title := item.Issue.Title
				if title == "" {
					title = "Unknown issue"
				}
				cmd.Printf("[issue] %s\n", title)
				if item.Issue.Culprit != "" {
					cmd.Printf("  Culprit: %s\n", item.Issue.Culprit)
				}
			}
			cmd.Println("")
		}

		if len(trace) > 5 {
			cmd.Printf("... and %d more root items\n", len(trace)-5)
		}
		return nil
	},
}

// printSpan renders one span subtree. Non-transaction spans are cut off below
// depth 3 and each node shows at most 10 children to keep the tree readable.
func printSpan(cmd *cobra.Command, span *api.TraceSpan, depth int) {
	if !span.IsTransaction && depth > 3 {
		return
	}

	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	duration := "?"
	if span.Duration > 0 {
		duration = fmt.Sprintf("%.2fms", span.Duration)
	}

	label := span.Description
	if span.IsTransaction {
		label = span.Transaction
		if label == "" {
			label = span.Description
		}
	} else if label == "" {
		label = span.Name
	}
	cmd.Printf("%s[%s] %s (%s)\n", indent, span.Op, label, duration)

	if len(span.Errors) > 0 {
		cmd.Printf("%s  Errors: %d\n", indent, len(span.Errors))
	}

	children := span.Children
	if len(children) > 10 {
		children = children[:10]
	}
	for i := range children {
		printSpan(cmd, &children[i], depth+1)
	}
	if len(span.Children) > 10 {
		cmd.Printf("%s  ... and %d more children\n", indent, len(span.Children)-10)
	}
}

func init() {
	tracesGetCmd.Flags().StringP("org", "o", "", "Organization slug")
	tracesGetCmd.Flags().IntP("limit", "l", 50, "Maximum number of spans to show")

	tracesCmd.AddCommand(tracesGetCmd)
	rootCmd.AddCommand(tracesCmd)
}
