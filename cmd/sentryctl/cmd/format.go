package cmd

import "sentryctl/internal/api"

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func issueStatusIcon(status string) string {
	switch status {
	case "resolved":
		return colorGreen + "✓" + colorReset
	case "unresolved":
		return colorRed + "✗" + colorReset
	case "ignored":
		return colorDim + "–" + colorReset
	default:
		return "•"
	}
}

func colorizeIssueStatus(status string) string {
	icon := issueStatusIcon(status)
	switch status {
	case "resolved":
		return icon + " " + colorGreen + status + colorReset
	case "unresolved":
		return icon + " " + colorRed + status + colorReset
	case "ignored":
		return icon + " " + colorDim + status + colorReset
	default:
		return status
	}
}

func autofixStatusIcon(status api.AutofixStatus) string {
	switch status {
	case api.StatusCompleted:
		return colorGreen + "✓" + colorReset
	case api.StatusFailed, api.StatusError, api.StatusCancelled:
		return colorRed + "✗" + colorReset
	case api.StatusPending, api.StatusProcessing, api.StatusInProgress:
		return colorYellow + "⏳" + colorReset
	case api.StatusWaitingForUserResponse, api.StatusNeedMoreInformation:
		return colorCyan + "?" + colorReset
	default:
		return "•"
	}
}

func strOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
