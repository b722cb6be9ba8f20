package api

import "encoding/json"

// AutofixStatus is the lifecycle state of an analysis run or one of its steps.
type AutofixStatus string

const (
	StatusPending                AutofixStatus = "PENDING"
	StatusProcessing             AutofixStatus = "PROCESSING"
	StatusInProgress             AutofixStatus = "IN_PROGRESS"
	StatusNeedMoreInformation    AutofixStatus = "NEED_MORE_INFORMATION"
	StatusCompleted              AutofixStatus = "COMPLETED"
	StatusFailed                 AutofixStatus = "FAILED"
	StatusError                  AutofixStatus = "ERROR"
	StatusCancelled              AutofixStatus = "CANCELLED"
	StatusWaitingForUserResponse AutofixStatus = "WAITING_FOR_USER_RESPONSE"
)

// Terminal reports whether the run is finished, for better or worse.
// WAITING_FOR_USER_RESPONSE is not terminal: the run continues once a human
// responds in the web UI.
func (s AutofixStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusError, StatusCancelled:
		return true
	}
	return false
}

// AutofixRun identifies a started analysis run.
type AutofixRun struct {
	RunID FlexID `json:"run_id"`
}

type AutofixProgress struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
}

// AutofixInsight is one finding of a "default" step.
type AutofixInsight struct {
	Insight       string `json:"insight"`
	Justification string `json:"justification"`
}

type RelevantCodeFile struct {
	FilePath string `json:"file_path"`
	RepoName string `json:"repo_name"`
}

type RootCauseTimelineItem struct {
	Title                string            `json:"title"`
	CodeSnippetAnalysis  string            `json:"code_snippet_and_analysis"`
	IsMostImportantEvent bool              `json:"is_most_important_event"`
	TimelineItemType     string            `json:"timeline_item_type"`
	RelevantCodeFile     *RelevantCodeFile `json:"relevant_code_file"`
}

// AutofixCause is one candidate root cause.
type AutofixCause struct {
	ID           int                     `json:"id"`
	Description  string                  `json:"description"`
	Reproduction []RootCauseTimelineItem `json:"root_cause_reproduction"`
}

// AutofixSolutionItem is one element of a proposed solution timeline.
type AutofixSolutionItem struct {
	Title                string  `json:"title"`
	CodeSnippetAnalysis  *string `json:"code_snippet_and_analysis"`
	IsActive             bool    `json:"is_active"`
	IsMostImportantEvent bool    `json:"is_most_important_event"`
	TimelineItemType     string  `json:"timeline_item_type"`
}

// AutofixStep is one step of an analysis run. The "type" discriminator keys a
// closed union of payloads: "default" carries Insights, "root_cause_analysis"
// carries Causes, "solution" carries Solution. Any other type decodes with the
// base fields only, and Raw keeps the original object either way.
type AutofixStep struct {
	Type         string            `json:"type"`
	Key          string            `json:"key"`
	Index        int               `json:"index"`
	Status       AutofixStatus     `json:"status"`
	Title        string            `json:"title"`
	OutputStream *string           `json:"output_stream"`
	Progress     []AutofixProgress `json:"progress"`

	Insights []AutofixInsight      `json:"-"`
	Causes   []AutofixCause        `json:"-"`
	Solution []AutofixSolutionItem `json:"-"`

	Raw json.RawMessage `json:"-"`
}

func (s *AutofixStep) UnmarshalJSON(data []byte) error {
	type base AutofixStep
	var b base
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*s = AutofixStep(b)
	s.Raw = append(s.Raw[:0], data...)

	switch s.Type {
	case "default":
		var payload struct {
			Insights []AutofixInsight `json:"insights"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		s.Insights = payload.Insights
	case "root_cause_analysis":
		var payload struct {
			Causes []AutofixCause `json:"causes"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		s.Causes = payload.Causes
	case "solution":
		var payload struct {
			Solution []AutofixSolutionItem `json:"solution"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		s.Solution = payload.Solution
	}
	return nil
}

// AutofixRunState is the server-side state of one run.
type AutofixRunState struct {
	RunID     FlexID        `json:"run_id"`
	UpdatedAt string        `json:"updated_at"`
	Status    AutofixStatus `json:"status"`
	Steps     []AutofixStep `json:"steps"`
}

// AutofixState wraps the run state; Autofix is null when the issue has no run.
type AutofixState struct {
	Autofix *AutofixRunState `json:"autofix"`
}
