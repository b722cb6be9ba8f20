package api

import (
	"encoding/json"
	"testing"
)

func TestAutofixStatusTerminal(t *testing.T) {
	tests := []struct {
		status   AutofixStatus
		terminal bool
	}{
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusError, true},
		{StatusCancelled, true},
		{StatusProcessing, false},
		{StatusInProgress, false},
		{StatusWaitingForUserResponse, false},
		{StatusPending, false},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.terminal {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestAutofixStepUnion(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantInsights int
		wantCauses   int
		wantSolution int
	}{
		{
			name: "default step carries insights",
			input: `{
				"type": "default",
				"key": "analysis",
				"status": "COMPLETED",
				"title": "Analysis",
				"insights": [
					{"insight": "The null check is missing", "justification": "trace shows nil deref"},
					{"insight": "Retry masks the failure", "justification": "logs"}
				]
			}`,
			wantInsights: 2,
		},
		{
			name: "root cause step carries causes",
			input: `{
				"type": "root_cause_analysis",
				"key": "root_cause",
				"status": "COMPLETED",
				"title": "Root Cause Analysis",
				"causes": [
					{"id": 1, "description": "Session expires mid-request"}
				]
			}`,
			wantCauses: 1,
		},
		{
			name: "solution step carries timeline",
			input: `{
				"type": "solution",
				"key": "solution",
				"status": "COMPLETED",
				"title": "Solution",
				"solution": [
					{"title": "Add a guard clause", "timeline_item_type": "internal_code", "is_active": true}
				]
			}`,
			wantSolution: 1,
		},
		{
			name: "unknown type falls back to base fields",
			input: `{
				"type": "changes",
				"key": "changes",
				"status": "PROCESSING",
				"title": "Code Changes",
				"codebase_changes": [{"repo": "x"}]
			}`,
		},
		{
			name: "unknown type reusing a payload key with a new shape",
			input: `{
				"type": "future_step",
				"key": "future",
				"status": "PROCESSING",
				"title": "Future Step",
				"insights": "free-form text"
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var step AutofixStep
			if err := json.Unmarshal([]byte(tt.input), &step); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if step.Title == "" {
				t.Error("Title not decoded")
			}
			if len(step.Insights) != tt.wantInsights {
				t.Errorf("Insights = %d, want %d", len(step.Insights), tt.wantInsights)
			}
			if len(step.Causes) != tt.wantCauses {
				t.Errorf("Causes = %d, want %d", len(step.Causes), tt.wantCauses)
			}
			if len(step.Solution) != tt.wantSolution {
				t.Errorf("Solution = %d, want %d", len(step.Solution), tt.wantSolution)
			}
			if len(step.Raw) == 0 {
				t.Error("Raw not preserved")
			}
		})
	}
}

func TestAutofixRunStateDecode(t *testing.T) {
	payload := `{
		"autofix": {
			"run_id": 8841,
			"status": "WAITING_FOR_USER_RESPONSE",
			"steps": [
				{"type": "default", "key": "a", "status": "COMPLETED", "title": "Analysis"},
				{"type": "root_cause_analysis", "key": "b", "status": "COMPLETED", "title": "Root Cause",
				 "causes": [{"id": 0, "description": "Race on shutdown"}]}
			]
		}
	}`

	var state AutofixState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if state.Autofix == nil {
		t.Fatal("Autofix is nil")
	}
	if state.Autofix.Status != StatusWaitingForUserResponse {
		t.Errorf("Status = %q", state.Autofix.Status)
	}
	if len(state.Autofix.Steps) != 2 {
		t.Fatalf("Steps = %d, want 2", len(state.Autofix.Steps))
	}
	if len(state.Autofix.Steps[1].Causes) != 1 {
		t.Errorf("Causes = %d, want 1", len(state.Autofix.Steps[1].Causes))
	}

	var empty AutofixState
	if err := json.Unmarshal([]byte(`{"autofix": null}`), &empty); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if empty.Autofix != nil {
		t.Error("null autofix should decode to nil")
	}
}
