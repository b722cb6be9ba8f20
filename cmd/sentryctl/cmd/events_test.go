package cmd

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"sentryctl/internal/api"
)

func TestEventsSearchSpans(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"data": [
				{"id": "s1", "trace": "abc", "span.op": "db.query",
				 "span.description": "SELECT 1", "span.duration": 12.5,
				 "project": "frontend", "timestamp": "2025-08-30T10:00:00Z"}
			],
			"meta": {"fields": {}}
		}`))
	}))
	defer server.Close()

	out, err := executeCommand(t, "events", "search",
		"--org", "acme", "--dataset", "spans", "--query", "span.duration:>10ms",
		"--project", "",
		"--config", tempConfigPath(t), "--host", server.URL, "--token", "tok")
	if err != nil {
		t.Fatalf("events search failed: %v", err)
	}

	if gotQuery.Get("dataset") != "spans" {
		t.Errorf("dataset = %q", gotQuery.Get("dataset"))
	}
	fields := gotQuery["field"]
	if len(fields) != 7 || fields[0] != "id" {
		t.Errorf("fields = %v", fields)
	}

	for _, want := range []string{
		"spans events in acme:",
		"[db.query] SELECT 1",
		"Duration: 12.50ms",
		"Trace: abc",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEventsSearchErrorsDataset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"data": [
				{"issue": "PROJ-1", "title": "TypeError", "project": "frontend",
				 "count()": 17, "timestamp": "2025-08-30T10:00:00Z"}
			],
			"meta": {"fields": {}}
		}`))
	}))
	defer server.Close()

	out, err := executeCommand(t, "events", "search",
		"--org", "acme", "--dataset", "errors", "--query", "",
		"--project", "",
		"--config", tempConfigPath(t), "--host", server.URL, "--token", "tok")
	if err != nil {
		t.Fatalf("events search failed: %v", err)
	}

	for _, want := range []string{
		"errors events in acme:",
		"PROJ-1: TypeError",
		"Count: 17",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEventsSearchRejectsUnknownDataset(t *testing.T) {
	_, err := executeCommand(t, "events", "search",
		"--org", "acme", "--dataset", "metrics", "--query", "", "--project", "",
		"--config", tempConfigPath(t), "--host", "http://127.0.0.1:0", "--token", "tok")
	if err == nil {
		t.Fatal("events search with unknown dataset succeeded")
	}
	if !strings.Contains(err.Error(), "invalid dataset") {
		t.Errorf("error = %v", err)
	}
	var valErr *api.ValidationError
	if errors.As(err, &valErr) {
		t.Errorf("flag mistake surfaced as %T", valErr)
	}
}
