package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const issueBody = `{
	"id": 42,
	"shortId": "PROJ-1",
	"title": "TypeError: x is undefined",
	"status": "unresolved",
	"substatus": "ongoing",
	"type": "error",
	"culprit": "app/checkout.js in submit",
	"count": "107",
	"userCount": 12,
	"firstSeen": "2025-08-20T10:00:00Z",
	"lastSeen": "2025-08-30T18:30:00Z",
	"permalink": "https://acme.sentry.io/issues/42/",
	"project": {"id": "7", "slug": "frontend", "name": "Frontend"}
}`

func TestIssuesSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/0/organizations/acme/issues/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "is:unresolved" {
			t.Errorf("query = %q", got)
		}
		w.Write([]byte("[" + issueBody + "]"))
	}))
	defer server.Close()

	out, err := executeCommand(t, "issues", "search",
		"--org", "acme", "--query", "is:unresolved",
		"--config", tempConfigPath(t), "--host", server.URL, "--token", "tok")
	if err != nil {
		t.Fatalf("issues search failed: %v", err)
	}

	for _, want := range []string{
		"Issues in acme:",
		"PROJ-1: TypeError: x is undefined",
		"Events: 107 | Users: 12",
		"URL: https://acme.sentry.io/issues/42/",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestIssuesGetSkipsLatestEventOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/events/latest/") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(issueBody))
	}))
	defer server.Close()

	out, err := executeCommand(t, "issues", "get", "PROJ-1",
		"--org", "acme",
		"--config", tempConfigPath(t), "--host", server.URL, "--token", "tok")
	if err != nil {
		t.Fatalf("issues get failed: %v", err)
	}

	// The issue itself renders; the unavailable event only drops the trace.
	for _, want := range []string{
		"Issue: PROJ-1",
		"Title: TypeError: x is undefined",
		"Substatus: ongoing",
		"Project: frontend",
		"Culprit: app/checkout.js in submit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Latest Event:") {
		t.Errorf("output shows latest event despite fetch failure:\n%s", out)
	}
}

func TestIssuesGetWithStackTrace(t *testing.T) {
	const eventBody = `{
		"id": "ev1",
		"type": "error",
		"title": "TypeError",
		"message": null,
		"platform": "javascript",
		"entries": [
			{"type": "exception", "data": {"values": [
				{"type": "TypeError", "value": "x is undefined", "stacktrace": {"frames": [
					{"filename": "bottom.js", "function": "bottom", "lineNo": 1},
					{"filename": "middle.js", "function": "middle", "lineNo": 2},
					{"filename": "top.js", "function": "top", "lineNo": 3}
				]}}
			]}}
		]
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/events/latest/") {
			w.Write([]byte(eventBody))
			return
		}
		w.Write([]byte(issueBody))
	}))
	defer server.Close()

	out, err := executeCommand(t, "issues", "get", "PROJ-1",
		"--org", "acme",
		"--config", tempConfigPath(t), "--host", server.URL, "--token", "tok")
	if err != nil {
		t.Fatalf("issues get failed: %v", err)
	}

	for _, want := range []string{
		"Latest Event:",
		"Platform: javascript",
		"Type: TypeError",
		"Value: x is undefined",
		"Stack trace (top frames):",
		"at top (top.js:3)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Frames print innermost first.
	if strings.Index(out, "at top (top.js:3)") > strings.Index(out, "at bottom (bottom.js:1)") {
		t.Errorf("frames not reversed:\n%s", out)
	}
}

func TestIssuesUpdate(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{"id": 42, "shortId": "PROJ-1", "title": "t", "status": "resolved",
			"project": {"id": "7", "slug": "frontend", "name": "Frontend"}}`))
	}))
	defer server.Close()

	out, err := executeCommand(t, "issues", "update", "PROJ-1",
		"--org", "acme", "--status", "resolved",
		"--config", tempConfigPath(t), "--host", server.URL, "--token", "tok")
	if err != nil {
		t.Fatalf("issues update failed: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %q, want PUT", gotMethod)
	}
	if !strings.Contains(out, "Updated issue: PROJ-1") || !strings.Contains(out, "Status: resolved") {
		t.Errorf("output = %q", out)
	}
}

func TestIssuesUpdateRequiresChanges(t *testing.T) {
	_, err := executeCommand(t, "issues", "update", "PROJ-1",
		"--org", "acme", "--status", "", "--assign", "",
		"--config", tempConfigPath(t), "--host", "http://127.0.0.1:0", "--token", "tok")
	if err == nil {
		t.Fatal("issues update without changes succeeded")
	}
	if !strings.Contains(err.Error(), "no updates specified") {
		t.Errorf("error = %v", err)
	}
}
