package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReleasesList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/0/organizations/acme/releases/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[
			{
				"id": 10,
				"version": "backend@2.1.0+abc123",
				"shortVersion": "2.1.0",
				"dateCreated": "2025-08-28T09:00:00Z",
				"dateReleased": "2025-08-28T11:00:00Z",
				"newGroups": 3,
				"lastCommit": {
					"id": "abc123",
					"message": "Fix cart total rounding\n\nLonger body here",
					"dateCreated": "2025-08-28T08:00:00Z",
					"author": {"name": "Alice", "email": "alice@example.com"}
				},
				"lastDeploy": {"id": 5, "environment": "production"},
				"projects": [
					{"id": "7", "slug": "backend", "name": "Backend"},
					{"id": "8", "slug": "worker", "name": "Worker"}
				]
			}
		]`))
	}))
	defer server.Close()

	out, err := executeCommand(t, "releases", "list",
		"--org", "acme", "--project", "", "--query", "",
		"--config", tempConfigPath(t), "--host", server.URL, "--token", "tok")
	if err != nil {
		t.Fatalf("releases list failed: %v", err)
	}

	for _, want := range []string{
		"Releases in acme:",
		"2.1.0",
		"Version: backend@2.1.0+abc123",
		"Released: 2025-08-28T11:00:00Z",
		"New issues: 3",
		"Last commit: Fix cart total rounding",
		"by Alice <alice@example.com>",
		"Last deploy: production",
		"Projects: backend, worker",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Only the commit subject line renders.
	if strings.Contains(out, "Longer body here") {
		t.Errorf("commit body leaked into output:\n%s", out)
	}
}

func TestReleasesListProjectScoped(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	out, err := executeCommand(t, "releases", "list",
		"--org", "acme", "--project", "backend", "--query", "",
		"--config", tempConfigPath(t), "--host", server.URL, "--token", "tok")
	if err != nil {
		t.Fatalf("releases list failed: %v", err)
	}
	if gotPath != "/api/0/projects/acme/backend/releases/" {
		t.Errorf("path = %q", gotPath)
	}
	if !strings.Contains(out, "No releases found.") {
		t.Errorf("output = %q", out)
	}
}
