package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func orgListBody(slugs ...string) string {
	orgs := make([]map[string]any, 0, len(slugs))
	for i, slug := range slugs {
		orgs = append(orgs, map[string]any{"id": fmt.Sprint(i + 1), "slug": slug, "name": slug})
	}
	body, _ := json.Marshal(orgs)
	return string(body)
}

func TestListOrganizationsSingleHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/0/organizations/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(orgListBody("acme", "globex")))
	}))
	defer server.Close()

	// A self-hosted install has no region discovery.
	client := New(server.URL, "tok")
	orgs, err := client.ListOrganizations(context.Background(), "")
	if err != nil {
		t.Fatalf("ListOrganizations failed: %v", err)
	}
	if len(orgs) != 2 || orgs[0].Slug != "acme" {
		t.Errorf("orgs = %+v", orgs)
	}
}

func TestListOrganizationsMultiRegion(t *testing.T) {
	us := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(orgListBody("acme-us")))
	}))
	defer us.Close()
	de := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(orgListBody("acme-de")))
	}))
	defer de.Close()

	discovery := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/0/users/me/regions/" {
			t.Errorf("discovery path = %q", r.URL.Path)
		}
		fmt.Fprintf(w, `{"regions": [
			{"name": "us", "url": %q},
			{"name": "de", "url": %q}
		]}`, us.URL, de.URL)
	}))
	defer discovery.Close()

	client := New("sentry.io", "tok", WithDiscoveryURL(discovery.URL))
	orgs, err := client.ListOrganizations(context.Background(), "")
	if err != nil {
		t.Fatalf("ListOrganizations failed: %v", err)
	}
	if len(orgs) != 2 {
		t.Fatalf("orgs = %+v, want 2", orgs)
	}
	// Region order is preserved even though fetches run concurrently.
	if orgs[0].Slug != "acme-us" || orgs[1].Slug != "acme-de" {
		t.Errorf("orgs = %+v", orgs)
	}
}

func TestListOrganizationsRegionFailure(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(orgListBody("acme-us")))
	}))
	defer up.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	discovery := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"regions": [
			{"name": "us", "url": %q},
			{"name": "de", "url": %q}
		]}`, up.URL, down.URL)
	}))
	defer discovery.Close()

	client := New("sentry.io", "tok", WithDiscoveryURL(discovery.URL))
	orgs, err := client.ListOrganizations(context.Background(), "")
	if err != nil {
		t.Fatalf("ListOrganizations failed: %v", err)
	}
	// One region down must not hide the others.
	if len(orgs) != 1 || orgs[0].Slug != "acme-us" {
		t.Errorf("orgs = %+v, want just acme-us", orgs)
	}
}

func TestListOrganizationsDiscoveryFallback(t *testing.T) {
	var orgCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/0/users/me/regions/" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		orgCalls++
		w.Write([]byte(orgListBody("acme")))
	}))
	defer server.Close()

	// Discovery failing silently downgrades to a plain single-host listing.
	client := New(server.URL, "tok", WithDiscoveryURL(server.URL))
	orgs, err := client.ListOrganizations(context.Background(), "")
	if err != nil {
		t.Fatalf("ListOrganizations failed: %v", err)
	}
	if len(orgs) != 1 || orgs[0].Slug != "acme" {
		t.Errorf("orgs = %+v", orgs)
	}
	if orgCalls != 1 {
		t.Errorf("org endpoint called %d times, want 1", orgCalls)
	}
}

func TestListOrganizationsCapped(t *testing.T) {
	slugs := make([]string, 30)
	for i := range slugs {
		slugs[i] = fmt.Sprintf("org-%d", i)
	}
	regionBody := orgListBody(slugs...)

	region := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(regionBody))
	}))
	defer region.Close()

	discovery := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"regions": [{"name": "us", "url": %q}]}`, region.URL)
	}))
	defer discovery.Close()

	client := New("sentry.io", "tok", WithDiscoveryURL(discovery.URL))
	orgs, err := client.ListOrganizations(context.Background(), "")
	if err != nil {
		t.Fatalf("ListOrganizations failed: %v", err)
	}
	if len(orgs) != 25 {
		t.Errorf("len(orgs) = %d, want combined results capped at 25", len(orgs))
	}
}
