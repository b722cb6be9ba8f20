package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sentryctl/internal/logger"
)

const (
	// defaultHost is the public SaaS host.
	defaultHost = "sentry.io"

	// saasDiscoveryURL maps an account to its data-residency hosts.
	saasDiscoveryURL = "https://sentry.io"

	// defaultPageSize caps list endpoints.
	defaultPageSize = 25
)

// Version is the client version reported in the User-Agent header.
var Version = "0.1.0"

var userAgent = "sentryctl/" + Version

// IsSaaSHost reports whether host is the hosted sentry.io service (any
// region) rather than a self-hosted install.
func IsSaaSHost(host string) bool {
	return host == defaultHost || strings.HasSuffix(host, "."+defaultHost)
}

// Client issues authenticated requests against one Sentry host. The zero
// value is not usable; construct with New. Client is safe for concurrent use.
type Client struct {
	baseURL      string
	host         string
	token        string
	discoveryURL string
	http         *http.Client
	log          *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a logger; the client logs each request at debug level
// with the token never included.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithDiscoveryURL overrides the region-discovery base URL. Mainly for tests;
// the default is derived from the configured host.
func WithDiscoveryURL(base string) Option {
	return func(c *Client) { c.discoveryURL = strings.TrimRight(base, "/") }
}

// New builds a client for host. host may be a bare hostname ("sentry.io",
// "sentry.example.com") or a full URL; bare hostnames get https. token may be
// empty for unauthenticated mode.
func New(host, token string, opts ...Option) *Client {
	if host == "" {
		host = defaultHost
	}
	base := host
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	base = strings.TrimRight(base, "/")

	bare := base
	if u, err := url.Parse(base); err == nil && u.Host != "" {
		bare = u.Host
	}

	c := &Client{
		baseURL: base,
		host:    bare,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	if IsSaaSHost(c.host) {
		c.discoveryURL = saasDiscoveryURL
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return c
}

// Host returns the bare host the client targets.
func (c *Client) Host() string {
	return c.host
}

// IssueURL returns the web UI address of an issue.
func (c *Client) IssueURL(org, issueID string) string {
	if IsSaaSHost(c.host) {
		return fmt.Sprintf("https://%s.sentry.io/issues/%s", org, issueID)
	}
	return fmt.Sprintf("https://%s/organizations/%s/issues/%s", c.host, org, issueID)
}

// TraceURL returns the web UI address of a trace.
func (c *Client) TraceURL(org, traceID string) string {
	if IsSaaSHost(c.host) {
		return fmt.Sprintf("https://%s.sentry.io/explore/traces/trace/%s", org, traceID)
	}
	return fmt.Sprintf("https://%s/organizations/%s/explore/traces/trace/%s", c.host, org, traceID)
}

// do performs one HTTP call. base overrides the client's base URL when
// non-empty (cross-region calls). A transport failure or non-2xx response
// comes back as *APIError; a 2xx response is returned as-is with its body
// unread.
func (c *Client) do(ctx context.Context, method, path string, body any, base string) (*http.Response, error) {
	if base == "" {
		base = c.baseURL
	}
	fullURL := base + "/api/0" + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{
			Message: fmt.Sprintf("failed to connect to %s: %v", fullURL, err),
			Cause:   err,
		}
	}

	logger.FromContext(ctx, c.log).Debug("api request",
		"method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	var errBody apiErrorBody
	if err := json.Unmarshal(raw, &errBody); err == nil && errBody.Detail != "" {
		return nil, &APIError{Message: errBody.Detail, Status: resp.StatusCode}
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, &APIError{Message: "not found: " + path, Status: http.StatusNotFound}
	}
	return nil, &APIError{
		Message: fmt.Sprintf("API request failed: %s\n%s", resp.Status, raw),
		Status:  resp.StatusCode,
	}
}

// requestJSON performs one call and returns the verified-JSON response body.
// A 2xx body that is not valid JSON is an APIError, not a ValidationError:
// the wire contract broke, not the schema.
func (c *Client) requestJSON(ctx context.Context, method, path string, body any, base string) ([]byte, error) {
	resp, err := c.do(ctx, method, path, body, base)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: "failed to read response body", Cause: err}
	}
	if !json.Valid(raw) {
		return nil, &APIError{Message: "failed to parse JSON response from " + path}
	}
	return raw, nil
}

// GetAuthenticatedUser returns the account the token belongs to. On SaaS the
// auth endpoint always lives on the main host regardless of region.
func (c *Client) GetAuthenticatedUser(ctx context.Context) (*User, error) {
	base := ""
	if IsSaaSHost(c.host) {
		base = "https://" + defaultHost
	}
	body, err := c.requestJSON(ctx, http.MethodGet, "/auth/", nil, base)
	if err != nil {
		return nil, err
	}
	user, err := decode[User](body)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrganization fetches one organization by slug.
func (c *Client) GetOrganization(ctx context.Context, org string) (*Organization, error) {
	body, err := c.requestJSON(ctx, http.MethodGet, "/organizations/"+org+"/", nil, "")
	if err != nil {
		return nil, err
	}
	o, err := decode[Organization](body)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListTeams lists teams in an organization, optionally filtered by query.
func (c *Client) ListTeams(ctx context.Context, org, query string) ([]Team, error) {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(defaultPageSize))
	if query != "" {
		params.Set("query", query)
	}
	body, err := c.requestJSON(ctx, http.MethodGet,
		"/organizations/"+org+"/teams/?"+params.Encode(), nil, "")
	if err != nil {
		return nil, err
	}
	return decode[[]Team](body)
}

// CreateTeam creates a team in an organization.
func (c *Client) CreateTeam(ctx context.Context, org, name string) (*Team, error) {
	body, err := c.requestJSON(ctx, http.MethodPost,
		"/organizations/"+org+"/teams/", map[string]string{"name": name}, "")
	if err != nil {
		return nil, err
	}
	t, err := decode[Team](body)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListProjects lists projects in an organization, optionally filtered by query.
func (c *Client) ListProjects(ctx context.Context, org, query string) ([]Project, error) {
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(defaultPageSize))
	if query != "" {
		params.Set("query", query)
	}
	body, err := c.requestJSON(ctx, http.MethodGet,
		"/organizations/"+org+"/projects/?"+params.Encode(), nil, "")
	if err != nil {
		return nil, err
	}
	return decode[[]Project](body)
}

// GetProject fetches one project by slug or numeric ID.
func (c *Client) GetProject(ctx context.Context, org, project string) (*Project, error) {
	body, err := c.requestJSON(ctx, http.MethodGet,
		"/projects/"+org+"/"+project+"/", nil, "")
	if err != nil {
		return nil, err
	}
	p, err := decode[Project](body)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject creates a project owned by a team. platform may be empty.
func (c *Client) CreateProject(ctx context.Context, org, team, name, platform string) (*Project, error) {
	payload := map[string]string{"name": name}
	if platform != "" {
		payload["platform"] = platform
	}
	body, err := c.requestJSON(ctx, http.MethodPost,
		"/teams/"+org+"/"+team+"/projects/", payload, "")
	if err != nil {
		return nil, err
	}
	p, err := decode[Project](body)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProjectUpdate holds the mutable project fields; empty values are omitted.
type ProjectUpdate struct {
	Name     string
	Slug     string
	Platform string
}

// UpdateProject applies a partial update to a project.
func (c *Client) UpdateProject(ctx context.Context, org, project string, update ProjectUpdate) (*Project, error) {
	payload := map[string]string{}
	if update.Name != "" {
		payload["name"] = update.Name
	}
	if update.Slug != "" {
		payload["slug"] = update.Slug
	}
	if update.Platform != "" {
		payload["platform"] = update.Platform
	}
	body, err := c.requestJSON(ctx, http.MethodPut,
		"/projects/"+org+"/"+project+"/", payload, "")
	if err != nil {
		return nil, err
	}
	p, err := decode[Project](body)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateClientKey issues a new DSN for a project.
func (c *Client) CreateClientKey(ctx context.Context, org, project, name string) (*ClientKey, error) {
	body, err := c.requestJSON(ctx, http.MethodPost,
		"/projects/"+org+"/"+project+"/keys/", map[string]string{"name": name}, "")
	if err != nil {
		return nil, err
	}
	k, err := decode[ClientKey](body)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// ListClientKeys lists a project's DSNs.
func (c *Client) ListClientKeys(ctx context.Context, org, project string) ([]ClientKey, error) {
	body, err := c.requestJSON(ctx, http.MethodGet,
		"/projects/"+org+"/"+project+"/keys/", nil, "")
	if err != nil {
		return nil, err
	}
	return decode[[]ClientKey](body)
}

// ListReleases lists releases, project-scoped when project is non-empty.
func (c *Client) ListReleases(ctx context.Context, org, project, query string) ([]Release, error) {
	path := "/organizations/" + org + "/releases/"
	if project != "" {
		path = "/projects/" + org + "/" + project + "/releases/"
	}
	if query != "" {
		params := url.Values{}
		params.Set("query", query)
		path += "?" + params.Encode()
	}
	body, err := c.requestJSON(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return decode[[]Release](body)
}

// IssueQuery filters ListIssues.
type IssueQuery struct {
	Project string // optional project slug
	Query   string // Sentry search syntax, e.g. "is:unresolved"
	Sort    string // user, freq, date, new
	Limit   int    // defaults to 10
}

// ListIssues searches issues in an organization over the last 24 hours.
func (c *Client) ListIssues(ctx context.Context, org string, q IssueQuery) ([]Issue, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(limit))
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	params.Set("statsPeriod", "24h")
	params.Set("query", q.Query)
	params.Add("collapse", "unhandled")

	path := "/organizations/" + org + "/issues/?" + params.Encode()
	if q.Project != "" {
		path = "/projects/" + org + "/" + q.Project + "/issues/?" + params.Encode()
	}
	body, err := c.requestJSON(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return decode[[]Issue](body)
}

// GetIssue fetches one issue by short or numeric ID.
func (c *Client) GetIssue(ctx context.Context, org, issueID string) (*Issue, error) {
	body, err := c.requestJSON(ctx, http.MethodGet,
		"/organizations/"+org+"/issues/"+issueID+"/", nil, "")
	if err != nil {
		return nil, err
	}
	issue, err := decode[Issue](body)
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// IssueUpdate holds the mutable issue fields; empty values are omitted.
type IssueUpdate struct {
	Status     string
	AssignedTo string
}

// UpdateIssue applies a partial update to an issue.
func (c *Client) UpdateIssue(ctx context.Context, org, issueID string, update IssueUpdate) (*Issue, error) {
	payload := map[string]string{}
	if update.Status != "" {
		payload["status"] = update.Status
	}
	if update.AssignedTo != "" {
		payload["assignedTo"] = update.AssignedTo
	}
	body, err := c.requestJSON(ctx, http.MethodPut,
		"/organizations/"+org+"/issues/"+issueID+"/", payload, "")
	if err != nil {
		return nil, err
	}
	issue, err := decode[Issue](body)
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// GetLatestEventForIssue returns the most recent event recorded for an issue.
func (c *Client) GetLatestEventForIssue(ctx context.Context, org, issueID string) (*Event, error) {
	body, err := c.requestJSON(ctx, http.MethodGet,
		"/organizations/"+org+"/issues/"+issueID+"/events/latest/", nil, "")
	if err != nil {
		return nil, err
	}
	event, err := decode[Event](body)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// EventQuery filters ListEventsForIssue.
type EventQuery struct {
	Query       string
	Limit       int
	Sort        string
	StatsPeriod string
}

// ListEventsForIssue lists events recorded for an issue.
func (c *Client) ListEventsForIssue(ctx context.Context, org, issueID string, q EventQuery) ([]Event, error) {
	params := url.Values{}
	if q.Query != "" {
		params.Set("query", q.Query)
	}
	if q.Limit > 0 {
		params.Set("per_page", strconv.Itoa(q.Limit))
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.StatsPeriod != "" {
		params.Set("statsPeriod", q.StatsPeriod)
	}
	path := "/organizations/" + org + "/issues/" + issueID + "/events/"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	body, err := c.requestJSON(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return decode[[]Event](body)
}

// ListEventAttachments lists the files attached to an event.
func (c *Client) ListEventAttachments(ctx context.Context, org, project, eventID string) ([]EventAttachment, error) {
	body, err := c.requestJSON(ctx, http.MethodGet,
		"/projects/"+org+"/"+project+"/events/"+eventID+"/attachments/", nil, "")
	if err != nil {
		return nil, err
	}
	return decode[[]EventAttachment](body)
}

// GetEventAttachment resolves one attachment by ID and downloads its content.
// An unknown attachment ID yields a 404-tagged APIError so callers can treat
// it as absent.
func (c *Client) GetEventAttachment(ctx context.Context, org, project, eventID, attachmentID string) (*EventAttachment, []byte, error) {
	attachments, err := c.ListEventAttachments(ctx, org, project, eventID)
	if err != nil {
		return nil, nil, err
	}

	var attachment *EventAttachment
	for i := range attachments {
		if attachments[i].ID == attachmentID {
			attachment = &attachments[i]
			break
		}
	}
	if attachment == nil {
		return nil, nil, &APIError{
			Message: fmt.Sprintf("attachment %s not found for event %s", attachmentID, eventID),
			Status:  http.StatusNotFound,
		}
	}

	resp, err := c.do(ctx, http.MethodGet,
		"/projects/"+org+"/"+project+"/events/"+eventID+"/attachments/"+attachmentID+"/?download=1",
		nil, "")
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &APIError{Message: "failed to download attachment", Cause: err}
	}
	return attachment, data, nil
}

// GetTraceMeta fetches summary counters for one trace.
func (c *Client) GetTraceMeta(ctx context.Context, org, traceID, statsPeriod string) (*TraceMeta, error) {
	if statsPeriod == "" {
		statsPeriod = "14d"
	}
	params := url.Values{}
	params.Set("statsPeriod", statsPeriod)
	body, err := c.requestJSON(ctx, http.MethodGet,
		"/organizations/"+org+"/trace-meta/"+traceID+"/?"+params.Encode(), nil, "")
	if err != nil {
		return nil, err
	}
	meta, err := decode[TraceMeta](body)
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// GetTrace fetches the span tree of one trace.
func (c *Client) GetTrace(ctx context.Context, org, traceID string, limit int) (Trace, error) {
	if limit <= 0 {
		limit = 1000
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("project", "-1")
	params.Set("statsPeriod", "14d")
	body, err := c.requestJSON(ctx, http.MethodGet,
		"/organizations/"+org+"/trace/"+traceID+"/?"+params.Encode(), nil, "")
	if err != nil {
		return nil, err
	}
	return decode[Trace](body)
}

// SearchQuery drives SearchEvents.
type SearchQuery struct {
	Query       string
	Fields      []string
	Limit       int
	Project     string // numeric project ID
	Dataset     string // spans, errors, logs
	StatsPeriod string
	Sort        string
}

// SearchEvents runs an org-wide events query against one dataset.
func (c *Client) SearchEvents(ctx context.Context, org string, q SearchQuery) (*EventsResponse, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	dataset := q.Dataset
	if dataset == "" {
		dataset = "spans"
	}
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(limit))
	params.Set("query", q.Query)
	params.Set("dataset", dataset)
	if q.StatsPeriod != "" {
		params.Set("statsPeriod", q.StatsPeriod)
	}
	if q.Project != "" {
		params.Set("project", q.Project)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	for _, field := range q.Fields {
		params.Add("field", field)
	}
	body, err := c.requestJSON(ctx, http.MethodGet,
		"/organizations/"+org+"/events/?"+params.Encode(), nil, "")
	if err != nil {
		return nil, err
	}
	result, err := decode[EventsResponse](body)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// StartAutofix kicks off an AI root-cause analysis for an issue. Start
// failures surface immediately; there is no retry.
func (c *Client) StartAutofix(ctx context.Context, org, issueID, instruction string) (*AutofixRun, error) {
	payload := map[string]string{"instruction": instruction}
	body, err := c.requestJSON(ctx, http.MethodPost,
		"/organizations/"+org+"/issues/"+issueID+"/autofix/", payload, "")
	if err != nil {
		return nil, err
	}
	run, err := decode[AutofixRun](body)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetAutofixState reads the current state of an issue's analysis run.
func (c *Client) GetAutofixState(ctx context.Context, org, issueID string) (*AutofixState, error) {
	body, err := c.requestJSON(ctx, http.MethodGet,
		"/organizations/"+org+"/issues/"+issueID+"/autofix/", nil, "")
	if err != nil {
		return nil, err
	}
	state, err := decode[AutofixState](body)
	if err != nil {
		return nil, err
	}
	return &state, nil
}
