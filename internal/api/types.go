// Package api is the typed client for the Sentry REST API. It issues
// authenticated HTTP requests and decodes the JSON responses into the structs
// defined here. The API adds fields over time, so decoding never rejects
// unknown keys.
package api

import (
	"bytes"
	"encoding/json"
)

// FlexID is an identifier that the API serves either as a JSON string or a
// JSON number. It always normalizes to a string so callers never branch on
// the wire type.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

func (id FlexID) String() string {
	return string(id)
}

// apiErrorBody is the shape of non-2xx response bodies, when present.
type apiErrorBody struct {
	Detail string `json:"detail"`
}

// User is the authenticated account returned by /auth/.
type User struct {
	ID    FlexID  `json:"id"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

// Region is one data-residency host returned by region discovery.
type Region struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type userRegions struct {
	Regions []Region `json:"regions"`
}

type OrganizationLinks struct {
	RegionURL       string `json:"regionUrl,omitempty"`
	OrganizationURL string `json:"organizationUrl"`
}

type Organization struct {
	ID    FlexID             `json:"id"`
	Slug  string             `json:"slug"`
	Name  string             `json:"name"`
	Links *OrganizationLinks `json:"links,omitempty"`
}

type Team struct {
	ID   FlexID `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type Project struct {
	ID       FlexID  `json:"id"`
	Slug     string  `json:"slug"`
	Name     string  `json:"name"`
	Platform *string `json:"platform,omitempty"`
}

// ClientKey is a DSN issued to instrumented applications.
type ClientKey struct {
	ID   FlexID `json:"id"`
	Name string `json:"name"`
	DSN  struct {
		Public string `json:"public"`
	} `json:"dsn"`
	IsActive    bool   `json:"isActive"`
	DateCreated string `json:"dateCreated"`
}

type ReleaseCommit struct {
	ID          FlexID `json:"id"`
	Message     string `json:"message"`
	DateCreated string `json:"dateCreated"`
	Author      struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"author"`
}

type ReleaseDeploy struct {
	ID           FlexID  `json:"id"`
	Environment  string  `json:"environment"`
	DateStarted  *string `json:"dateStarted"`
	DateFinished *string `json:"dateFinished"`
}

type Release struct {
	ID           FlexID         `json:"id"`
	Version      string         `json:"version"`
	ShortVersion string         `json:"shortVersion"`
	DateCreated  string         `json:"dateCreated"`
	DateReleased *string        `json:"dateReleased"`
	FirstEvent   *string        `json:"firstEvent"`
	LastEvent    *string        `json:"lastEvent"`
	NewGroups    int            `json:"newGroups"`
	LastCommit   *ReleaseCommit `json:"lastCommit"`
	LastDeploy   *ReleaseDeploy `json:"lastDeploy"`
	Projects     []Project      `json:"projects"`
}

// AssignedTo is either null, a bare username string, or a user/team object on
// the wire. A bare string leaves Type and ID empty.
type AssignedTo struct {
	Type  string
	ID    FlexID
	Name  string
	Email string
}

func (a *AssignedTo) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.Name = s
		return nil
	}
	var obj struct {
		Type  string `json:"type"`
		ID    FlexID `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	a.Type = obj.Type
	a.ID = obj.ID
	a.Name = obj.Name
	a.Email = obj.Email
	return nil
}

type IssueMetadata struct {
	Title    *string `json:"title,omitempty"`
	Location *string `json:"location,omitempty"`
	Value    *string `json:"value,omitempty"`
}

// Issue is a deduplicated group of recorded events.
type Issue struct {
	ID            FlexID         `json:"id"`
	ShortID       string         `json:"shortId"`
	Title         string         `json:"title"`
	FirstSeen     string         `json:"firstSeen"`
	LastSeen      string         `json:"lastSeen"`
	Count         FlexID         `json:"count"`
	UserCount     FlexID         `json:"userCount"`
	Permalink     string         `json:"permalink"`
	Project       Project        `json:"project"`
	Platform      *string        `json:"platform,omitempty"`
	Status        string         `json:"status"`
	Substatus     *string        `json:"substatus,omitempty"`
	Culprit       string         `json:"culprit"`
	Type          string         `json:"type"`
	AssignedTo    *AssignedTo    `json:"assignedTo,omitempty"`
	IssueType     string         `json:"issueType,omitempty"`
	IssueCategory string         `json:"issueCategory,omitempty"`
	Metadata      *IssueMetadata `json:"metadata,omitempty"`
}

// EventTag is one key/value tag on an event.
type EventTag struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// Frame is one stack frame of an exception or thread stacktrace.
type Frame struct {
	Filename *string `json:"filename,omitempty"`
	Function *string `json:"function,omitempty"`
	LineNo   *int    `json:"lineNo,omitempty"`
	ColNo    *int    `json:"colNo,omitempty"`
	AbsPath  *string `json:"absPath,omitempty"`
	Module   *string `json:"module,omitempty"`
	InApp    *bool   `json:"inApp,omitempty"`
}

type Stacktrace struct {
	Frames []Frame `json:"frames"`
}

// ExceptionValue is one exception of an event's exception entry.
type ExceptionValue struct {
	Type       *string     `json:"type,omitempty"`
	Value      *string     `json:"value,omitempty"`
	Stacktrace *Stacktrace `json:"stacktrace,omitempty"`
	Mechanism  *struct {
		Type    *string `json:"type,omitempty"`
		Handled *bool   `json:"handled,omitempty"`
	} `json:"mechanism,omitempty"`
}

// ExceptionData is the payload of an "exception" event entry.
type ExceptionData struct {
	Values []ExceptionValue `json:"values,omitempty"`
}

// MessageData is the payload of a "message" event entry.
type MessageData struct {
	Formatted *string `json:"formatted,omitempty"`
	Message   *string `json:"message,omitempty"`
}

// BreadcrumbData is the payload of a "breadcrumbs" event entry.
type BreadcrumbData struct {
	Values []struct {
		Timestamp *string `json:"timestamp,omitempty"`
		Category  *string `json:"category,omitempty"`
		Level     *string `json:"level,omitempty"`
		Message   *string `json:"message,omitempty"`
	} `json:"values,omitempty"`
}

// EventEntry is one interface section of an event. The entry types form an
// open set, so Data stays raw and is decoded on demand by the typed accessors.
type EventEntry struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Exception decodes the entry payload as exception data. The second return is
// false when the entry is not an exception entry or the payload doesn't parse.
func (e EventEntry) Exception() (ExceptionData, bool) {
	if e.Type != "exception" {
		return ExceptionData{}, false
	}
	var data ExceptionData
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return ExceptionData{}, false
	}
	return data, true
}

// Message decodes the entry payload as message data.
func (e EventEntry) Message() (MessageData, bool) {
	if e.Type != "message" {
		return MessageData{}, false
	}
	var data MessageData
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return MessageData{}, false
	}
	return data, true
}

// Event is a single recorded occurrence. The "type" discriminator selects the
// wire variant (error, default, transaction, generic); unrecognized types
// still decode with the base fields, and Raw keeps the original object so
// fields this client doesn't model are preserved.
type Event struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Title       string       `json:"title"`
	Message     *string      `json:"message"`
	Platform    *string      `json:"platform,omitempty"`
	Culprit     *string      `json:"culprit,omitempty"`
	DateCreated string       `json:"dateCreated,omitempty"`
	Entries     []EventEntry `json:"entries"`
	Tags        []EventTag   `json:"tags,omitempty"`

	Raw json.RawMessage `json:"-"`
}

func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*e = Event(v)
	e.Raw = append(e.Raw[:0], data...)
	return nil
}

// EventAttachment describes one file attached to an event.
type EventAttachment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Size        int64  `json:"size"`
	Mimetype    string `json:"mimetype"`
	DateCreated string `json:"dateCreated"`
	SHA1        string `json:"sha1"`
}

// EventsResponse is the result of an org-wide events query. The row shape
// depends on the requested fields, so rows stay dynamic.
type EventsResponse struct {
	Data []map[string]any `json:"data"`
	Meta struct {
		Fields map[string]string `json:"fields"`
	} `json:"meta"`
}

// TraceMeta summarizes one trace.
type TraceMeta struct {
	Logs              int            `json:"logs"`
	Errors            int            `json:"errors"`
	PerformanceIssues int            `json:"performance_issues"`
	SpanCount         int            `json:"span_count"`
	SpanCountMap      map[string]int `json:"span_count_map"`
}

// TraceSpan is one node of a trace's span tree. Children hold the same shape,
// recursively.
type TraceSpan struct {
	EventID       string            `json:"event_id"`
	TransactionID string            `json:"transaction_id"`
	ProjectID     FlexID            `json:"project_id"`
	ProjectSlug   string            `json:"project_slug"`
	ParentSpanID  *string           `json:"parent_span_id"`
	StartTS       float64           `json:"start_timestamp"`
	EndTS         float64           `json:"end_timestamp"`
	Duration      float64           `json:"duration"`
	Transaction   string            `json:"transaction"`
	IsTransaction bool              `json:"is_transaction"`
	Description   string            `json:"description"`
	Op            string            `json:"op"`
	Name          string            `json:"name"`
	Errors        []json.RawMessage `json:"errors"`
	Children      []TraceSpan       `json:"children"`
}

// TraceIssue is an issue node interleaved in a trace response.
type TraceIssue struct {
	ID          FlexID `json:"id,omitempty"`
	IssueID     FlexID `json:"issue_id,omitempty"`
	ProjectSlug string `json:"project_slug,omitempty"`
	Title       string `json:"title,omitempty"`
	Culprit     string `json:"culprit,omitempty"`
	Type        string `json:"type,omitempty"`
}

// TraceItem is one root element of a trace response: a span subtree or an
// issue. Span objects always carry is_transaction; anything else decodes as
// an issue. An element that fits neither shape keeps only Raw, so one odd
// element never rejects the whole trace.
type TraceItem struct {
	Span  *TraceSpan
	Issue *TraceIssue

	Raw json.RawMessage
}

func (t *TraceItem) UnmarshalJSON(data []byte) error {
	t.Raw = append(t.Raw[:0], data...)

	var probe struct {
		IsTransaction *bool `json:"is_transaction"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil
	}
	if probe.IsTransaction != nil {
		var span TraceSpan
		if err := json.Unmarshal(data, &span); err == nil {
			t.Span = &span
		}
		return nil
	}
	var issue TraceIssue
	if err := json.Unmarshal(data, &issue); err == nil {
		t.Issue = &issue
	}
	return nil
}

// Trace is the full trace response.
type Trace []TraceItem
