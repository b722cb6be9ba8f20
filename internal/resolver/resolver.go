// Package resolver produces confirmed organization, project, and team slugs
// for one command invocation.
//
// Each value resolves through a strict cascade: explicit flag, then persisted
// config default, then (only on an interactive terminal) a fetched candidate
// list the user picks from. The first successful resolution is memoized for
// the rest of the invocation, so a command never mixes two organizations
// because of a second accidental prompt. Project and team resolution always
// resolve the organization first, since their candidate lists are org-scoped.
package resolver

import (
	"context"

	"sentryctl/internal/api"
	"sentryctl/internal/config"
	"sentryctl/internal/prompt"
)

// API is the slice of the gateway the resolver needs to fetch candidates.
type API interface {
	ListOrganizations(ctx context.Context, query string) ([]api.Organization, error)
	ListProjects(ctx context.Context, org, query string) ([]api.Project, error)
	ListTeams(ctx context.Context, org, query string) ([]api.Team, error)
}

// SelectFunc presents a single-choice list and returns the chosen value.
type SelectFunc func(title string, choices []prompt.Choice) (string, error)

// cell is a write-once resolution slot. Failures are not cached; only a
// successful resolution sticks.
type cell struct {
	value string
	done  bool
}

// Resolver resolves and memoizes context values for one invocation. It is
// not safe for concurrent use; resolution is awaited before any dependent
// call proceeds.
type Resolver struct {
	api API
	cfg config.Config

	orgFlag     string
	projectFlag string
	teamFlag    string

	selectFn    SelectFunc
	interactive func() bool

	org     cell
	project cell
	team    cell
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFlags supplies the explicit --org/--project/--team values for this
// invocation. Empty strings mean the flag was not passed.
func WithFlags(org, project, team string) Option {
	return func(r *Resolver) {
		r.orgFlag = org
		r.projectFlag = project
		r.teamFlag = team
	}
}

// WithSelect replaces the interactive selection capability.
func WithSelect(fn SelectFunc) Option {
	return func(r *Resolver) { r.selectFn = fn }
}

// WithInteractive replaces the terminal predicate.
func WithInteractive(fn func() bool) Option {
	return func(r *Resolver) { r.interactive = fn }
}

// New builds a resolver over the given gateway and resolved configuration.
func New(a API, cfg config.Config, opts ...Option) *Resolver {
	r := &Resolver{
		api:         a,
		cfg:         cfg,
		selectFn:    prompt.Select,
		interactive: prompt.IsInteractive,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Org resolves the organization slug. Required by nearly every operation.
func (r *Resolver) Org(ctx context.Context) (string, error) {
	if r.org.done {
		return r.org.value, nil
	}

	if r.orgFlag != "" {
		r.org = cell{value: r.orgFlag, done: true}
		return r.orgFlag, nil
	}
	if r.cfg.DefaultOrg != "" {
		r.org = cell{value: r.cfg.DefaultOrg, done: true}
		return r.cfg.DefaultOrg, nil
	}

	if !r.interactive() {
		return "", &config.ConfigError{
			Message: "organization required: pass --org or set defaultOrg in config",
		}
	}

	orgs, err := r.api.ListOrganizations(ctx, "")
	if err != nil {
		return "", err
	}
	if len(orgs) == 0 {
		return "", &config.ConfigError{Message: "no organizations found for this account"}
	}
	if len(orgs) == 1 {
		r.org = cell{value: orgs[0].Slug, done: true}
		return orgs[0].Slug, nil
	}

	choices := make([]prompt.Choice, len(orgs))
	for i, o := range orgs {
		choices[i] = prompt.Choice{Title: o.Name, Value: o.Slug}
	}
	selected, err := r.selectFn("Select organization", choices)
	if err != nil {
		return "", err
	}
	r.org = cell{value: selected, done: true}
	return selected, nil
}

// Project resolves the project slug. Resolves the organization first when a
// candidate list is needed.
func (r *Resolver) Project(ctx context.Context) (string, error) {
	if r.project.done {
		return r.project.value, nil
	}

	if r.projectFlag != "" {
		r.project = cell{value: r.projectFlag, done: true}
		return r.projectFlag, nil
	}
	if r.cfg.DefaultProject != "" {
		r.project = cell{value: r.cfg.DefaultProject, done: true}
		return r.cfg.DefaultProject, nil
	}

	if !r.interactive() {
		return "", &config.ConfigError{
			Message: "project required: pass --project or set defaultProject in config",
		}
	}

	org, err := r.Org(ctx)
	if err != nil {
		return "", err
	}
	projects, err := r.api.ListProjects(ctx, org, "")
	if err != nil {
		return "", err
	}
	if len(projects) == 0 {
		return "", &config.ConfigError{Message: "no projects found in organization '" + org + "'"}
	}
	if len(projects) == 1 {
		r.project = cell{value: projects[0].Slug, done: true}
		return projects[0].Slug, nil
	}

	choices := make([]prompt.Choice, len(projects))
	for i, p := range projects {
		choices[i] = prompt.Choice{Title: p.Name, Value: p.Slug}
	}
	selected, err := r.selectFn("Select project", choices)
	if err != nil {
		return "", err
	}
	r.project = cell{value: selected, done: true}
	return selected, nil
}

// OptionalProject returns the project from flag or config without ever
// prompting; empty means unscoped. For commands where project narrows the
// query instead of being required.
func (r *Resolver) OptionalProject() string {
	if r.projectFlag != "" {
		return r.projectFlag
	}
	return r.cfg.DefaultProject
}

// Team resolves the team slug. Teams have no persisted default, so the
// cascade is flag then prompt.
func (r *Resolver) Team(ctx context.Context) (string, error) {
	if r.team.done {
		return r.team.value, nil
	}

	if r.teamFlag != "" {
		r.team = cell{value: r.teamFlag, done: true}
		return r.teamFlag, nil
	}

	if !r.interactive() {
		return "", &config.ConfigError{Message: "team required: pass --team to specify a team"}
	}

	org, err := r.Org(ctx)
	if err != nil {
		return "", err
	}
	teams, err := r.api.ListTeams(ctx, org, "")
	if err != nil {
		return "", err
	}
	if len(teams) == 0 {
		return "", &config.ConfigError{Message: "no teams found in organization '" + org + "'"}
	}
	if len(teams) == 1 {
		r.team = cell{value: teams[0].Slug, done: true}
		return teams[0].Slug, nil
	}

	choices := make([]prompt.Choice, len(teams))
	for i, t := range teams {
		choices[i] = prompt.Choice{Title: t.Name, Value: t.Slug}
	}
	selected, err := r.selectFn("Select team", choices)
	if err != nil {
		return "", err
	}
	r.team = cell{value: selected, done: true}
	return selected, nil
}
