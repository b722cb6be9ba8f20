// Package autofix drives asynchronous AI analysis runs: start one call, then
// poll at a fixed cadence until the run reaches a terminal state or the
// attempt budget runs out.
//
// The cadence is deliberately flat rather than backed off: a human is
// watching the output, so a predictable rhythm beats an adaptive one. The
// CLI only observes the run; interrupting the process never cancels the
// server-side job.
package autofix

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"sentryctl/internal/api"
)

const (
	// DefaultInterval is the wait between polls.
	DefaultInterval = 5 * time.Second
	// DefaultMaxAttempts bounds the poll loop; with DefaultInterval that is
	// a five-minute budget.
	DefaultMaxAttempts = 60
)

// API is the slice of the gateway the poller needs.
type API interface {
	StartAutofix(ctx context.Context, org, issueID, instruction string) (*api.AutofixRun, error)
	GetAutofixState(ctx context.Context, org, issueID string) (*api.AutofixState, error)
}

// Outcome classifies how a watch ended. Timeout and needs-input are distinct
// from both success and failure: the run may still be in flight server-side.
type Outcome int

const (
	// OutcomeFinished means a terminal status was observed; Result.Status
	// says whether the run completed, failed, errored, or was cancelled.
	OutcomeFinished Outcome = iota
	// OutcomeNeedsInput means the run is waiting for a human response in the
	// web UI.
	OutcomeNeedsInput
	// OutcomeTimedOut means the attempt budget was exhausted with the run
	// still going.
	OutcomeTimedOut
	// OutcomeNoData means the server reported no analysis state for the
	// issue.
	OutcomeNoData
)

// Result is the final observation of one watch.
type Result struct {
	Outcome  Outcome
	Status   api.AutofixStatus
	Steps    []api.AutofixStep
	Attempts int
}

// Poller runs the start/poll protocol.
type Poller struct {
	api         API
	interval    time.Duration
	maxAttempts int
	onStatus    func(api.AutofixStatus)
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval overrides the poll cadence.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

// WithMaxAttempts overrides the attempt budget.
func WithMaxAttempts(n int) Option {
	return func(p *Poller) { p.maxAttempts = n }
}

// WithStatusFunc registers a callback invoked with the status seen on every
// poll so the caller can render progress.
func WithStatusFunc(fn func(api.AutofixStatus)) Option {
	return func(p *Poller) { p.onStatus = fn }
}

// New builds a poller over the given gateway.
func New(a API, opts ...Option) *Poller {
	p := &Poller{
		api:         a,
		interval:    DefaultInterval,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins an analysis run. A start failure surfaces immediately.
func (p *Poller) Start(ctx context.Context, org, issueID, instruction string) (*api.AutofixRun, error) {
	return p.api.StartAutofix(ctx, org, issueID, instruction)
}

// Watch polls the run state until a terminal or semi-terminal status or until
// the attempt budget is spent. A poll error aborts the watch; the run itself
// keeps going server-side regardless of how the watch ends.
func (p *Poller) Watch(ctx context.Context, org, issueID string) (*Result, error) {
	pacer := rate.NewLimiter(rate.Every(p.interval), 1)
	// Drain the initial token: the first poll waits one interval, giving the
	// run time to produce state.
	pacer.Allow()

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := pacer.Wait(ctx); err != nil {
			return nil, err
		}

		state, err := p.api.GetAutofixState(ctx, org, issueID)
		if err != nil {
			return nil, err
		}
		if state.Autofix == nil {
			return &Result{Outcome: OutcomeNoData, Attempts: attempt}, nil
		}

		status := state.Autofix.Status
		if p.onStatus != nil {
			p.onStatus(status)
		}

		if status.Terminal() {
			return &Result{
				Outcome:  OutcomeFinished,
				Status:   status,
				Steps:    state.Autofix.Steps,
				Attempts: attempt,
			}, nil
		}
		if status == api.StatusWaitingForUserResponse {
			return &Result{
				Outcome:  OutcomeNeedsInput,
				Status:   status,
				Steps:    state.Autofix.Steps,
				Attempts: attempt,
			}, nil
		}
	}

	return &Result{Outcome: OutcomeTimedOut, Attempts: p.maxAttempts}, nil
}
