// Package chat connects session reducers to the backend client.
package chat

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/diogo/funkychat/internal/models"
	"github.com/diogo/funkychat/internal/session"
	"github.com/diogo/funkychat/internal/telemetry"
)

// Dispatcher sends one message to a backend
type Dispatcher interface {
	Send(ctx context.Context, id models.BackendID, text string) models.Reply
}

// Prober checks the liveness of a backend
type Prober interface {
	Probe(ctx context.Context, id models.BackendID) models.Status
}

// Runner executes reducer effects and liveness refreshes
type Runner struct {
	dispatcher Dispatcher
	prober     Prober
	logger     *slog.Logger
	now        func() time.Time
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithLogger sets the runner logger
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock overrides the time source used for message timestamps
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner creates a Runner
func NewRunner(dispatcher Dispatcher, prober Prober, opts ...RunnerOption) *Runner {
	r := &Runner{
		dispatcher: dispatcher,
		prober:     prober,
		logger:     telemetry.Discard(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now returns the runner's current time
func (r *Runner) Now() time.Time {
	return r.now()
}

// Execute performs effect and returns the event that reports its outcome,
// or nil when there is nothing to report
func (r *Runner) Execute(ctx context.Context, effect session.Effect) session.Event {
	switch eff := effect.(type) {
	case session.Dispatch:
		r.logger.Debug("dispatching message", "backend", eff.Backend, "length", len(eff.Text))
		reply := r.dispatcher.Send(ctx, eff.Backend, eff.Text)
		return session.ReplyReceived{Reply: reply, At: r.now()}
	default:
		return nil
	}
}

// Process applies ev to store and runs any resulting effect to completion.
// It blocks for the duration of a dispatch.
func (r *Runner) Process(ctx context.Context, store *session.Store, ev session.Event) {
	effect := store.Apply(ev)
	for effect != nil {
		next := r.Execute(ctx, effect)
		if next == nil {
			return
		}
		effect = store.Apply(next)
	}
}

// Submit processes a user submission stamped with the current time
func (r *Runner) Submit(ctx context.Context, store *session.Store, text string) {
	r.Process(ctx, store, session.Submitted{Text: text, At: r.now()})
}

// ProbeAll probes every backend concurrently. Results are returned in
// backend order; each probe writes only its own slot.
func (r *Runner) ProbeAll(ctx context.Context) []session.StatusProbed {
	backends := models.AllBackends()
	results := make([]session.StatusProbed, len(backends))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range backends {
		g.Go(func() error {
			results[i] = session.StatusProbed{Backend: id, Status: r.prober.Probe(gctx, id)}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Refresh probes every backend and records the results in store
func (r *Runner) Refresh(ctx context.Context, store *session.Store) {
	for _, ev := range r.ProbeAll(ctx) {
		store.Apply(ev)
	}
}
