// Package workload drives a single run through its setup -> running ->
// cleanup -> closed sequence inside the logging and progress envelope.
package workload

import (
	"context"
	"fmt"
	"time"

	"github.com/runlet-dev/runlet/internal/log"
	"github.com/runlet-dev/runlet/internal/session"
	"github.com/runlet-dev/runlet/internal/ui"
)

// WorkFunc performs the work for one step. percent is the progress value
// the step will be reported at. The default implementation sleeps to
// simulate work; replace it with real logic.
type WorkFunc func(ctx context.Context, percent int) error

// Runner executes the workload for one session. The phases run linearly
// with no branching; the closed-phase actions (end timestamp, total
// runtime, log closure) run on every exit path.
type Runner struct {
	logger         *log.Logger
	progress       *ui.Reporter
	sess           *session.RunSession
	steps          int
	stepDelay      time.Duration
	initialPercent int
	work           WorkFunc
}

// RunnerOption configures a Runner at construction time.
type RunnerOption func(*Runner)

// WithSteps sets how many increments the progress sequence is divided into.
func WithSteps(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.steps = n
		}
	}
}

// WithStepDelay sets the simulated per-step work duration.
func WithStepDelay(d time.Duration) RunnerOption {
	return func(r *Runner) { r.stepDelay = d }
}

// WithInitialPercent seeds the progress value reported during setup.
func WithInitialPercent(p int) RunnerOption {
	return func(r *Runner) { r.initialPercent = p }
}

// WithWork replaces the placeholder per-step work.
func WithWork(fn WorkFunc) RunnerOption {
	return func(r *Runner) { r.work = fn }
}

// NewRunner creates a Runner over an open logger, a progress reporter and
// the session being executed.
func NewRunner(logger *log.Logger, progress *ui.Reporter, sess *session.RunSession, opts ...RunnerOption) *Runner {
	r := &Runner{
		logger:         logger,
		progress:       progress,
		sess:           sess,
		steps:          10,
		stepDelay:      500 * time.Millisecond,
		initialPercent: 0,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.work == nil {
		r.work = r.simulateWork
	}
	return r
}

// Run executes the full phase sequence. Any error from setup, running or
// cleanup is logged once at ERROR and returned unchanged; the closed-phase
// actions always execute first.
func (r *Runner) Run(ctx context.Context) (err error) {
	defer r.closeSession()

	if err = r.setup(); err != nil {
		return r.logFailure(err)
	}
	if err = r.running(ctx); err != nil {
		return r.logFailure(err)
	}
	if err = r.cleanup(); err != nil {
		return r.logFailure(err)
	}
	return nil
}

// setup logs the opening line and seeds the progress indicator.
func (r *Runner) setup() error {
	if err := r.logger.Log(log.LevelInfo, "Beginning workload execution"); err != nil {
		return err
	}
	return r.progress.Report(r.initialPercent, "Starting")
}

// running traverses the fixed percent sequence. Each step performs the
// (placeholder) work, reports progress and emits a DEBUG line.
func (r *Runner) running(ctx context.Context) error {
	for i := 0; i <= r.steps; i++ {
		percent := i * 100 / r.steps

		if err := r.work(ctx, percent); err != nil {
			return err
		}
		if err := r.progress.Report(percent, fmt.Sprintf("Step %d of %d", i, r.steps)); err != nil {
			return err
		}
		if err := r.logger.Logf(log.LevelDebug, "Completed %d%% of workload", percent); err != nil {
			return err
		}
	}
	return nil
}

// cleanup reports the final progress state and logs completion.
func (r *Runner) cleanup() error {
	if err := r.progress.Report(100, "Completed"); err != nil {
		return err
	}
	return r.logger.Log(log.LevelInfo, "Custom workload completed successfully.")
}

// closeSession performs the closed-phase actions: record the end time,
// log the end timestamp and total runtime, and close the log. Runs on
// every exit path; never alters the error being propagated.
func (r *Runner) closeSession() {
	r.progress.Finish()
	r.sess.Finish()

	_ = r.logger.Log(log.LevelInfo, "End time: "+log.Timestamp(r.sess.End))
	_ = r.logger.Logf(log.LevelInfo, "Total runtime: %.3f seconds", r.sess.Seconds())
	_ = r.logger.Close()
}

// logFailure records err at ERROR level and hands it back unchanged.
func (r *Runner) logFailure(err error) error {
	_ = r.logger.Log(log.LevelError, err.Error())
	return err
}

// simulateWork is the placeholder per-step work: a context-aware pause.
func (r *Runner) simulateWork(ctx context.Context, _ int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(r.stepDelay):
		return nil
	}
}
