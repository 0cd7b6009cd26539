// Package ui provides terminal output components for runlet.
// This file implements the single-line progress indicator shown during a run.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	activityStyle = lipgloss.NewStyle().Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Reporter renders a console progress indicator for one activity.
// Display side effect only; nothing is persisted.
type Reporter struct {
	mu          sync.Mutex
	activity    string
	bar         progress.Model
	out         io.Writer
	isTTY       bool
	drawn       bool
	lastPrinted int // last percent printed in plain mode, -1 before any
}

// ReporterOption configures a Reporter at construction time.
type ReporterOption func(*Reporter)

// WithOutput redirects output to w and disables in-place rendering.
func WithOutput(w io.Writer) ReporterOption {
	return func(r *Reporter) {
		r.out = w
		r.isTTY = false
	}
}

// NewReporter creates a Reporter for the given activity description.
func NewReporter(activity string, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		activity:    activity,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		out:         os.Stdout,
		isTTY:       term.IsTerminal(int(os.Stdout.Fd())),
		lastPrinted: -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report updates the indicator to the given percent with a status text.
// percent outside [0,100] is rejected.
func (r *Reporter) Report(percent int, status string) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("progress percent %d out of range [0,100]", percent)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isTTY {
		r.renderPlain(percent, status)
		return nil
	}
	r.renderTTY(percent, status)
	return nil
}

// Finish moves the cursor past the in-place line so later output starts
// on a fresh line. No-op in plain mode.
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isTTY && r.drawn {
		fmt.Fprintln(r.out)
		r.drawn = false
	}
}

// renderTTY redraws the indicator in place on a single line.
func (r *Reporter) renderTTY(percent int, status string) {
	line := fmt.Sprintf("\r\033[2K%s %s %s",
		activityStyle.Render(r.activity),
		r.bar.ViewAs(float64(percent)/100),
		statusStyle.Render(status))
	fmt.Fprint(r.out, line)
	r.drawn = true
}

// renderPlain writes one line per percent transition (for CI/piping).
// Repeated reports at the same percent are suppressed.
func (r *Reporter) renderPlain(percent int, status string) {
	if percent == r.lastPrinted {
		return
	}
	fmt.Fprintf(r.out, "%s: %d%% - %s\n", r.activity, percent, status)
	r.lastPrinted = percent
}
