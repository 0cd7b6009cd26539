package ui

import (
	"strings"
	"testing"
)

func TestReportAcceptsFullRange(t *testing.T) {
	var out strings.Builder
	r := NewReporter("Workload", WithOutput(&out))

	for percent := 0; percent <= 100; percent++ {
		if err := r.Report(percent, "working"); err != nil {
			t.Fatalf("Report(%d) failed: %v", percent, err)
		}
	}
}

func TestReportRejectsOutOfRange(t *testing.T) {
	var out strings.Builder
	r := NewReporter("Workload", WithOutput(&out))

	for _, percent := range []int{-1, -100, 101, 1000} {
		if err := r.Report(percent, "working"); err == nil {
			t.Errorf("Report(%d) should fail", percent)
		}
	}
}

func TestPlainOutputPrintsTransitionsOnly(t *testing.T) {
	var out strings.Builder
	r := NewReporter("Workload", WithOutput(&out))

	for _, percent := range []int{0, 0, 50, 50, 100} {
		if err := r.Report(percent, "step"); err != nil {
			t.Fatalf("Report(%d) failed: %v", percent, err)
		}
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), out.String())
	}
	for i, want := range []string{"Workload: 0% - step", "Workload: 50% - step", "Workload: 100% - step"} {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestFinishIsNoOpInPlainMode(t *testing.T) {
	var out strings.Builder
	r := NewReporter("Workload", WithOutput(&out))

	if err := r.Report(10, "step"); err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	before := out.String()
	r.Finish()
	if out.String() != before {
		t.Errorf("Finish wrote %q in plain mode", out.String()[len(before):])
	}
}
