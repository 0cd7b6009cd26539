package session

import (
	"errors"
	"testing"
	"time"
)

func TestNewRunSession(t *testing.T) {
	sess := NewRunSession("backup", "/tmp/backup.log")

	if sess.ID == "" {
		t.Error("session ID should not be empty")
	}
	if sess.Name != "backup" {
		t.Errorf("Name = %q, want %q", sess.Name, "backup")
	}
	if sess.Start.IsZero() {
		t.Error("Start should be set")
	}
	if !sess.End.IsZero() {
		t.Error("End should be zero before Finish")
	}
}

func TestDurationRoundsToMillisecond(t *testing.T) {
	start := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	sess := &RunSession{Start: start, End: start.Add(1234567890 * time.Nanosecond)}

	want := 1235 * time.Millisecond
	if got := sess.Duration(); got != want {
		t.Errorf("Duration = %v, want %v", got, want)
	}
	if got := sess.Seconds(); got != 1.235 {
		t.Errorf("Seconds = %v, want 1.235", got)
	}
}

func TestDurationZeroBeforeFinish(t *testing.T) {
	sess := NewRunSession("x", "x.log")
	if sess.Duration() != 0 {
		t.Errorf("Duration before Finish = %v, want 0", sess.Duration())
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir() + "/runlet.db")
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer store.Close()

	sess := NewRunSession("nightly-report", "/tmp/nightly.log")
	if err := store.RecordStart(sess); err != nil {
		t.Fatalf("RecordStart failed: %v", err)
	}

	records, err := store.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Status != StatusRunning {
		t.Errorf("Status = %q, want %q", records[0].Status, StatusRunning)
	}

	sess.Finish()
	if err := store.RecordEnd(sess, nil); err != nil {
		t.Fatalf("RecordEnd failed: %v", err)
	}

	records, err = store.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if records[0].Status != StatusCompleted {
		t.Errorf("Status = %q, want %q", records[0].Status, StatusCompleted)
	}
	if records[0].DurationMs != sess.Duration().Milliseconds() {
		t.Errorf("DurationMs = %d, want %d", records[0].DurationMs, sess.Duration().Milliseconds())
	}
}

func TestStoreRecordsFailure(t *testing.T) {
	store, err := NewStore(t.TempDir() + "/runlet.db")
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer store.Close()

	sess := NewRunSession("flaky", "/tmp/flaky.log")
	if err := store.RecordStart(sess); err != nil {
		t.Fatalf("RecordStart failed: %v", err)
	}
	sess.Finish()
	if err := store.RecordEnd(sess, errors.New("disk on fire")); err != nil {
		t.Fatalf("RecordEnd failed: %v", err)
	}

	records, err := store.ListRuns(1)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if records[0].Status != StatusFailed {
		t.Errorf("Status = %q, want %q", records[0].Status, StatusFailed)
	}
	if records[0].Error != "disk on fire" {
		t.Errorf("Error = %q, want %q", records[0].Error, "disk on fire")
	}
}

func TestListRunsLimit(t *testing.T) {
	store, err := NewStore(t.TempDir() + "/runlet.db")
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		sess := NewRunSession("run", "run.log")
		sess.Start = time.Now().Add(time.Duration(i) * time.Second)
		if err := store.RecordStart(sess); err != nil {
			t.Fatalf("RecordStart failed: %v", err)
		}
	}

	records, err := store.ListRuns(3)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
}
