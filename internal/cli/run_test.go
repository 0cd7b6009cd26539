package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/runlet-dev/runlet/internal/config"
	"github.com/runlet-dev/runlet/internal/testutil"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})
}

func TestRunCommandRejectsOutOfRangeProgress(t *testing.T) {
	chdir(t, t.TempDir())

	rootCmd.SetArgs([]string{"run", "--progress", "150", "--delay", "0s"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for --progress 150")
	}

	rootCmd.SetArgs([]string{"run", "--progress", "-1", "--delay", "0s"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for --progress -1")
	}
}

func TestRunCommandWritesExplicitLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)
	logPath := filepath.Join(tmpDir, "nested", "job.log")

	rootCmd.SetArgs([]string{"run", "job", "--log-file", logPath, "--progress", "0", "--delay", "0s"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("run command failed: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		"Start time: ",
		"Beginning workload execution",
		"Completed 100% of workload",
		"Custom workload completed successfully.",
		"End time: ",
		"Total runtime: ",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("log missing %q", want)
		}
	}
}

func TestRunCommandUsesConfiguredLogDir(t *testing.T) {
	dir := testutil.TempProject(t, testutil.InitializedProject())
	chdir(t, dir)

	rootCmd.SetArgs([]string{"run", "nightly", "--log-file", "", "--progress", "0", "--delay", "0s"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("run command failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, ".runlet", "logs"))
	if err != nil {
		t.Fatalf("reading logs dir: %v", err)
	}

	found := false
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), "-nightly.log") {
			found = true
		}
	}
	if !found {
		t.Errorf("no timestamped nightly log in .runlet/logs, got %v", entries)
	}

	// History database should exist and hold the run.
	if _, err := os.Stat(filepath.Join(dir, ".runlet", "runlet.db")); err != nil {
		t.Errorf("run history database not created: %v", err)
	}
}

func TestResolveLogPathPrefersFlag(t *testing.T) {
	logFileFlag = "/tmp/explicit.log"
	defer func() { logFileFlag = "" }()

	path, err := resolveLogPath("/project", config.DefaultConfig(), "job", time.Now(), true)
	if err != nil {
		t.Fatalf("resolveLogPath failed: %v", err)
	}
	if path != "/tmp/explicit.log" {
		t.Errorf("path = %q, want the flag value", path)
	}
}
