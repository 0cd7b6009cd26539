// Package testutil provides test helper utilities for runlet tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempProject creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// InitializedProject returns file contents for a directory that has been
// set up with "runlet init", with a fast step delay for tests.
func InitializedProject() map[string]string {
	return map[string]string{
		".runlet/config.yaml": `version: 1
log:
  dir: .runlet/logs
  echo_debug: false
workload:
  steps: 10
  step_delay_ms: 0
cleanup:
  max_age_days: 30
`,
		".runlet/logs/.keep": "",
	}
}
