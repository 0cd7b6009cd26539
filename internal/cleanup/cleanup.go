// Package cleanup implements pruning of old runlet session logs.
package cleanup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// logTimestampLayout is the prefix format used for session log file names.
const logTimestampLayout = "20060102-150405"

// LogFileName returns the timestamped file name used for a run's session
// log inside the configured log directory.
func LogFileName(name string, t time.Time) string {
	return fmt.Sprintf("%s-%s.log", t.Format(logTimestampLayout), name)
}

// logTimestamp extracts the timestamp prefix from a session log file name.
// Returns false for files that don't match the naming scheme.
func logTimestamp(name string) (time.Time, bool) {
	if !strings.HasSuffix(name, ".log") || len(name) < len(logTimestampLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(logTimestampLayout, name[:len(logTimestampLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PruneByAge removes session logs older than maxAgeDays. If dryRun is
// true, no files are deleted; the function only returns the names that
// would be removed. Returns the list of pruned file names.
func PruneByAge(logDir string, maxAgeDays int, dryRun bool) ([]string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading log directory: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	var pruned []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		t, ok := logTimestamp(entry.Name())
		if !ok {
			// Skip files that don't match the session log naming scheme.
			continue
		}

		if t.Before(cutoff) {
			if !dryRun {
				path := filepath.Join(logDir, entry.Name())
				if rmErr := os.Remove(path); rmErr != nil {
					return pruned, fmt.Errorf("removing %s: %w", entry.Name(), rmErr)
				}
			}
			pruned = append(pruned, entry.Name())
		}
	}

	return pruned, nil
}

// PruneKeepRecent removes all session logs except the most recent keep
// files. If dryRun is true, no files are deleted. Returns the list of
// pruned file names.
func PruneKeepRecent(logDir string, keep int, dryRun bool) ([]string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading log directory: %w", err)
	}

	// Filter to timestamp-prefixed .log files.
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := logTimestamp(entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}

	// Sort chronologically (timestamp prefixes sort lexicographically).
	sort.Strings(names)

	if len(names) <= keep {
		return nil, nil
	}

	toRemove := names[:len(names)-keep]
	var pruned []string

	for _, name := range toRemove {
		if !dryRun {
			path := filepath.Join(logDir, name)
			if rmErr := os.Remove(path); rmErr != nil {
				return pruned, fmt.Errorf("removing %s: %w", name, rmErr)
			}
		}
		pruned = append(pruned, name)
	}

	return pruned, nil
}
