// clean.go implements the "runlet clean" command for session log cleanup.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/runlet-dev/runlet/internal/cleanup"
	"github.com/runlet-dev/runlet/internal/config"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old session logs",
	Long: `Remove old session logs from the configured log directory.

By default, removes logs older than the configured max_age_days (default 30).
Use --keep to keep only the N most recent logs instead.
Use --dry-run to preview what would be removed.`,
	RunE: runClean,
}

var (
	keepFlag   int
	dryRunFlag bool
)

func init() {
	cleanCmd.Flags().IntVar(&keepFlag, "keep", 0, "Keep only the last N logs (0 = use age-based cleanup)")
	cleanCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Preview what would be removed without deleting")
}

func runClean(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	if _, statErr := os.Stat(config.Dir(dir)); os.IsNotExist(statErr) {
		return fmt.Errorf(".runlet/ not found. Run 'runlet init' first")
	}

	cfg, err := config.ReadConfig(dir)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	logDir := cfg.Log.Dir
	if !filepath.IsAbs(logDir) {
		logDir = filepath.Join(dir, logDir)
	}

	var pruned []string
	if keepFlag > 0 {
		pruned, err = cleanup.PruneKeepRecent(logDir, keepFlag, dryRunFlag)
	} else {
		maxAge := cfg.Cleanup.MaxAgeDays
		if maxAge <= 0 {
			maxAge = 30
		}
		pruned, err = cleanup.PruneByAge(logDir, maxAge, dryRunFlag)
	}
	if err != nil {
		return fmt.Errorf("cleaning logs: %w", err)
	}

	if len(pruned) == 0 {
		fmt.Println("Nothing to clean.")
		return nil
	}

	verb := "Removed"
	if dryRunFlag {
		verb = "Would remove"
	}
	fmt.Printf("%s %d log(s):\n", verb, len(pruned))
	for _, name := range pruned {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
