// history.go implements the "runlet history" command listing recorded runs.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/runlet-dev/runlet/internal/config"
	"github.com/runlet-dev/runlet/internal/session"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Long: `List runs recorded in the .runlet/ history database, most recent
first. Runs are only recorded in initialized directories.`,
	RunE: runHistory,
}

var limitFlag int

func init() {
	historyCmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum number of runs to show (0 = all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	if _, statErr := os.Stat(config.Dir(dir)); os.IsNotExist(statErr) {
		return fmt.Errorf(".runlet/ not found. Run 'runlet init' first")
	}

	store, err := session.NewStore(filepath.Join(config.Dir(dir), "runlet.db"))
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	records, err := store.ListRuns(limitFlag)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tNAME\tSTATUS\tDURATION\tLOG")
	for _, r := range records {
		duration := "-"
		if r.Status != session.StatusRunning {
			duration = fmt.Sprintf("%.3fs", float64(r.DurationMs)/1000)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.StartedAt.Format(time.DateTime), r.Name, r.Status, duration, r.LogPath)
	}
	return w.Flush()
}
