// run.go implements the "runlet run" command which executes the workload
// inside the full session envelope.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runlet-dev/runlet/internal/cleanup"
	"github.com/runlet-dev/runlet/internal/config"
	"github.com/runlet-dev/runlet/internal/log"
	"github.com/runlet-dev/runlet/internal/session"
	"github.com/runlet-dev/runlet/internal/ui"
	"github.com/runlet-dev/runlet/internal/workload"
)

var runCmd = &cobra.Command{
	Use:   "run [name]",
	Short: "Run the workload inside the session envelope",
	Long: `Run the workload with session logging, a progress indicator and
start/end/duration reporting. The default workload is a placeholder loop;
the transcript it produces is the template for real one-off tasks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

var (
	logFileFlag  string
	progressFlag int
	stepsFlag    int
	delayFlag    time.Duration
)

func init() {
	runCmd.Flags().StringVar(&logFileFlag, "log-file", "", "Log destination (default: <executable>.log next to the binary)")
	runCmd.Flags().IntVar(&progressFlag, "progress", 0, "Initial progress percent (0-100)")
	runCmd.Flags().IntVar(&stepsFlag, "steps", 0, "Number of workload steps (default from config, else 10)")
	runCmd.Flags().DurationVar(&delayFlag, "delay", 0, "Simulated work per step (default from config, else 500ms)")
}

func runRun(cmd *cobra.Command, args []string) error {
	// Validate: initial percent must be within the progress range.
	if progressFlag < 0 || progressFlag > 100 {
		return fmt.Errorf("--progress must be between 0 and 100, got %d", progressFlag)
	}

	name := "workload"
	if len(args) > 0 {
		name = args[0]
	}

	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	// Config is optional: an uninitialized directory runs with defaults.
	cfg := config.DefaultConfig()
	initialized := false
	if _, statErr := os.Stat(config.Dir(projectRoot)); statErr == nil {
		loaded, cfgErr := config.ReadConfig(projectRoot)
		if cfgErr != nil {
			return fmt.Errorf("reading config: %w", cfgErr)
		}
		cfg = loaded
		initialized = true
	}

	now := time.Now()
	logPath, err := resolveLogPath(projectRoot, cfg, name, now, initialized)
	if err != nil {
		return err
	}

	sess := session.NewRunSession(name, logPath)

	// Record the run in history when the project is initialized.
	// Best-effort: store failures never fail the workload.
	var store *session.Store
	if initialized {
		store, err = session.NewStore(filepath.Join(config.Dir(projectRoot), "runlet.db"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: opening run history: %v\n", err)
		} else {
			defer store.Close()
			if recErr := store.RecordStart(sess); recErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: recording run start: %v\n", recErr)
			}
		}
	}

	// Session log: creation failure is fatal, no retry.
	logOpts := []log.Option{}
	if debug || cfg.Log.EchoDebug {
		logOpts = append(logOpts, log.WithDebugEcho())
	}
	logger, err := log.New(logPath, logOpts...)
	if err != nil {
		return fmt.Errorf("opening session log: %w", err)
	}

	reporter := ui.NewReporter(name)

	runnerOpts := []workload.RunnerOption{
		workload.WithInitialPercent(progressFlag),
		workload.WithSteps(pickInt(cmd, "steps", stepsFlag, cfg.Workload.Steps)),
		workload.WithStepDelay(pickDelay(cmd, cfg)),
	}
	runner := workload.NewRunner(logger, reporter, sess, runnerOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := runner.Run(ctx)

	if store != nil {
		if recErr := store.RecordEnd(sess, runErr); recErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: recording run end: %v\n", recErr)
		}
	}

	// The error was already logged at ERROR level by the runner; returning
	// it unchanged makes the process exit non-zero.
	return runErr
}

// resolveLogPath picks the session log destination: the --log-file flag,
// else a timestamped file in the configured log dir for initialized
// projects, else <executable>.log next to the binary.
func resolveLogPath(projectRoot string, cfg *config.Config, name string, now time.Time, initialized bool) (string, error) {
	if logFileFlag != "" {
		return logFileFlag, nil
	}
	if initialized && cfg.Log.Dir != "" {
		dir := cfg.Log.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(projectRoot, dir)
		}
		return filepath.Join(dir, cleanup.LogFileName(name, now)), nil
	}
	return defaultLogPath()
}

// defaultLogPath derives <dir>/<base>.log from the running executable.
func defaultLogPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
	return filepath.Join(filepath.Dir(exe), base+".log"), nil
}

// pickInt returns the flag value when the flag was set, else the config value.
func pickInt(cmd *cobra.Command, flag string, flagValue, cfgValue int) int {
	if cmd.Flags().Changed(flag) {
		return flagValue
	}
	return cfgValue
}

// pickDelay returns --delay when set, else the configured step delay.
func pickDelay(cmd *cobra.Command, cfg *config.Config) time.Duration {
	if cmd.Flags().Changed("delay") {
		return delayFlag
	}
	return time.Duration(cfg.Workload.StepDelayMs) * time.Millisecond
}
