// init.go implements the "runlet init" command.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runlet-dev/runlet/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize runlet in the current directory",
	Long: `Initialize the .runlet/ directory with configuration and a logs/
directory. Initialized directories get timestamped per-run logs and a
run history database; uninitialized ones fall back to a single log file
next to the binary.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	// Check for an existing .runlet/ directory.
	runletDir := config.Dir(dir)
	if info, statErr := os.Stat(runletDir); statErr == nil && info.IsDir() {
		fmt.Println("Warning: .runlet/ directory already exists.")
		fmt.Print("Reinitialize? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if err := config.WriteConfig(dir, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	logsDir := cfg.Log.Dir
	if !filepath.IsAbs(logsDir) {
		logsDir = filepath.Join(dir, logsDir)
	}
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("creating logs directory: %w", err)
	}

	fmt.Println("Initialized .runlet/ with config.yaml and logs/")
	fmt.Println("Run 'runlet run' to execute the placeholder workload.")
	return nil
}
