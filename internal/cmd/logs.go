package cmd

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/rowsift/internal/config"
	"github.com/Iron-Ham/rowsift/internal/errors"
	"github.com/Iron-Ham/rowsift/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View dashboard logs",
	Long: `View and filter the dashboard log file, including rotated backups.

The dashboard writes JSON lines to rowsift.log in the state directory
($XDG_STATE_HOME/rowsift, or ~/.local/state/rowsift).

Examples:
  # Show the last 50 entries
  rowsift logs

  # Show everything about one dataset as CSV
  rowsift logs -n 0 --dataset data/sales.csv --format csv

  # Follow new entries
  rowsift logs -f

  # Warnings and errors from the last hour
  rowsift logs --level warn --since 1h

  # Search messages and attributes
  rowsift logs --grep "reload|failed"`,
	RunE: runLogs,
}

var (
	logsDir       string
	logsTail      int
	logsFollow    bool
	logsLevel     string
	logsSince     string
	logsGrep      string
	logsDataset   string
	logsComponent string
	logsFormat    string
)

// followInterval is how often --follow polls for new lines.
const followInterval = 200 * time.Millisecond

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVar(&logsDir, "dir", "", "log directory (default: the state directory)")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter logs matching pattern (regex)")
	logsCmd.Flags().StringVar(&logsDataset, "dataset", "", "Only entries about this dataset source")
	logsCmd.Flags().StringVar(&logsComponent, "component", "", "Only entries from this component (tui, dashboard, watcher, ...)")
	logsCmd.Flags().StringVar(&logsFormat, "format", "text", "Output format: "+strings.Join(logging.ExportFormats(), ", "))
}

// buildLogFilter turns the filter flags into a LogFilter.
func buildLogFilter(now time.Time) (logging.LogFilter, error) {
	f := logging.LogFilter{
		Dataset:   logsDataset,
		Component: logsComponent,
	}

	if logsLevel != "" {
		if !logging.IsValidLevel(logsLevel) {
			return f, fmt.Errorf("invalid level %q (valid: %s)", logsLevel, strings.Join(logging.ValidLevels(), ", "))
		}
		f.Level = logsLevel
	}

	if logsSince != "" {
		d, err := time.ParseDuration(logsSince)
		if err != nil {
			return f, fmt.Errorf("invalid duration format: %w", err)
		}
		f.Since = now.Add(-d)
	}

	if logsGrep != "" {
		re, err := regexp.Compile(logsGrep)
		if err != nil {
			return f, fmt.Errorf("invalid grep pattern: %w", err)
		}
		f.Pattern = re
	}
	return f, nil
}

func runLogs(cmd *cobra.Command, args []string) error {
	filter, err := buildLogFilter(time.Now())
	if err != nil {
		return err
	}

	dir := logsDir
	if dir == "" {
		dir = config.StateDir()
	}
	out := cmd.OutOrStdout()

	if logsFollow {
		return followLogs(cmd, filepath.Join(dir, logging.FileName), filter)
	}

	entries, err := logging.AggregateLogs(dir, config.Get().Logging.MaxBackups)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(out, "No logs found in %s\n", dir)
			return nil
		}
		return err
	}

	entries = logging.Tail(logging.FilterLogs(entries, filter), logsTail)
	if len(entries) == 0 && logsFormat == "text" {
		fmt.Fprintln(out, "No matching log entries found.")
		return nil
	}
	return logging.WriteLogEntries(out, entries, logsFormat)
}

// followLogs implements tail -f behavior for the log file. It stops when
// the command's context is cancelled.
func followLogs(cmd *cobra.Command, logPath string, filter logging.LogFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(cmd.ErrOrStderr(), "Following %s... (Ctrl+C to stop)\n", logPath)

	ctx := cmd.Context()
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(followInterval):
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("error reading log file: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entry, err := logging.ParseLogEntry(line)
		if err != nil {
			fmt.Fprintln(out, line)
			continue
		}
		if len(logging.FilterLogs([]logging.LogEntry{entry}, filter)) == 0 {
			continue
		}
		fmt.Fprintln(out, logging.FormatText(entry))
	}
}
