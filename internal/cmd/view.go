package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/rowsift/internal/config"
	"github.com/Iron-Ham/rowsift/internal/dashboard"
	"github.com/Iron-Ham/rowsift/internal/dataset"
	"github.com/Iron-Ham/rowsift/internal/errors"
	"github.com/Iron-Ham/rowsift/internal/logging"
	"github.com/Iron-Ham/rowsift/internal/tui"
	"github.com/Iron-Ham/rowsift/internal/tui/styles"
)

var viewCmd = &cobra.Command{
	Use:   "view [file|url]",
	Short: "Open the interactive filtering dashboard",
	Long: `Open the interactive dashboard for a CSV dataset.

The dataset must have a header row with a "number" column. Every other
column becomes a multi-select filter whose options narrow as other filters
are applied. The modulo control keeps rows whose number leaves one of the
selected remainders when divided by the base.

Examples:
  rowsift view data/sales.csv
  rowsift view https://example.com/export.csv
  rowsift view data/sales.csv --watch --exclude 'internal_*'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	addViewFlags(viewCmd)
}

// addViewFlags registers the dashboard flags. They exist on both the root
// command and view, so they are read from the command rather than bound to
// viper.
func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("watch", "w", false, "reload the dataset when the file changes")
	cmd.Flags().StringSlice("exclude", nil, "glob patterns of columns to drop (overrides dataset.exclude_columns)")
	cmd.Flags().String("theme", "", "color theme (overrides tui.theme)")
	cmd.Flags().Int("page-size", 0, "rows per table page (overrides tui.page_size)")
}

// applyViewFlags overrides configuration values with explicitly set flags.
func applyViewFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("watch") {
		cfg.Dataset.Watch, _ = flags.GetBool("watch")
	}
	if flags.Changed("exclude") {
		cfg.Dataset.ExcludeColumns, _ = flags.GetStringSlice("exclude")
	}
	if flags.Changed("theme") {
		cfg.TUI.Theme, _ = flags.GetString("theme")
	}
	if flags.Changed("page-size") {
		cfg.TUI.PageSize, _ = flags.GetInt("page-size")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return config.ValidationErrors(errs)
	}
	styles.SetActiveTheme(styles.ThemeName(cfg.TUI.Theme))
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyViewFlags(cmd, cfg); err != nil {
		return err
	}
	source, err := resolveSource(args, cfg)
	if err != nil {
		return err
	}

	logger, err := dashboardLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	opts := dataset.LoadOptions{Timeout: cfg.Dataset.LoadTimeout}

	var reloads <-chan dataset.Reload
	if cfg.Dataset.Watch {
		if dataset.IsRemote(source) {
			return errors.NewValidationError("--watch only works with local files").
				WithField("watch").WithValue(source)
		}
		w, err := dataset.NewWatcher(source, opts)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", source, err)
		}
		w.Start()
		defer w.Stop()
		reloads = w.Reloads()
		logger.Info("watching dataset", logging.KeyDataset, source)
	}

	width, height := terminalSize()
	app := tui.New(tui.Config{
		Source:               source,
		LoadOptions:          opts,
		Reloads:              reloads,
		Exclude:              cfg.Dataset.ExcludeColumns,
		PageSize:             cfg.TUI.PageSize,
		PickerHeight:         cfg.TUI.PickerHeight,
		MaxRemainderOptions:  cfg.Filter.MaxRemainderOptions,
		ModuloNarrowsOptions: cfg.Filter.ModuloNarrowsOptions,
		Width:                width,
		Height:               height,
		Styles:               styles.Active(),
		Logger:               logger,
	})

	final, err := app.Run()
	if err != nil {
		return fmt.Errorf("dashboard exited with error: %w", err)
	}
	if st := final.State(); st.Lifecycle() == dashboard.Failed {
		logger.Error("dashboard closed without data", logging.KeyError, st.Err())
	}
	return nil
}

// dashboardLogger opens the rotating log file in the state directory, or
// returns a no-op logger when logging is disabled.
func dashboardLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLoggerWithRotation(config.StateDir(), cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logger, nil
}

// terminalSize reports the size of stdout, or zeros when it is not a
// terminal.
func terminalSize() (width, height int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return 0, 0
	}
	return width, height
}
