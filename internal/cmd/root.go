package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdconfig "github.com/Iron-Ham/rowsift/internal/cmd/config"
	"github.com/Iron-Ham/rowsift/internal/config"
	"github.com/Iron-Ham/rowsift/internal/errors"
	"github.com/Iron-Ham/rowsift/internal/logging"
	"github.com/Iron-Ham/rowsift/internal/tui/styles"
)

var rootCmd = &cobra.Command{
	Use:   "rowsift [file|url]",
	Short: "Interactive filtering dashboard for tabular data",
	Long: `rowsift loads a CSV dataset and lets you narrow its rows with a
multi-select filter per column plus a modulo/remainder filter on the
"number" column.

Without a subcommand it opens the interactive dashboard (see 'rowsift view').
Use 'rowsift query' for the same filtering from scripts.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runView,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/rowsift/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")

	addViewFlags(rootCmd)
	cmdconfig.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/rowsift")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("ROWSIFT")
	// e.g. ROWSIFT_TUI_PAGE_SIZE for tui.page_size
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()

	// Custom themes must be registered before the theme name is validated
	_, _ = styles.DiscoverCustomThemes(config.ThemesDir())
}

// loadConfig reads and validates the configuration and activates its theme.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	styles.SetActiveTheme(styles.ThemeName(cfg.TUI.Theme))
	return cfg, nil
}

// resolveSource picks the dataset from the first argument, falling back to
// dataset.source in the configuration.
func resolveSource(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Dataset.Source != "" {
		return cfg.Dataset.Source, nil
	}
	return "", errors.NewValidationError("no dataset given: pass a file or URL, or set dataset.source").
		WithField("source")
}

// cliLogger returns the stderr logger used by non-interactive commands.
// Only warnings are shown unless --verbose is set.
func cliLogger(cmd *cobra.Command) *logging.Logger {
	level := logging.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logging.LevelDebug
	}
	return logging.NewWriterLogger(cmd.ErrOrStderr(), level).WithComponent("cli")
}
