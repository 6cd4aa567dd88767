package main

import (
	"fmt"
	"os"
	"path/filepath"

	"oceandash/internal/config"
	"oceandash/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string
	seed       int64

	// series flags
	seriesFrom  int
	seriesTo    int
	seriesChart int

	// Logger
	logger *zap.Logger

	appConfig *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "oceandash",
	Short: "oceandash - terminal analytics console",
	Long: `oceandash is a terminal analytics console for ocean monitoring data.

It pairs a conversational assistant with windowed trend charts (actual
values, predictions and confidence bands) and metric comparison cards.

Run without arguments to start the interactive dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := logging.Initialize(resolveWorkspace(), cfg.Logging.ToLogging()); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		logging.Boot("oceandash starting (command=%s)", cmd.Name())

		// The dashboard owns the terminal; only one-shot commands log to stderr.
		if cmd == cmd.Root() {
			return nil
		}

		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runDashboard,
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Print the metric comparison cards",
	Args:  cobra.NoArgs,
	RunE:  runCompare,
}

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Print the visible slice of a chart for a window",
	Long: `Generates the chart series and prints the points between --from and --to.
Out-of-range or swapped bounds are corrected the same way the dashboard
slider corrects them.`,
	Args: cobra.NoArgs,
	RunE: runSeries,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a dashboard snapshot as JSON and markdown",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant one question and print the conversation",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <workspace>/.oceandash/config.yaml)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Seed for simulated data and replies (0 = config or clock)")

	seriesCmd.Flags().IntVar(&seriesFrom, "from", 0, "First index of the window")
	seriesCmd.Flags().IntVar(&seriesTo, "to", 49, "Last index of the window")
	seriesCmd.Flags().IntVar(&seriesChart, "chart", 0, "Chart index (0-2)")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveWorkspace() string {
	if workspace != "" {
		return workspace
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return filepath.Join(resolveWorkspace(), ".oceandash", "config.yaml")
}

// loadConfig loads and validates the config once per process. --seed wins
// over both the file and the environment.
func loadConfig() (*config.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return nil, err
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	appConfig = cfg
	return cfg, nil
}

func cliLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
