package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskcal/internal/config"
	"github.com/existflow/taskcal/internal/logger"
	"github.com/existflow/taskcal/internal/tui"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFile    string
	logConsole bool

	// appConfig is loaded once per invocation by the root pre-run hook
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "taskcal",
	Short: "TaskCal - Month calendar for date-ranged tasks",
	Long: `TaskCal shows tasks as bars on a month grid.

Drag across days to add a task, drag a bar to move it, and drag either
end of a bar to change its start or end day.

Run 'taskcal' without arguments to launch the interactive TUI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		cfg, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			cfg = config.DefaultConfig()
		}

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}

		// Save config if changed via CLI flags
		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		appConfig = cfg
		logger.Info("TaskCal started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := seedStore(appConfig)
		if err != nil {
			logger.Error("Failed to load seed tasks", logger.F("error", err))
			return err
		}

		criteria, err := resolveCriteria(cmd, appConfig)
		if err != nil {
			return err
		}
		month, err := resolveMonth(time.Now())
		if err != nil {
			return err
		}

		logger.Info("Launching TUI")
		m := tui.NewModel(s, tui.WithMonth(month), tui.WithCriteria(criteria))
		defer m.Close()

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("TaskCal exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	// Calendar flags shared by every command
	addFilterFlags(rootCmd.PersistentFlags())

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(monthCmd)
}
