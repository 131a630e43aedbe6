package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"duit/cmd/duit/app"
	"duit/cmd/duit/ui"
	"duit/internal/config"
	"duit/internal/logging"
	"duit/internal/setup"
	"duit/internal/storage"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataDir    string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "duit",
	Short: "Duit - focus and habit coach for your terminal",
	Long: `Duit helps you stay focused by delaying access to distracting apps and
checking in with you throughout the day in the tone you choose.

Run without arguments to start the interactive app. The first run walks you
through a short setup: pick a goal, pick a motivation style, and you're in.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Interactive mode owns the terminal; it logs to file only.
		if cmd == cmd.Root() {
			logger = zap.NewNop()
			return nil
		}

		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <data-dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Data directory (default: ~/.duit or DUIT_DATA_DIR)")

	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	backupCmd.Flags().StringVarP(&backupOut, "out", "o", "", "Backup file (default: <data-dir>/backups/duit-backup-<time>.json)")

	// Add commands to root
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// env is what every command needs once config is loaded and the store is open.
type env struct {
	path    string
	cfg     *config.Config
	store   storage.Store
	adapter *storage.Adapter
}

// openEnv loads config, applies flags, initializes file logging and opens the store.
func openEnv(ctx context.Context) (*env, error) {
	dir := dataDir
	if dir == "" {
		dir = os.Getenv("DUIT_DATA_DIR")
	}
	if dir == "" {
		dir = config.DefaultDataDir()
	}
	path := configPath
	if path == "" {
		path = config.DefaultPath(dir)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := logging.Options{
		DebugMode:  cfg.Logging.DebugMode || verbose,
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Categories: cfg.Logging.Categories,
		Dir:        cfg.LogsDir(),
	}
	if verbose {
		opts.Level = "debug"
	}
	if err := logging.Initialize(opts); err != nil {
		logger.Warn("File logging disabled", zap.Error(err))
	}
	logging.Boot("Config loaded from %s (storage=%s)", path, cfg.Storage.Backend)

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}
	logger.Debug("Store opened", zap.String("backend", cfg.Storage.Backend), zap.String("data_dir", cfg.DataDir))

	return &env{path: path, cfg: cfg, store: store, adapter: storage.NewAdapter(store)}, nil
}

// Close releases the store.
func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		logger.Warn("Failed to close store", zap.Error(err))
	}
}

// runInteractive starts the terminal app.
func runInteractive(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.cfg
	dark := ui.TerminalIsDark()
	model := app.New(app.Options{
		Adapter:     e.adapter,
		Styles:      stylesFor(cfg, dark),
		Interaction: interactionFor(cfg),
		DataDir:     cfg.DataDir,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Edits to config.yaml apply to the running app.
	watcher, err := config.NewWatcher(e.path, func(next *config.Config) {
		p.Send(app.ReloadMsg{
			Styles:      stylesFor(next, dark),
			Interaction: interactionFor(next),
		})
	})
	if err == nil {
		if err := watcher.Start(ctx); err != nil {
			logging.BootWarn("Config hot reload disabled: %v", err)
		}
		defer watcher.Stop()
	} else {
		logging.BootWarn("Config hot reload disabled: %v", err)
	}

	_, err = p.Run()
	return err
}

func stylesFor(cfg *config.Config, detectedDark bool) ui.Styles {
	return ui.NewStyles(ui.ThemeFor(cfg.UI.ResolveDark(detectedDark)))
}

func interactionFor(cfg *config.Config) func() setup.Interaction {
	loading, reveal := cfg.GetLoadingDelay(), cfg.GetRevealDelay()
	return func() setup.Interaction {
		return setup.NewInteraction(loading, reveal)
	}
}
