package commands

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"github.com/balkashynov/sendit/internal/app"
	"github.com/balkashynov/sendit/internal/config"
	"github.com/balkashynov/sendit/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// RootOptions holds the global flags and the state they produce for one run.
type RootOptions struct {
	ConfigPath string
	DBPath     string
	Memory     bool
	Verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	gdb    *gorm.DB
	app    *app.App
	appOps []app.Option
}

// NewRootCommand builds the sendit command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sendit",
		Short: "A climbing session tracker",
		Long: `sendit is a command-line climbing log.
Record sessions and climbs, track your weekly goal and streak, and watch
your grade pyramid grow, all from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.teardown()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (default ~/.sendit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "Database file (default ~/.sendit/sendit.db)")
	rootCmd.PersistentFlags().BoolVar(&opts.Memory, "memory", false, "Use a throwaway in-memory store")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newLogCmd(opts))
	rootCmd.AddCommand(newEditCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newRemoveCmd(opts))
	rootCmd.AddCommand(newClimbCmd(opts))
	rootCmd.AddCommand(newGoalsCmd(opts))
	rootCmd.AddCommand(newStatsCmd(opts))
	rootCmd.AddCommand(newProgressCmd(opts))
	rootCmd.AddCommand(newDashCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.SetHelpCommand(newHelpCmd())

	return rootCmd
}

// setup loads config and builds the logger. The store is opened lazily by withApp.
func (o *RootOptions) setup() error {
	if o.cfg == nil {
		path := o.ConfigPath
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		o.cfg = cfg
	}

	if o.logger == nil {
		logger, err := newLogger(o.cfg.Log.Level, o.Verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		o.logger = logger
	}
	return nil
}

func (o *RootOptions) teardown() {
	if o.gdb != nil {
		if err := db.Close(o.gdb); err != nil {
			o.logger.Warn("failed to close database", zap.Error(err))
		}
		o.gdb = nil
	}
	if o.logger != nil {
		_ = o.logger.Sync()
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.DisableStacktrace = true

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// openApp opens the configured store and loads the app state from it.
func (o *RootOptions) openApp() (*app.App, error) {
	if o.app != nil {
		return o.app, nil
	}

	var kv db.KV
	if o.Memory {
		kv = db.NewMemoryKV()
	} else {
		path := o.DBPath
		if path == "" {
			path = o.cfg.Storage.Path
		}
		if path == "" {
			p, err := db.DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		gdb, err := db.Open(path)
		if err != nil {
			return nil, err
		}
		o.gdb = gdb
		kv = db.NewSQLiteKV(gdb)
		o.logger.Debug("opened database", zap.String("path", path))
	}

	o.app = app.Load(db.NewStore(kv, o.logger.Named("store")), o.appOps...)
	return o.app, nil
}

// withApp wraps a command function to open the store first
func withApp(opts *RootOptions, fn func(*cobra.Command, []string, *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := opts.openApp()
		if err != nil {
			return err
		}
		return fn(cmd, args, a)
	}
}

// recentLimit is how many sessions list views show by default.
func (o *RootOptions) recentLimit() int {
	if o.cfg == nil || o.cfg.Display.RecentLimit < 1 {
		return config.Default().Display.RecentLimit
	}
	return o.cfg.Display.RecentLimit
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

// isTerminal reports whether stream is an interactive terminal.
func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
