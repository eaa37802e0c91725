// Package commands implements the CLI commands for gitlink.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/gitlink/cmd"
	"github.com/thoreinstein/gitlink/internal/backup"
	"github.com/thoreinstein/gitlink/internal/config"
	"github.com/thoreinstein/gitlink/internal/errors"
	"github.com/thoreinstein/gitlink/internal/logging"
	"github.com/thoreinstein/gitlink/internal/paths"
	"github.com/thoreinstein/gitlink/internal/platform"
)

// debugEnv raises verbosity when no -v flag is given: "1"/"true" for debug,
// "2" for trace.
const debugEnv = "GITLINK_DEBUG"

// app holds state shared by every command of one invocation.
type app struct {
	verbosity  int
	quiet      bool
	logFormat  string
	logFile    string
	configPath string
	goos       string

	cfg      *config.Config
	logger   *slog.Logger
	resolver *platform.Resolver
	closers  []io.Closer
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gitlink",
		Short: "Create symlinks and hard links portably",
		Long: `gitlink answers whether the current machine can create symbolic and hard
links and creates them with the native primitives of the host: POSIX calls
on Unix-like systems and macOS, Win32 calls on Windows.

It can also materialize a manifest of files and links into a directory,
falling back to plain files and copies where links are not available.`,
		Example: `  # What can this machine do?
  gitlink caps

  # Create links
  gitlink symlink ./latest ./v2 --dir
  gitlink hardlink ./bin/alias ./bin/tool

  # Lay out a tree from a manifest
  gitlink materialize links.yaml --root ./out

  # Check system health
  gitlink doctor`,
		Version:           buildinfo.Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.close() },
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.SetVersionTemplate("gitlink version {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", "increase verbosity level (e.g., -v, -vv)")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: text, json (default from config)")
	pf.StringVar(&a.logFile, "log-file", "", "also write logs to file in JSON format")
	pf.StringVar(&a.configPath, "config", "", "config file (default: ./config.yaml or <config home>/gitlink/config.yaml)")
	pf.StringVar(&a.goos, "goos", "", "classify the host as this GOOS instead of the running one")
	_ = pf.MarkHidden("goos")

	root.AddCommand(
		newCapsCmd(a),
		newSymlinkCmd(a),
		newHardlinkCmd(a),
		newMaterializeCmd(a),
		newValidateCmd(a),
		newSchemaCmd(),
		newBackupCmd(a),
		newDoctorCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// setup loads configuration, configures logging and builds the resolver.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "version", "help", "schema":
		return nil
	}

	config.Init()
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return errors.NewConfigError(err)
	}
	a.cfg = cfg

	if err := a.setupLogging(cmd); err != nil {
		return err
	}

	a.resetResolver()

	a.logger.Debug("resolver ready",
		"config", config.FileUsed(),
		"goos", a.resolver.GOOS(),
		"family", a.resolver.Family().String(),
		"probe_root", a.resolver.ProbeRoot())
	return nil
}

// setupLogging configures the default logger based on verbosity flags.
func (a *app) setupLogging(cmd *cobra.Command) error {
	if a.quiet && a.verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if a.quiet {
		level = slog.LevelError
	} else {
		v := a.verbosity
		if v == 0 {
			switch os.Getenv(debugEnv) {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format := logging.Format(a.logFormat)
	if format == "" && a.cfg != nil {
		format = logging.Format(a.cfg.LogFormat)
	}
	switch format {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return errors.NewUserError(errors.Newf("invalid log format %q", format), "use --log-format text or json")
	}

	primary := logging.New(logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()}).Handler()
	handlers := []slog.Handler{primary}

	if a.logFile != "" {
		f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "check the --log-file path")
		}
		a.closers = append(a.closers, f)
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	var handler slog.Handler = primary
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	}

	a.logger = slog.New(handler)
	slog.SetDefault(a.logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, a.logger))
	return nil
}

// resetResolver installs a resolver with empty capability caches.
func (a *app) resetResolver() {
	opts := []platform.Option{
		platform.WithLogger(a.logger),
		platform.WithProbeRoot(paths.ProbeRoot(a.cfg.ProbeDir)),
	}
	if a.goos != "" {
		opts = append(opts, platform.WithGOOS(a.goos))
	}
	a.resolver = platform.NewResolver(opts...)
	platform.SetDefault(a.resolver)
}

func (a *app) backupManager() *backup.Manager {
	return backup.NewManager(backup.WithRetentionCount(a.cfg.BackupKeep))
}

func (a *app) close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}

// platformErr converts a resolver error into the CLI's exit error.
func platformErr(err error) error {
	if errors.Is(err, errors.ErrUnsupportedPlatform) {
		return errors.NewPlatformError(err)
	}
	return err
}
