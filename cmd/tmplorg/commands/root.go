// Package commands implements the CLI commands for tmplorg.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/tmplorg/cmd"
	"github.com/thoreinstein/tmplorg/internal/config"
	"github.com/thoreinstein/tmplorg/internal/errors"
	"github.com/thoreinstein/tmplorg/internal/logging"
	"github.com/thoreinstein/tmplorg/internal/registry"
)

// debugEnv raises the log level when set: 1 or true for debug, 2 for trace.
const debugEnv = "TMPLORG_DEBUG"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// logFileHandle is the open --log-file, closed once the command finishes.
var logFileHandle *os.File

// configFile holds the value of the --config flag.
var configFile string

// loadedConfig and configLoadErr hold the result of config loading.
var (
	loadedConfig  *config.Config
	configLoadErr error
)

// layoutFlags maps path flags to the configuration keys they override.
var layoutFlags = []struct {
	name  string
	key   string
	usage string
}{
	{"root", config.KeyRoot, "project root (default: nearest directory with Cargo.toml or go.mod)"},
	{"index", config.KeyIndex, "template index, relative to the root"},
	{"staging", config.KeyStagingDir, "directory holding the staged templates, relative to the root"},
	{"resources", config.KeyResourcesDir, "resource store, relative to the root"},
	{"out", config.KeyTemplatesDir, "templates directory to rebuild, relative to the resource store"},
	{"registry", config.KeyRegistryFile, "registry file, relative to the resource store"},
	{"format", config.KeyRegistryFormat, "registry format: " + registry.FormatList()},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	flags.BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	flags.StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	flags.StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	flags.StringVar(&configFile, "config", "",
		"config file (default: ./tmplorg.yaml or $XDG_CONFIG_HOME/tmplorg/tmplorg.yaml)")

	for _, f := range layoutFlags {
		flags.String(f.name, "", f.usage)
	}
	bindLayoutFlags()

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("tmplorg version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// bindLayoutFlags lets the path flags override their configuration keys.
func bindLayoutFlags() {
	for _, f := range layoutFlags {
		_ = viper.BindPFlag(f.key, rootCmd.PersistentFlags().Lookup(f.name))
	}
}

func initConfig() {
	config.Init()
	// Capture load errors for later reporting
	loadedConfig, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "tmplorg",
	Short: "Organize TextFSM templates into a per-platform resource layout",
	Long: `tmplorg turns a TextFSM template index into a canonical resource layout:
one directory per device platform holding that platform's templates, plus a
registry that maps each (platform, command key) pair to its template.

Index rows whose platform column is a pattern are assigned to a single
concrete platform by longest-prefix match of the template filename against
every literal platform in the index.

With no flags, run from the project root, tmplorg reads tmp/index and
rebuilds crates/netcli_core/resources.`,
	Example: `  # Rebuild the template tree and registry
  tmplorg build

  # Show how each index row resolves, without writing anything
  tmplorg resolve

  # Write the registry as YAML somewhere else
  tmplorg build --format yaml --registry /tmp/registry.yaml`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeLogFile()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"),
			"Use either -q or -v")
	}

	logging.ConfigureColor(cmd.OutOrStdout())

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	cfg := logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}
	if err := closeLogFile(); err != nil {
		return err
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "Check the --log-file path")
		}
		logFileHandle = f
		cfg.File = f
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// closeLogFile closes the --log-file handle, if one is open. It is safe to
// call more than once.
func closeLogFile() error {
	if logFileHandle == nil {
		return nil
	}
	f := logFileHandle
	logFileHandle = nil
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "closing log file %s", f.Name())
	}
	return nil
}

// currentConfig returns the loaded configuration, or the config load error
// as a user error.
func currentConfig() (*config.Config, error) {
	if configLoadErr != nil {
		return nil, errors.NewConfigError(configLoadErr)
	}
	if loadedConfig == nil {
		return config.Default(), nil
	}
	return loadedConfig, nil
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	// PersistentPostRunE is skipped when a command fails.
	defer func() { _ = closeLogFile() }()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return errors.Wrap(err, "executing root command")
	}
	return nil
}
