// Package cli implements the steane command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/steane/internal/logging"
	"github.com/mesh-intelligence/steane/internal/paths"
	"github.com/mesh-intelligence/steane/internal/sqlite"
	"github.com/mesh-intelligence/steane/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitErr carries the exit code a command failure maps to.
type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string { return e.err.Error() }
func (e *exitErr) Unwrap() error { return e.err }

func userError(err error) error { return &exitErr{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitErr{code: exitSysError, err: err} }

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// env is the state shared by subcommands once the root command has loaded
// the configuration.
type env struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "steane" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:   "steane",
		Short: "Flagged lookup-table decoding for the Steane code",
		Long: "steane decodes Steane-code syndrome histories with the lookup-table\n" +
			"sequential decoder and checks recorded fault-tolerance trials.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&e.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/steane)")
	root.PersistentFlags().StringVar(&e.flags.dataDir, "data-dir", "", "data directory (default: .steane-db)")
	root.PersistentFlags().BoolVar(&e.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&e.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(e))
	root.AddCommand(newLotCmd(e))
	root.AddCommand(newClassicalCmd(e))
	root.AddCommand(newVectorizeCmd(e))
	root.AddCommand(newDecodeCmd(e))
	root.AddCommand(newEvaluateCmd(e))
	root.AddCommand(newOutcomesCmd(e))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		code := exitUserError
		var ee *exitErr
		if errors.As(err, &ee) {
			code = ee.code
		}
		os.Exit(code)
	}
	os.Exit(exitSuccess)
}

// load resolves the config directory, reads config.yaml and builds the
// logger. The --log-level flag wins over the config value.
func (e *env) load(stderr io.Writer) error {
	dir, err := paths.ResolveConfigDir(e.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		return sysError(err)
	}
	e.configDir = dir
	e.cfg = cfg

	level := cfg.GetString(cfgKeyLogLevel)
	if e.flags.logLevel != "" {
		level = e.flags.logLevel
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return userError(err)
	}
	e.logger = logging.New(logging.Config{
		Level:   lvl,
		JSON:    cfg.GetBool(cfgKeyLogJSON),
		Service: "steane",
		Output:  stderr,
	})
	return nil
}

// dataDir resolves the trial store directory: flag, then config.yaml, then
// STEANE_DATA_DIR, then the CWD default.
func (e *env) dataDir() (string, error) {
	return paths.ResolveDataDir(e.flags.dataDir, e.cfg.GetString(cfgKeyDataDir))
}

// openStore attaches the trial store. The caller must Detach it.
func (e *env) openStore() (*sqlite.Backend, error) {
	dir, err := e.dataDir()
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	store := sqlite.NewBackend()
	cfg := types.Config{Backend: e.cfg.GetString(cfgKeyBackend), DataDir: dir}
	if err := store.Attach(cfg); err != nil {
		return nil, sysError(fmt.Errorf("attach store: %w", err))
	}
	return store, nil
}
