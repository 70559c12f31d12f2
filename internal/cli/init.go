package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/steane/internal/paths"
)

func newInitCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize steane configuration and trial store",
		Long:  "Create the configuration and data directories, then initialize the trial store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := e.dataDir()
			if err != nil {
				return sysError(fmt.Errorf("resolve data dir: %w", err))
			}

			// loadConfig already wrote a default file; record the resolved
			// data directory in it when it has none.
			if e.cfg.GetString(cfgKeyDataDir) == "" {
				cfg := defaultConfig(dataDir)
				if err := e.cfg.Unmarshal(&cfg); err != nil {
					return sysError(fmt.Errorf("read config: %w", err))
				}
				cfg.DataDir = dataDir
				if err := rewriteConfig(paths.ConfigFile(e.configDir), cfg); err != nil {
					return sysError(fmt.Errorf("write config: %w", err))
				}
			}

			store, err := e.openStore()
			if err != nil {
				return err
			}
			if err := store.Detach(); err != nil {
				return sysError(fmt.Errorf("finalize store: %w", err))
			}

			e.logger.Debug("initialized", "config_dir", e.configDir, "data_dir", dataDir)
			fmt.Fprintf(cmd.OutOrStdout(), "steane initialized\nconfig: %s\ndata:   %s\n",
				paths.ConfigFile(e.configDir), dataDir)
			return nil
		},
	}
}
