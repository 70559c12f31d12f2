package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/steane/internal/paths"
	"github.com/mesh-intelligence/steane/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// envPrefix namespaces environment overrides, e.g. STEANE_WORKERS.
	envPrefix = "STEANE"
)

// Config keys.
const (
	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyLogLevel = "log_level"
	cfgKeyLogJSON  = "log_json"
	cfgKeyWorkers  = "workers"
	cfgKeyFinalize = "finalize"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend" mapstructure:"backend"`
	DataDir  string `yaml:"data_dir,omitempty" mapstructure:"data_dir"`
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	LogJSON  bool   `yaml:"log_json" mapstructure:"log_json"`
	Workers  int    `yaml:"workers" mapstructure:"workers"`
	Finalize bool   `yaml:"finalize" mapstructure:"finalize"`
}

// defaultConfig is written to config.yaml on first run.
func defaultConfig(dataDir string) configFile {
	return configFile{
		Backend:  types.BackendSQLite,
		DataDir:  dataDir,
		LogLevel: "info",
		Workers:  4,
	}
}

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run. log_level, log_json, workers
// and finalize can be overridden with STEANE_* environment variables;
// data_dir is resolved separately so that --data-dir and config.yaml keep
// precedence over STEANE_DATA_DIR.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := writeConfigIfMissing(paths.ConfigFile(configDir), defaultConfig("")); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	def := defaultConfig("")
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyWorkers, def.Workers)
	v.SetDefault(cfgKeyFinalize, def.Finalize)
	v.SetDefault(cfgKeyLogJSON, def.LogJSON)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyLogLevel, cfgKeyLogJSON, cfgKeyWorkers, cfgKeyFinalize} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates path with cfg if the file does not exist.
// An existing file is left untouched.
func writeConfigIfMissing(path string, cfg configFile) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return rewriteConfig(path, cfg)
}

// rewriteConfig writes cfg to path, replacing any existing file.
func rewriteConfig(path string, cfg configFile) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# steane configuration\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
