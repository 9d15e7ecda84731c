package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix = "ROOMRELAY"
	// envConfigDir points at the directory holding roomrelay.yaml when --config is not given.
	envConfigDir = envPrefix + "_CONFIG_DIR"
	configName   = "roomrelay.yaml"
)

// settings lists every config key with its default value.
func settings(cfg Config) map[string]any {
	return map[string]any{
		"addr":                cfg.Addr,
		"read_header_timeout": cfg.ReadHeaderTimeout,
		"shutdown_timeout":    cfg.ShutdownTimeout,
		"log_level":           cfg.LogLevel,
		"static_dir":          cfg.StaticDir,
		"max_message_bytes":   cfg.MaxMessageBytes,
		"client_buffer":       cfg.ClientBuffer,
	}
}

// Load resolves the configuration and the file it came from.
// Precedence: defaults < config file < ROOMRELAY_* env vars. CLI flags are
// applied by the caller through UpdateFrom. A missing file is created with
// the defaults.
func Load(logger *zerolog.Logger, explicitPath string) (Config, string, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	cfg := Default()
	v := newViper(cfg)
	path := configPath(explicitPath)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if !missing(err) {
			return cfg, path, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := bootstrap(v, path, cfg); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("default config not written, using built-in defaults")
		} else {
			logger.Info().Str("path", path).Msg("created default config")
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, path, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, path, nil
}

func newViper(cfg Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range settings(cfg) {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func missing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// bootstrap writes cfg as YAML to path and loads it back into v.
func bootstrap(v *viper.Viper, path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	return v.ReadInConfig()
}

func configPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	if dir := os.Getenv(envConfigDir); dir != "" {
		return filepath.Join(dir, configName)
	}
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, configName)
	}
	return configName
}
