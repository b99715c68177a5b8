package cashola

import (
	"github.com/caarlos0/env/v11"

	configfile "github.com/custodia-labs/cashola/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cashola/internal/core/domain"
	"github.com/custodia-labs/cashola/internal/core/ports/driven"
	"github.com/custodia-labs/cashola/internal/logger"
)

// ConfigStore is the configuration backend interface, re-exported so
// callers can resolve settings from a config file via
// SettingsFromConfig.
type ConfigStore = driven.ConfigStore

// Config keys recognised in the config file.
const (
	keyStorageDir   = "storage.dir"
	keyIgnore       = "storage.ignore"
	keyIgnoreEnvVar = "storage.ignore_env_var"
)

// envOverrides are process-level settings read from fixed-name
// environment variables. The ignore variable is not listed here: its
// name is itself configurable, so Settings.Ignored resolves it at bind
// time.
type envOverrides struct {
	StorageDir string `env:"CASHOLA_DIR"`
}

// DefaultSettings returns the stock configuration: storage in ".cashola",
// ignore-state driven by IGNORE_CASHOLA.
func DefaultSettings() Settings {
	return domain.DefaultSettings()
}

// SettingsFromEnv returns the default settings with any CASHOLA_DIR
// override applied.
func SettingsFromEnv() Settings {
	settings := domain.DefaultSettings()

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		logger.Warn("parsing environment overrides: %v", err)
		return settings
	}
	if overrides.StorageDir != "" {
		settings.StorageDir = overrides.StorageDir
	}
	return settings
}

// SettingsFromConfig resolves settings from a config store, falling back
// to defaults for unset keys. Environment overrides are not applied; use
// SettingsFromEnv for those.
func SettingsFromConfig(cs ConfigStore) Settings {
	settings := domain.DefaultSettings()
	if cs == nil {
		return settings
	}

	if dir := cs.GetString(keyStorageDir); dir != "" {
		settings.StorageDir = dir
	}
	if name := cs.GetString(keyIgnoreEnvVar); name != "" {
		settings.IgnoreEnvVar = name
	}
	settings.Ignore = cs.GetBool(keyIgnore)
	return settings
}

// NewFileConfigStore opens the TOML config store at configDir (default
// ~/.cashola when empty).
func NewFileConfigStore(configDir string) (ConfigStore, error) {
	return configfile.NewConfigStore(configDir)
}
