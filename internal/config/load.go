package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/horizon/internal/errors"
)

// newViperInstance creates a new Viper instance with standard Horizon
// configuration: environment variable prefix (HORIZON_), key replacer,
// and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("HORIZON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file
// not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (HORIZON_* prefix)
//  2. Global config (~/.horizon/config.yaml)
//  3. Built-in defaults
//
// For CLI flag overrides, use LoadWithOverrides instead.
//
// The function returns an error only for actual configuration problems,
// not for a missing config file (expected on first run).
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("home", cfg.Home).
		Bool("autosave.enabled", cfg.Autosave.Enabled).
		Dur("autosave.delay", cfg.Autosave.Delay).
		Str("log.level", cfg.Log.Level).
		Msg("configuration loaded")

	return cfg, nil
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero values in overrides are applied, allowing partial
// overrides; bool fields cannot be overridden here because false is
// indistinguishable from unset (the CLI handles those flags explicitly).
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path for testing.
func LoadFromPath(_ context.Context, configPath string) (*Config, error) {
	v := newViperInstance()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read config: %s", configPath)
		}
	}

	return unmarshalAndValidate(v)
}

// loadGlobalConfig attempts to load the global config file
// (~/.horizon/config.yaml). Returns nil if the file doesn't exist or the
// home directory cannot be determined.
func loadGlobalConfig(v *viper.Viper) error {
	globalConfigPath, err := GlobalConfigPath()
	if err != nil {
		// Home dir unavailable, run on defaults.
		return nil
	}
	if _, err := os.Stat(globalConfigPath); err != nil {
		return nil
	}

	v.SetConfigFile(globalConfigPath)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

func applyOverrides(cfg, overrides *Config) {
	if overrides.Home != "" {
		cfg.Home = overrides.Home
	}
	if overrides.Color != "" {
		cfg.Color = overrides.Color
	}
	if overrides.Autosave.Delay != 0 {
		cfg.Autosave.Delay = overrides.Autosave.Delay
	}
	if overrides.Log.Level != "" {
		cfg.Log.Level = overrides.Log.Level
	}
	if overrides.Log.MaxSizeMB != 0 {
		cfg.Log.MaxSizeMB = overrides.Log.MaxSizeMB
	}
	if overrides.Log.MaxBackups != 0 {
		cfg.Log.MaxBackups = overrides.Log.MaxBackups
	}
	if overrides.Log.MaxAgeDays != 0 {
		cfg.Log.MaxAgeDays = overrides.Log.MaxAgeDays
	}
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the YAML tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("home", defaults.Home)
	v.SetDefault("color", defaults.Color)

	v.SetDefault("autosave.enabled", defaults.Autosave.Enabled)
	v.SetDefault("autosave.delay", defaults.Autosave.Delay)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	v.SetDefault("log.max_age_days", defaults.Log.MaxAgeDays)
}

// viperDecoderOption returns the decoder option used for every unmarshal,
// so duration strings like "1s" decode into time.Duration fields.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
