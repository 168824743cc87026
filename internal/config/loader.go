package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding settings
// (ex: ISASPLIT_WORKERS)
const EnvPrefix = "ISASPLIT"

// Load returns the default configuration, overridden by the YAML file at
// path (if not empty) and then by the environment
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key, which AutomaticEnv needs to pick up
// environment overrides during Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("compression_level", cfg.CompressionLevel)
	v.SetDefault("error_log", cfg.ErrorLog)
	v.SetDefault("manifest", cfg.Manifest)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("single_envelope_entry", cfg.SingleEnvelopeEntry)
}
