// Package config loads tool configuration with the usual precedence:
// command-line flags, then PYENVSYNC_* environment variables, then the
// config file, then built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved tool configuration.
type Config struct {
	ScanPaths       []string          `mapstructure:"scan_paths"`
	LocalPackages   []string          `mapstructure:"local_packages"`
	ExtraStdlib     []string          `mapstructure:"extra_stdlib"`
	Mappings        map[string]string `mapstructure:"mappings"`
	MappingsFile    string            `mapstructure:"mappings_file"`
	CriticalTokens  []string          `mapstructure:"critical_tokens"`
	SecondaryTokens []string          `mapstructure:"secondary_tokens"`
	VersionEquality string            `mapstructure:"version_equality"`
	PackageManager  string            `mapstructure:"package_manager"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scan_paths", []string{"scripts", "src"})
	v.SetDefault("local_packages", []string{})
	v.SetDefault("extra_stdlib", []string{})
	v.SetDefault("version_equality", "exact")
	v.SetDefault("package_manager", "auto")
}

// Load reads configuration into the given viper instance. Flags should
// already be bound by the caller. cfgFile overrides the default config file
// lookup (.py-env-sync.yaml in the working directory); an explicitly named
// file must exist, the default one may be absent.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("PYENVSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(".py-env-sync")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.VersionEquality {
	case "exact", "lenient":
	default:
		return fmt.Errorf("invalid version_equality %q (supported: exact, lenient)", c.VersionEquality)
	}
	switch c.PackageManager {
	case "auto", "uv", "pip":
	default:
		return fmt.Errorf("invalid package_manager %q (supported: auto, uv, pip)", c.PackageManager)
	}
	return nil
}
