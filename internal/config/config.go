// Package config provides configuration for suite runs using Viper.
//
// Precedence: CLI flags > TODOE2E_* environment variables > todoe2e.yml in
// the working directory > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thesyncim/todomvc-e2e/pkg/todomvc"
)

// EnvPrefix prefixes every environment variable, e.g. TODOE2E_BASE_URL.
const EnvPrefix = "TODOE2E"

// FileName is the project-local config file.
const FileName = "todoe2e.yml"

// Supported browser drivers.
const (
	DriverRod        = "rod"
	DriverPlaywright = "playwright"
)

// Config holds all configuration for a suite run.
type Config struct {
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url"`
	Driver      string        `mapstructure:"driver" yaml:"driver"`
	Headless    bool          `mapstructure:"headless" yaml:"headless"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	SlowMotion  time.Duration `mapstructure:"slow_motion" yaml:"slow_motion"`
	Screenshots string        `mapstructure:"screenshots" yaml:"screenshots"`
	LogLevel    string        `mapstructure:"log_level" yaml:"log_level"`
	Words       int           `mapstructure:"words" yaml:"words"`
	Seed        uint64        `mapstructure:"seed" yaml:"seed"`
	Parallel    int           `mapstructure:"parallel" yaml:"parallel"`
	Fixture     bool          `mapstructure:"fixture" yaml:"fixture"`
}

var keys = []string{
	"base_url", "driver", "headless", "timeout", "slow_motion", "screenshots",
	"log_level", "words", "seed", "parallel", "fixture",
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		BaseURL:     todomvc.DefaultURL,
		Driver:      DriverRod,
		Headless:    true,
		Timeout:     30 * time.Second,
		Screenshots: "test-results/screenshots",
		LogLevel:    "info",
		Words:       3,
		Parallel:    1,
	}
}

// Load resolves the configuration. fs may be nil; flags it defines are bound
// by their key name with '_' spelled '-' (e.g. --base-url).
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("driver", def.Driver)
	v.SetDefault("headless", def.Headless)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("slow_motion", def.SlowMotion)
	v.SetDefault("screenshots", def.Screenshots)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("words", def.Words)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("parallel", def.Parallel)
	v.SetDefault("fixture", def.Fixture)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", k, err)
		}
	}

	if fs != nil {
		for _, k := range keys {
			if f := fs.Lookup(strings.ReplaceAll(k, "_", "-")); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return nil, fmt.Errorf("binding %s flag: %w", k, err)
				}
			}
		}
	}

	if path := Path(); fileExists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverRod, DriverPlaywright:
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", c.Driver, DriverRod, DriverPlaywright)
	}
	if c.BaseURL == "" && !c.Fixture {
		return errors.New("base_url is empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.SlowMotion < 0 {
		return fmt.Errorf("slow_motion must not be negative, got %s", c.SlowMotion)
	}
	if c.Words <= 0 {
		return fmt.Errorf("words must be positive, got %d", c.Words)
	}
	if c.Parallel <= 0 {
		return fmt.Errorf("parallel must be positive, got %d", c.Parallel)
	}
	return nil
}

// Path returns the project-local config path. TODOE2E_CONFIG overrides it.
func Path() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return FileName
}

// Write stores cfg as YAML at path.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
