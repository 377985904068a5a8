package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/todomvc-e2e/pkg/todomvc"
)

// isolate points the config file at an empty temp dir so a developer's
// todoe2e.yml never leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	t.Setenv(EnvPrefix+"_CONFIG", path)
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, todomvc.DefaultURL, cfg.BaseURL)
	assert.Equal(t, DriverRod, cfg.Driver)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Words)
	assert.Equal(t, 1, cfg.Parallel)
	assert.False(t, cfg.Fixture)
}

func TestLoad_Precedence(t *testing.T) {
	path := isolate(t)

	fileCfg := Default()
	fileCfg.Driver = DriverPlaywright
	fileCfg.Words = 5
	fileCfg.Timeout = 10 * time.Second
	require.NoError(t, Write(path, &fileCfg))

	t.Setenv("TODOE2E_WORDS", "6")
	t.Setenv("TODOE2E_HEADLESS", "false")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("words", 3, "")
	fs.String("base-url", "", "")
	require.NoError(t, fs.Parse([]string{"--words", "7"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, DriverPlaywright, cfg.Driver, "from file")
	assert.Equal(t, 10*time.Second, cfg.Timeout, "from file")
	assert.False(t, cfg.Headless, "env beats default")
	assert.Equal(t, 7, cfg.Words, "flag beats env and file")
}

func TestLoad_InvalidDriver(t *testing.T) {
	isolate(t)
	t.Setenv("TODOE2E_DRIVER", "selenium")

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selenium")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"playwright", func(c *Config) { c.Driver = DriverPlaywright }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, false},
		{"negative slow motion", func(c *Config) { c.SlowMotion = -time.Millisecond }, false},
		{"zero words", func(c *Config) { c.Words = 0 }, false},
		{"zero parallel", func(c *Config) { c.Parallel = 0 }, false},
		{"empty url", func(c *Config) { c.BaseURL = "" }, false},
		{"empty url with fixture", func(c *Config) { c.BaseURL = ""; c.Fixture = true }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
