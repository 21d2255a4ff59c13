package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/u8slvn/otp-76/internal/config"
	"github.com/u8slvn/otp-76/internal/parse"
)

func TestLoadSave_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Defaults()
	cfg.Generation.Pads = 3
	cfg.Generation.Keys = 7
	cfg.Storage.Encrypt = true
	cfg.Output.Verbose = true

	require.NoError(t, config.Save(cfg, path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefaults(t *testing.T) {
	t.Parallel()
	cfg := config.Defaults()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "~/.otp76", cfg.Home)
	assert.Equal(t, 10, cfg.Generation.Pads)
	assert.Equal(t, 20, cfg.Generation.Keys)
	assert.Equal(t, "pads.json", cfg.Storage.File)
	assert.False(t, cfg.Storage.Encrypt)
	assert.Equal(t, "auto", cfg.Output.DefaultFormat)
	assert.Equal(t, "error", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generation:\n  pads: 5\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Generation.Pads)
	assert.Equal(t, config.DefaultKeys, cfg.Generation.Keys)
	assert.Equal(t, config.DefaultPadsFile, cfg.Storage.File)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generation: [not, a, map"), 0o600))
	_, err = config.Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{name: "zero pads", mutate: func(c *config.Config) { c.Generation.Pads = 0 }, wantErr: parse.ErrZeroNotAllowed},
		{name: "too many keys", mutate: func(c *config.Config) { c.Generation.Keys = 101 }, wantErr: parse.ErrOutOfRange},
		{name: "huge pads", mutate: func(c *config.Config) { c.Generation.Pads = 5000 }, wantErr: parse.ErrTooLarge},
		{name: "empty file", mutate: func(c *config.Config) { c.Storage.File = " " }, wantErr: config.ErrEmptyValue},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Defaults()
			tc.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tc.wantErr)
		})
	}
}

func TestPadsFile(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.Home = "/var/lib/otp76"
	assert.Equal(t, "/var/lib/otp76/pads.json", cfg.PadsFile())

	cfg.Storage.File = "/tmp/other.json"
	assert.Equal(t, "/tmp/other.json", cfg.PadsFile())
}

func TestPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, filepath.Join("/home/user/.otp76", "config.yaml"), config.Path("/home/user/.otp76"))
	assert.NotEmpty(t, config.DefaultHome())
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/abs/path", config.ExpandPath("/abs/path"))
	assert.Equal(t, "relative", config.ExpandPath("relative"))

	home, err := os.UserHomeDir()
	if err == nil {
		assert.Equal(t, filepath.Join(home, "x.log"), config.ExpandPath("~/x.log"))
	}
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv(config.EnvHome, "/custom/home")
	t.Setenv(config.EnvPadsFile, "  vault.json ")
	t.Setenv(config.EnvOutputFormat, "JSON")
	t.Setenv(config.EnvVerbose, "yes")
	t.Setenv(config.EnvLogLevel, "DEBUG")
	t.Setenv(config.EnvNoColor, "")

	cfg := config.Defaults()
	config.ApplyEnvironment(cfg)

	assert.Equal(t, "/custom/home", cfg.Home)
	assert.Equal(t, "vault.json", cfg.Storage.File)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.True(t, cfg.Output.Verbose)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestApplyEnvironment_VerboseValues(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"1", true},
		{"true", true},
		{"ON", true},
		{"0", false},
		{"no", false},
		{"garbage", false},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv(config.EnvVerbose, tc.value)
			cfg := config.Defaults()
			config.ApplyEnvironment(cfg)
			assert.Equal(t, tc.expected, cfg.Output.Verbose)
		})
	}
}
