package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestjam/yap-sequencer/internal/config/environment"
)

func TestFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want func(Config) Config
	}{
		{
			name: "args contain only app name",
			args: []string{"app.exe"},
			want: func(c Config) Config { return c },
		},
		{
			name: "args contain server address",
			args: []string{"app.exe", "-a", ":8000"},
			want: func(c Config) Config {
				c.ServerAddress = ":8000"
				return c
			},
		},
		{
			name: "args contain https and trusted subnet",
			args: []string{"app.exe", "-s", "-t=10.0.0.0/8"},
			want: func(c Config) Config {
				c.EnableHTTPS = true
				c.TrustedSubnet = "10.0.0.0/8"
				return c
			},
		},
		{
			name: "args contain take limit and alphabet",
			args: []string{"app.exe", "-n", "50", "-alphabet", "01"},
			want: func(c Config) Config {
				c.TakeMaxCount = 50
				c.DefaultSymbols = "01"
				return c
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().FromArgs(tt.args)
			assert.Equal(t, tt.want(New()), got)
		})
	}

	t.Run("failed to parse args", func(t *testing.T) {
		args := []string{"app.exe", "-n=abc"}

		assert.Panics(t, func() { _ = New().FromArgs(args) })
	})
}

func TestFromEnv(t *testing.T) {
	env := environment.Map{
		"SERVER_ADDRESS":   ":9000",
		"GRPC_ADDRESS":     ":9001",
		"DATABASE_DSN":     "postgres://localhost/db",
		"ENABLE_HTTPS":     "true",
		"LOG_LEVEL":        "debug",
		"TAKE_MAX_COUNT":   "5",
		"DEFAULT_ALPHABET": "abc",
	}

	got := New().FromEnv(env)

	assert.Equal(t, ":9000", got.ServerAddress)
	assert.Equal(t, ":9001", got.GRPCAddress)
	assert.Equal(t, "postgres://localhost/db", got.DataSourceName)
	assert.True(t, got.EnableHTTPS)
	assert.Equal(t, "debug", got.LogLevel)
	assert.Equal(t, 5, got.TakeMaxCount)
	assert.Equal(t, "abc", got.DefaultSymbols)

	t.Run("invalid values are ignored", func(t *testing.T) {
		got := New().FromEnv(environment.Map{"ENABLE_HTTPS": "maybe", "TAKE_MAX_COUNT": "many"})

		assert.Equal(t, New(), got)
	})
}

func TestLoad(t *testing.T) {
	const data = `
server_address: ":7000"
grpc_address: ":7001"
log_level: warn
take_max_count: 20
`
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(data), 0o600))

	t.Run("file is overridden by args and env", func(t *testing.T) {
		args := []string{"app.exe", "-c", file, "-g", ":8001"}
		env := environment.Map{"LOG_LEVEL": "error"}

		got, err := Load(args, env)

		require.NoError(t, err)
		assert.Equal(t, ":7000", got.ServerAddress)
		assert.Equal(t, ":8001", got.GRPCAddress)
		assert.Equal(t, "error", got.LogLevel)
		assert.Equal(t, 20, got.TakeMaxCount)
		assert.Equal(t, defaultSecretKey, got.SecretKey)
	})

	t.Run("config file from env", func(t *testing.T) {
		got, err := Load([]string{"app.exe"}, environment.Map{"CONFIG": file})

		require.NoError(t, err)
		assert.Equal(t, "warn", got.LogLevel)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := Load([]string{"app.exe", "-config", filepath.Join(t.TempDir(), "missing.yaml")}, environment.Map{})

		assert.Error(t, err)
	})

	t.Run("invalid config file", func(t *testing.T) {
		invalid := filepath.Join(t.TempDir(), "invalid.yaml")
		require.NoError(t, os.WriteFile(invalid, []byte("take_max_count: [1"), 0o600))

		_, err := Load([]string{"app.exe", "-c", invalid}, environment.Map{})

		assert.Error(t, err)
	})
}
