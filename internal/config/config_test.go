package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "gemini-pro", cfg.GeminiModel)
	require.Equal(t, "https://generativelanguage.googleapis.com", cfg.GeminiBaseURL)
	require.Equal(t, TransportREST, cfg.GeminiTransport)
	require.Zero(t, cfg.UpstreamTimeout)
	require.False(t, cfg.BreakerEnabled)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_TRANSPORT", "SDK")
	t.Setenv("GEMINI_BASE_URL", "http://localhost:9999/")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("BREAKER_ENABLED", "true")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	require.Equal(t, "secret", cfg.GeminiAPIKey)
	require.Equal(t, TransportSDK, cfg.GeminiTransport)
	require.Equal(t, "http://localhost:9999", cfg.GeminiBaseURL)
	require.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	require.True(t, cfg.BreakerEnabled)
}

func TestLoadFromFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\ngemini_model: gemini-1.5-flash\nlog_level: debug\n"), 0o600))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("port", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "7000"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	require.Equal(t, "7000", cfg.Port)
	require.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	t.Setenv("GEMINI_TRANSPORT", "grpc")

	_, err := Load("", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "gemini_transport")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "error reading config file")
}
