package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.ThrottleDelay)
	assert.Equal(t, 2*time.Second, cfg.MessageTimeout)
	assert.Equal(t, "180712", cfg.PaymentPassword)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("P2PDESK_API_BASE_URL", "http://localhost:9999")
	t.Setenv("P2PDESK_DEBOUNCE_DELAY", "50ms")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.APIBaseURL)
	assert.Equal(t, 50*time.Millisecond, cfg.DebounceDelay)
}

func TestLoad_ConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "p2pdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: http://file:1\nlog_level: debug\n"), 0o600))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("server", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--server", "http://flag:2"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "http://flag:2", cfg.APIBaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("P2PDESK_PAYMENT_PASSWORD=424242\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("P2PDESK_PAYMENT_PASSWORD") })

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "424242", cfg.PaymentPassword)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load("does-not-exist.yaml", nil)
	assert.Error(t, err)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("P2PDESK_REQUEST_TIMEOUT", "0s")

	_, err := Load("", nil)
	assert.ErrorContains(t, err, "request_timeout")
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
