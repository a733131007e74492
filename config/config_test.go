package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "gateway:\n  base_address: http://localhost:8000/api\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment.Name)
	assert.Equal(t, 8080, cfg.HTTPServer.Port)
	assert.Equal(t, "http://localhost:8000/api", cfg.Gateway.BaseAddress)
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Interpret.QuietPeriod)
	assert.Equal(t, 3, cfg.Interpret.MinLength)
	assert.Equal(t, 64, cfg.Interpret.CacheSize)
	assert.Equal(t, 5*time.Minute, cfg.Interpret.CacheTTL)
	assert.Equal(t, 8, cfg.Bulk.Concurrency)
	assert.Equal(t, 3, cfg.Refresh.MaxAttempts)
	assert.Equal(t, "primary", cfg.GoogleCalendar.CalendarID)
	assert.Equal(t, 60, cfg.GoogleCalendar.EventMinutes)
	assert.False(t, cfg.FakeRemote.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "gateway:\n  base_address: http://localhost:8000/api\n")
	t.Setenv("GATEWAY_TIMEOUT", "3s")
	t.Setenv("BULK_CONCURRENCY", "2")
	t.Setenv("HTTP_SERVER_PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, 2, cfg.Bulk.Concurrency)
	assert.Equal(t, 9090, cfg.HTTPServer.Port)
}

func TestLoadRequiresBaseAddress(t *testing.T) {
	path := writeConfig(t, "environment:\n  name: development\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrBaseAddressRequired)

	path = writeConfig(t, "fake_remote:\n  enabled: true\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.FakeRemote.Enabled)
	assert.Equal(t, "UTC", cfg.FakeRemote.Timezone)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"bad url":         "gateway:\n  base_address: not a url\n",
		"bad concurrency": "gateway:\n  base_address: http://x/api\nbulk:\n  concurrency: 0\n",
		"bad mode":        "gateway:\n  base_address: http://x/api\nhttp_server:\n  mode: fast\n",
		"bad encoding":    "gateway:\n  base_address: http://x/api\nlogger:\n  encoding: xml\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
