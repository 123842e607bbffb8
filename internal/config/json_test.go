package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempJSON(t, `{
		"server": {"base_url": "http://10.0.0.5:5000", "request_timeout": "15s", "connect_timeout": "3s"},
		"probe": {"path": "/api/health", "interval": "7s", "timeout": "1s"},
		"cache": {"max_entries": 256, "hot_entries": 64},
		"outbox": {"max_retries": 2, "drain_batch": 5},
		"storage": {"db": {"dsn": "sync.db"}}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:5000", cfg.Server.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 7*time.Second, cfg.Probe.Interval)
	assert.Equal(t, 256, cfg.Cache.MaxEntries)
	assert.Equal(t, 2, cfg.Outbox.MaxRetries)
	assert.Equal(t, "sync.db", cfg.Storage.DB.DSN)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	// raw numbers are interpreted as nanoseconds, matching time.Duration
	path := writeTempJSON(t, `{"server": {"request_timeout": 8000000000}}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 8*time.Second, cfg.Server.RequestTimeout)
}

func TestParseJSON_MissingFile_ReturnsError(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestParseJSON_MalformedJSON_ReturnsError(t *testing.T) {
	path := writeTempJSON(t, `{"server": `)

	_, err := parseJSON(path)
	assert.Error(t, err)
}
