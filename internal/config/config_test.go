package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SPLUNK_HOST", "SPLUNK_PORT", "SPLUNK_SCHEME", "JOB_TIMEOUT_MS", "LOG_LEVEL", "SPLUNK_AUTOCONNECT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 8089, cfg.SplunkPort)
	assert.Equal(t, "https", cfg.SplunkScheme)
	assert.True(t, cfg.SplunkAutoConnect)
	assert.Equal(t, 250*time.Millisecond, cfg.JobPollInitial)
	assert.Equal(t, 2*time.Second, cfg.JobPollMax)
	assert.Zero(t, cfg.JobTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.HasCredentials())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SPLUNK_HOST", "splunk.example.com")
	t.Setenv("SPLUNK_PORT", "18089")
	t.Setenv("SPLUNK_USERNAME", "svc_mcp")
	t.Setenv("SPLUNK_PASSWORD", "s3cret")
	t.Setenv("SPLUNK_SCHEME", "http")
	t.Setenv("SPLUNK_INSECURE_SKIP_VERIFY", "yes")
	t.Setenv("SPLUNK_AUTOCONNECT", "off")
	t.Setenv("JOB_TIMEOUT_MS", "60000")

	cfg := Load()

	assert.Equal(t, "splunk.example.com", cfg.SplunkHost)
	assert.Equal(t, 18089, cfg.SplunkPort)
	assert.Equal(t, "http", cfg.SplunkScheme)
	assert.True(t, cfg.SplunkInsecureSkipVerify)
	assert.False(t, cfg.SplunkAutoConnect)
	assert.Equal(t, time.Minute, cfg.JobTimeout)
	assert.True(t, cfg.HasCredentials())
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("JOB_CACHE_MAX_ITEMS", "lots")
	assert.Equal(t, DefaultJobCacheMaxItems, Load().JobCacheMaxItems)
}
