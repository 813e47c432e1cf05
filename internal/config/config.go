// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Connection defaults
const (
	DefaultSplunkPort   = 8089
	DefaultSplunkScheme = "https"
)

// Job and result defaults
const (
	DefaultJobPollInitialMs = 250
	DefaultJobPollMaxMs     = 2000
	DefaultJobCacheMaxItems = 32
)

// Config holds all configuration for the MCP server.
type Config struct {
	// Splunk connection used for auto-connect at startup
	SplunkHost               string        // SPLUNK_HOST, default "" (no auto-connect)
	SplunkPort               int           // SPLUNK_PORT, default 8089
	SplunkUsername           string        // SPLUNK_USERNAME
	SplunkPassword           string        // SPLUNK_PASSWORD
	SplunkScheme             string        // SPLUNK_SCHEME, default "https"
	SplunkInsecureSkipVerify bool          // SPLUNK_INSECURE_SKIP_VERIFY, default false
	SplunkAutoConnect        bool          // SPLUNK_AUTOCONNECT, default true
	HTTPClientTimeout        time.Duration // SPLUNK_HTTP_TIMEOUT_MS, default 0 (none)

	// Search job handling
	JobPollInitial   time.Duration // JOB_POLL_INITIAL_MS, default 250ms
	JobPollMax       time.Duration // JOB_POLL_MAX_MS, default 2000ms
	JobTimeout       time.Duration // JOB_TIMEOUT_MS, default 0 (wait until cancelled)
	JobCacheMaxItems int           // JOB_CACHE_MAX_ITEMS, default 32

	// Result shaping
	ResultMaxStringLen int // RESULT_MAX_STRING_LEN, default 0 (no truncation)

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		SplunkHost:               getEnvString("SPLUNK_HOST", ""),
		SplunkPort:               getEnvInt("SPLUNK_PORT", DefaultSplunkPort),
		SplunkUsername:           getEnvString("SPLUNK_USERNAME", ""),
		SplunkPassword:           getEnvString("SPLUNK_PASSWORD", ""),
		SplunkScheme:             getEnvString("SPLUNK_SCHEME", DefaultSplunkScheme),
		SplunkInsecureSkipVerify: getEnvBool("SPLUNK_INSECURE_SKIP_VERIFY", false),
		SplunkAutoConnect:        getEnvBool("SPLUNK_AUTOCONNECT", true),
		HTTPClientTimeout:        getEnvDurationMs("SPLUNK_HTTP_TIMEOUT_MS", 0),

		JobPollInitial:   getEnvDurationMs("JOB_POLL_INITIAL_MS", DefaultJobPollInitialMs),
		JobPollMax:       getEnvDurationMs("JOB_POLL_MAX_MS", DefaultJobPollMaxMs),
		JobTimeout:       getEnvDurationMs("JOB_TIMEOUT_MS", 0),
		JobCacheMaxItems: getEnvInt("JOB_CACHE_MAX_ITEMS", DefaultJobCacheMaxItems),

		ResultMaxStringLen: getEnvInt("RESULT_MAX_STRING_LEN", 0),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// HasCredentials reports whether enough connection settings are present to
// connect at startup.
func (c *Config) HasCredentials() bool {
	return c.SplunkHost != "" && c.SplunkUsername != "" && c.SplunkPassword != ""
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
