package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	ImageWait    time.Duration // Default wait_timeout for image waits
	PollInterval time.Duration // Fixed delay between image status lookups
	Request      time.Duration // Timeout for a single API request
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - HCLOUD_TIMEOUT_IMAGE_WAIT (default: 5m)
//   - HCLOUD_POLL_INTERVAL (default: 2s)
//   - HCLOUD_TIMEOUT_REQUEST (default: 60s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ImageWait:    parseDuration("HCLOUD_TIMEOUT_IMAGE_WAIT", 5*time.Minute),
		PollInterval: parseDuration("HCLOUD_POLL_INTERVAL", 2*time.Second),
		Request:      parseDuration("HCLOUD_TIMEOUT_REQUEST", 60*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// Bare integers are read as seconds. If the variable is not set or parsing
// fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}
