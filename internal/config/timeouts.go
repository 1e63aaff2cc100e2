package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	ClusterCreate     time.Duration // Budget for waiting on cluster creation convergence
	ClusterInit       time.Duration // Budget for waiting on post-initialize convergence
	Delete            time.Duration // Budget for delete operations and their convergence
	WaitDelay         time.Duration // Fixed pause between convergence poll attempts
	RetryMaxAttempts  int           // Maximum number of retry attempts for transient API failures
	RetryInitialDelay time.Duration // Initial delay between such retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default is used.
//
// Environment Variables:
//   - HSMCTL_TIMEOUT_CLUSTER_CREATE (default: 20m)
//   - HSMCTL_TIMEOUT_CLUSTER_INIT (default: 10m)
//   - HSMCTL_TIMEOUT_DELETE (default: 20m)
//   - HSMCTL_WAIT_DELAY (default: 10s)
//   - HSMCTL_RETRY_MAX_ATTEMPTS (default: 5)
//   - HSMCTL_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ClusterCreate:     parseDuration("HSMCTL_TIMEOUT_CLUSTER_CREATE", 20*time.Minute),
		ClusterInit:       parseDuration("HSMCTL_TIMEOUT_CLUSTER_INIT", 10*time.Minute),
		Delete:            parseDuration("HSMCTL_TIMEOUT_DELETE", 20*time.Minute),
		WaitDelay:         parseDuration("HSMCTL_WAIT_DELAY", 10*time.Second),
		RetryMaxAttempts:  parseInt("HSMCTL_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("HSMCTL_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
