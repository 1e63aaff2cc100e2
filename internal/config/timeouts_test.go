package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	timeouts := LoadTimeouts()

	assert.Equal(t, 20*time.Minute, timeouts.ClusterCreate)
	assert.Equal(t, 10*time.Minute, timeouts.ClusterInit)
	assert.Equal(t, 20*time.Minute, timeouts.Delete)
	assert.Equal(t, 10*time.Second, timeouts.WaitDelay)
	assert.Equal(t, 5, timeouts.RetryMaxAttempts)
	assert.Equal(t, 1*time.Second, timeouts.RetryInitialDelay)
}

func TestLoadTimeouts_FromEnvironment(t *testing.T) {
	t.Setenv("HSMCTL_TIMEOUT_CLUSTER_CREATE", "45m")
	t.Setenv("HSMCTL_WAIT_DELAY", "2s")
	t.Setenv("HSMCTL_RETRY_MAX_ATTEMPTS", "10")

	timeouts := LoadTimeouts()

	assert.Equal(t, 45*time.Minute, timeouts.ClusterCreate)
	assert.Equal(t, 2*time.Second, timeouts.WaitDelay)
	assert.Equal(t, 10, timeouts.RetryMaxAttempts)
	// Untouched values keep their defaults.
	assert.Equal(t, 10*time.Minute, timeouts.ClusterInit)
}

func TestLoadTimeouts_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("HSMCTL_TIMEOUT_CLUSTER_CREATE", "not-a-duration")
	t.Setenv("HSMCTL_RETRY_MAX_ATTEMPTS", "many")

	timeouts := LoadTimeouts()

	assert.Equal(t, 20*time.Minute, timeouts.ClusterCreate)
	assert.Equal(t, 5, timeouts.RetryMaxAttempts)
}
