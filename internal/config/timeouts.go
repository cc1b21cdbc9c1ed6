package config

import (
	"os"
	"time"
)

// Timeouts holds all configurable timing values. Each can be customized
// via an environment variable for slow environments.
type Timeouts struct {
	ReadyInterval  time.Duration // Poll interval for readiness checks
	ReadyMaxWait   time.Duration // Budget for a single readiness wait
	ReleaseInstall time.Duration // Timeout for a chart install/upgrade
	ClusterProbe   time.Duration // Budget for control-plane reachability
}

// LoadTimeouts loads timeout configuration from environment variables.
// If a variable is unset or invalid, the default is used.
//
// Environment variables:
//   - LAKEUP_READY_INTERVAL (default: 5s)
//   - LAKEUP_READY_MAX_WAIT (default: 10m)
//   - LAKEUP_RELEASE_INSTALL_TIMEOUT (default: 10m)
//   - LAKEUP_CLUSTER_PROBE_TIMEOUT (default: 2m)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ReadyInterval:  parseDuration("LAKEUP_READY_INTERVAL", 5*time.Second),
		ReadyMaxWait:   parseDuration("LAKEUP_READY_MAX_WAIT", 10*time.Minute),
		ReleaseInstall: parseDuration("LAKEUP_RELEASE_INSTALL_TIMEOUT", 10*time.Minute),
		ClusterProbe:   parseDuration("LAKEUP_CLUSTER_PROBE_TIMEOUT", 2*time.Minute),
	}
}

// parseDuration parses a duration from an environment variable.
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
