package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts bounds the blocking provider calls. Every value can be
// overridden from the environment.
type Timeouts struct {
	ImageLookup       time.Duration // Timeout for resolving images across all regions
	PublicIP          time.Duration // Timeout for the workstation address lookup
	StackCreate       time.Duration // Timeout for waiting on stack create/update
	StackDelete       time.Duration // Timeout for waiting on stack deletion
	StackPoll         time.Duration // Interval between stack status polls
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts reads the timeouts from the environment. Unset or invalid
// variables keep their default:
//   - K8SWAY_TIMEOUT_IMAGE_LOOKUP (default: 2m)
//   - K8SWAY_TIMEOUT_PUBLIC_IP (default: 10s)
//   - K8SWAY_TIMEOUT_STACK_CREATE (default: 45m)
//   - K8SWAY_TIMEOUT_STACK_DELETE (default: 30m)
//   - K8SWAY_STACK_POLL_INTERVAL (default: 10s)
//   - K8SWAY_RETRY_MAX_ATTEMPTS (default: 5)
//   - K8SWAY_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ImageLookup:       parseDuration("K8SWAY_TIMEOUT_IMAGE_LOOKUP", 2*time.Minute),
		PublicIP:          parseDuration("K8SWAY_TIMEOUT_PUBLIC_IP", 10*time.Second),
		StackCreate:       parseDuration("K8SWAY_TIMEOUT_STACK_CREATE", 45*time.Minute),
		StackDelete:       parseDuration("K8SWAY_TIMEOUT_STACK_DELETE", 30*time.Minute),
		StackPoll:         parseDuration("K8SWAY_STACK_POLL_INTERVAL", 10*time.Second),
		RetryMaxAttempts:  parseInt("K8SWAY_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("K8SWAY_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	return envOr(envVar, defaultVal, time.ParseDuration)
}

func parseInt(envVar string, defaultVal int) int {
	return envOr(envVar, defaultVal, strconv.Atoi)
}

// envOr parses the environment variable envVar, falling back to defaultVal
// when it is unset or does not parse.
func envOr[T any](envVar string, defaultVal T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(envVar)
	if !ok || raw == "" {
		return defaultVal
	}
	v, err := parse(raw)
	if err != nil {
		return defaultVal
	}
	return v
}
