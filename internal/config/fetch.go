package config

import (
	"os"
	"strconv"
	"time"
)

// FetchSettings tunes retries against remote module sources.
type FetchSettings struct {
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
	RetryMaxDelay     time.Duration
}

// LoadFetchSettings loads fetch tuning from environment variables.
// Unset or invalid values fall back to the defaults.
//
// Environment Variables:
//   - ASYNCMOD_FETCH_RETRY_MAX_ATTEMPTS (default: 3)
//   - ASYNCMOD_FETCH_RETRY_INITIAL_DELAY (default: 200ms)
//   - ASYNCMOD_FETCH_RETRY_MAX_DELAY (default: 5s)
func LoadFetchSettings() *FetchSettings {
	return &FetchSettings{
		RetryMaxAttempts:  parseInt("ASYNCMOD_FETCH_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: parseDuration("ASYNCMOD_FETCH_RETRY_INITIAL_DELAY", 200*time.Millisecond),
		RetryMaxDelay:     parseDuration("ASYNCMOD_FETCH_RETRY_MAX_DELAY", 5*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 1 {
		return defaultVal
	}
	return n
}
