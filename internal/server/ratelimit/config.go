package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
// perMinute is the default per-client limit when RATE_LIMIT_DEFAULT_LIMIT is unset.
func LoadConfig(perMinute int) *Config {
	return loadConfig(os.Getenv, perMinute)
}

func loadConfig(getenv func(string) string, perMinute int) *Config {
	if !getEnvBool(getenv, "RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}
	if perMinute <= 0 {
		perMinute = 60
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt(getenv, "RATE_LIMIT_DEFAULT_LIMIT", perMinute),
		DefaultWindow:   getEnvDuration(getenv, "RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration(getenv, "RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Outbound fan-out and model calls
		{Path: "/jobs", Method: "GET", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/generate/", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},

		// Writes
		{Path: "/sessions", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/resume", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/applications", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/applications/", Method: "PATCH", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

func getEnvInt(getenv func(string) string, key string, defaultValue int) int {
	if value := getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(getenv func(string) string, key string, defaultValue bool) bool {
	if value := getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(getenv func(string) string, key string, defaultValue time.Duration) time.Duration {
	if value := getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
