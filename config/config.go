package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// CORS
	CORSAllowedOrigins string // comma-separated

	// HTTP server
	MaxMultipartMemoryMB int
	ReadHeaderTimeout    time.Duration
	ShutdownTimeout      time.Duration

	// Metrics (/metrics and /debug/vars)
	MetricsEnabled bool

	// HTTP access log toggle
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil || i <= 0 {
			log.Printf("invalid int for %s: %q, using default %d", key, v, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "user-registration"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		MaxMultipartMemoryMB: getint("MAX_MULTIPART_MEMORY_MB", 8),
		ReadHeaderTimeout:    getdur("READ_HEADER_TIMEOUT", 5*time.Second),
		ShutdownTimeout:      getdur("SHUTDOWN_TIMEOUT", 10*time.Second),

		MetricsEnabled: getbool("METRICS_ENABLED", true),

		// default false; enable when needed
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// IsDevelopment reports whether the app runs with development defaults
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// MaxMultipartMemory returns the multipart form memory limit in bytes
func (c *Config) MaxMultipartMemory() int64 {
	return int64(c.MaxMultipartMemoryMB) << 20
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
