package config

import (
	"os"
	"strings"
	"time"
)

// ServerConfig configures the HTTP API and its moments store.
type ServerConfig struct {
	HTTPAddr string

	// DBDriver is "sqlite", "postgres" or "memory".
	DBDriver string
	DBDSN    string

	CORSOrigins    []string
	RequestTimeout time.Duration
	Debug          bool
}

// FromEnv reads the server configuration from the environment.
func FromEnv() ServerConfig {
	return ServerConfig{
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		DBDriver:       envOr("DB_DRIVER", "sqlite"),
		DBDSN:          envOr("DB_DSN", "famcalc.db"),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000"),
		RequestTimeout: durationOr("REQUEST_TIMEOUT", 30*time.Second),
		Debug:          envBool("DEBUG", false),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	parts := strings.Split(envOr(k, def), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// durationOr parses values like "15s"; invalid values fall back to def.
func durationOr(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
