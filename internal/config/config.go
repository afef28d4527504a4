package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Sync
	SyncDebounce  time.Duration
	RemoteBackend string
	GitHubAPIURL  string
}

func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),

		SyncDebounce:  getEnvDuration("SYNC_DEBOUNCE", 2*time.Second),
		RemoteBackend: getEnv("REMOTE_BACKEND", "github"),
		GitHubAPIURL:  getEnv("GITHUB_API_URL", ""),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate remote backend
	validBackends := []string{"github", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.RemoteBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid remote backend '%s': must be one of %v", c.RemoteBackend, validBackends))
	}

	// Validate SQLite configuration
	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	// Validate GitHub API URL override if provided
	if c.GitHubAPIURL != "" {
		if parsedURL, err := url.Parse(c.GitHubAPIURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid GitHub API URL '%s': %v", c.GitHubAPIURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid GitHub API URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}

	// Validate sync debounce window
	if c.SyncDebounce < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid sync debounce %v: must be at least 100ms", c.SyncDebounce))
	} else if c.SyncDebounce > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid sync debounce %v: must be at most 1 minute", c.SyncDebounce))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
