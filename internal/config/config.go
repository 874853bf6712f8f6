// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Server   ServerConfig
	Store    StoreConfig
	TMDB     TMDBConfig
	OMDB     OMDBConfig
	Discover DiscoverConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 30s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// StoreConfig holds rating cache storage configuration.
type StoreConfig struct {
	// Backend selects the cache implementation: "badger" (default) or "sqlite".
	Backend string
	// DataPath is the directory holding the cache database.
	DataPath string
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	// AccessToken is the TMDB v4 API read access token (Bearer auth). Required.
	AccessToken string
}

// OMDBConfig holds OMDB API configuration.
type OMDBConfig struct {
	// APIKey is the OMDB API key. Optional: without it IMDb ratings are
	// skipped and discovery falls back to TMDB vote averages.
	APIKey string
}

// DiscoverConfig holds discovery orchestration tuning.
type DiscoverConfig struct {
	// MaxAttempts bounds the page-sampling loop per request (default: 5).
	MaxAttempts int
	// MaxSamplePages caps the random page range so sampling stays within
	// TMDB's reliable result window (default: 50).
	MaxSamplePages int
	// RatingRelaxation is subtracted from the requested minimum rating in
	// the upstream TMDB query. TMDB vote averages and IMDb ratings diverge;
	// querying TMDB too strictly would exclude movies that pass the IMDb
	// threshold once enriched. The exact cutoff is enforced per movie after
	// enrichment.
	RatingRelaxation float64
	// MinVoteCount is the vote-count floor applied to every TMDB query to
	// exclude statistically unreliable entries (default: 100).
	MinVoteCount int
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Directory for the rating cache database")
	storeBackend := flag.String("store-backend", "", "Rating cache backend (badger, sqlite)")

	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 30s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	maxAttempts := flag.String("max-attempts", "", "Max page-sampling attempts per request (default: 5)")
	maxSamplePages := flag.String("max-sample-pages", "", "Max random page range (default: 50)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	// Parse flags but don't exit on error - we want to handle it gracefully.
	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Store: StoreConfig{
			Backend:  getConfigValue(*storeBackend, "STORE_BACKEND", "badger"),
			DataPath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		TMDB: TMDBConfig{
			AccessToken: getConfigValue("", "TMDB_ACCESS_TOKEN", ""),
		},
		OMDB: OMDBConfig{
			APIKey: getConfigValue("", "OMDB_API_KEY", ""),
		},
		Discover: DiscoverConfig{
			MaxAttempts:      getIntConfigValue(*maxAttempts, "DISCOVER_MAX_ATTEMPTS", 5),
			MaxSamplePages:   getIntConfigValue(*maxSamplePages, "DISCOVER_MAX_SAMPLE_PAGES", 50),
			RatingRelaxation: 1.5,
			MinVoteCount:     getIntConfigValue("", "DISCOVER_MIN_VOTE_COUNT", 100),
		},
	}

	// Parse server timeouts.
	readTimeoutStr := getConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	readTimeoutDuration, err := time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}
	cfg.Server.ReadTimeout = readTimeoutDuration

	// Write timeout covers the whole discovery run including upstream calls,
	// so it is longer than the read timeout.
	writeTimeoutStr := getConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "30s")
	writeTimeoutDuration, err := time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}
	cfg.Server.WriteTimeout = writeTimeoutDuration

	idleTimeoutStr := getConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	idleTimeoutDuration, err := time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}
	cfg.Server.IdleTimeout = idleTimeoutDuration

	// Expand and validate the data path.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	validBackends := map[string]bool{
		"badger": true,
		"sqlite": true,
	}
	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("invalid store backend: %s (must be badger or sqlite)", c.Store.Backend)
	}

	if c.TMDB.AccessToken == "" {
		return errors.New("TMDB_ACCESS_TOKEN is required")
	}

	// OMDB_API_KEY can be empty - IMDb ratings degrade to TMDB vote averages.

	if c.Discover.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", c.Discover.MaxAttempts)
	}
	if c.Discover.MaxSamplePages < 1 {
		return fmt.Errorf("max sample pages must be at least 1, got %d", c.Discover.MaxSamplePages)
	}

	return nil
}

// expandDataPath expands ~ and makes the path absolute.
// Defaults to ~/CinePick/data.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "CinePick", "data")

	expanded, err := expandPath(c.Store.DataPath, defaultPath)
	if err != nil {
		return err
	}
	c.Store.DataPath = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
