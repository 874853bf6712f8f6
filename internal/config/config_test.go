package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Store: StoreConfig{Backend: "badger", DataPath: "/tmp/cinepick"},
		TMDB:  TMDBConfig{AccessToken: "token"},
		Discover: DiscoverConfig{
			MaxAttempts:      5,
			MaxSamplePages:   50,
			RatingRelaxation: 1.5,
			MinVoteCount:     100,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(*Config) {}, false},
		{"sqlite backend", func(c *Config) { c.Store.Backend = "sqlite" }, false},
		{"invalid environment", func(c *Config) { c.App.Environment = "local" }, true},
		{"invalid log level", func(c *Config) { c.Logger.Level = "verbose" }, true},
		{"invalid backend", func(c *Config) { c.Store.Backend = "redis" }, true},
		{"missing tmdb token", func(c *Config) { c.TMDB.AccessToken = "" }, true},
		{"zero attempts", func(c *Config) { c.Discover.MaxAttempts = 0 }, true},
		{"zero sample pages", func(c *Config) { c.Discover.MaxSamplePages = 0 }, true},
		{"missing omdb key is fine", func(c *Config) { c.OMDB.APIKey = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetConfigValue(t *testing.T) {
	t.Setenv("CINEPICK_TEST_KEY", "from-env")

	if got := getConfigValue("from-flag", "CINEPICK_TEST_KEY", "default"); got != "from-flag" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := getConfigValue("", "CINEPICK_TEST_KEY", "default"); got != "from-env" {
		t.Errorf("env should win over default, got %q", got)
	}
	if got := getConfigValue("", "CINEPICK_TEST_MISSING", "default"); got != "default" {
		t.Errorf("default should apply, got %q", got)
	}
}

func TestGetIntConfigValue(t *testing.T) {
	t.Setenv("CINEPICK_TEST_INT", "7")

	if got := getIntConfigValue("", "CINEPICK_TEST_INT", 3); got != 7 {
		t.Errorf("got %d, want 7", got)
	}
	if got := getIntConfigValue("", "CINEPICK_TEST_INT_MISSING", 3); got != 3 {
		t.Errorf("got %d, want default 3", got)
	}

	t.Setenv("CINEPICK_TEST_INT_BAD", "not-a-number")
	if got := getIntConfigValue("", "CINEPICK_TEST_INT_BAD", 3); got != 3 {
		t.Errorf("got %d, want default 3 for unparseable value", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nTMDB_ACCESS_TOKEN=abc123\nOMDB_API_KEY=\"quoted\"\n\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TMDB_ACCESS_TOKEN", "")
	os.Unsetenv("TMDB_ACCESS_TOKEN")
	t.Setenv("OMDB_API_KEY", "")
	os.Unsetenv("OMDB_API_KEY")

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}

	if got := os.Getenv("TMDB_ACCESS_TOKEN"); got != "abc123" {
		t.Errorf("TMDB_ACCESS_TOKEN = %q, want abc123", got)
	}
	if got := os.Getenv("OMDB_API_KEY"); got != "quoted" {
		t.Errorf("OMDB_API_KEY = %q, want quoted (quotes stripped)", got)
	}
}

func TestExpandPath(t *testing.T) {
	got, err := expandPath("", "/default/path")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/default/path" {
		t.Errorf("empty path should use default, got %q", got)
	}

	got, err = expandPath("~/cinepick", "")
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if got != filepath.Join(home, "cinepick") {
		t.Errorf("tilde expansion failed, got %q", got)
	}
}
