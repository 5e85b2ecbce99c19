package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PabloGalante/atelier-agent/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	if cfg.Mode != config.ModeLocal || cfg.Port != "8080" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.MaxInputChars != 2000 || cfg.FollowupAfterTurns != 8 {
		t.Errorf("unexpected limits %d/%d", cfg.MaxInputChars, cfg.FollowupAfterTurns)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ATELIER_PORT", "9090")
	t.Setenv("ATELIER_PROSE_BACKEND", "MOCK")
	t.Setenv("ATELIER_PROSE_TIMEOUT", "3s")
	t.Setenv("ATELIER_MAX_INPUT_CHARS", "500")
	t.Setenv("ATELIER_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.ProseBackend != config.ProseMock {
		t.Errorf("unexpected cfg %+v", cfg)
	}
	if cfg.ProseTimeout != 3*time.Second || cfg.MaxInputChars != 500 {
		t.Errorf("unexpected timeout/limit %s/%d", cfg.ProseTimeout, cfg.MaxInputChars)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("ATELIER_FOLLOWUP_AFTER_TURNS", "many")
	t.Setenv("ATELIER_SESSION_TTL", "forever")

	_, err := config.Load()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"ATELIER_FOLLOWUP_AFTER_TURNS", "ATELIER_SESSION_TTL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atelier.yaml")
	content := "port: \"7000\"\nstorage_backend: redis\nredis_addr: localhost:6379\nsession_ttl: 2h\nfollowup_after_turns: 4\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ATELIER_CONFIG", path)
	t.Setenv("ATELIER_PORT", "7001")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7001" {
		t.Errorf("env should win over file, got port %s", cfg.Port)
	}
	if cfg.StorageBackend != config.StorageRedis || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.SessionTTL != 2*time.Hour || cfg.FollowupAfterTurns != 4 {
		t.Errorf("unexpected ttl/followup %s/%d", cfg.SessionTTL, cfg.FollowupAfterTurns)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"gcp without project", func(c *config.Config) { c.Mode = config.ModeGCP }, "gcp mode"},
		{"firestore without project", func(c *config.Config) { c.StorageBackend = config.StorageFirestore }, "firestore storage"},
		{"redis without addr", func(c *config.Config) { c.StorageBackend = config.StorageRedis }, "ATELIER_REDIS_ADDR"},
		{"sqlite without dsn", func(c *config.Config) { c.LeadsBackend = config.LeadsSQLite }, "ATELIER_LEADS_DSN"},
		{"postgres without dsn", func(c *config.Config) { c.LeadsBackend = config.LeadsPostgres }, "ATELIER_LEADS_DSN"},
		{"vertex without project", func(c *config.Config) { c.ProseBackend = config.ProseVertex }, "vertex"},
		{"unknown storage", func(c *config.Config) { c.StorageBackend = "etcd" }, "unknown storage"},
		{"zero input cap", func(c *config.Config) { c.MaxInputChars = 0 }, "max input chars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
