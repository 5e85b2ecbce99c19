// Package config builds the service configuration from defaults, an optional
// YAML file (ATELIER_CONFIG) and ATELIER_* environment variables, in that
// order of increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

// Backends.
const (
	ProseNone   = "none"
	ProseMock   = "mock"
	ProseVertex = "vertex"

	StorageMemory    = "memory"
	StorageFirestore = "firestore"
	StorageRedis     = "redis"

	LeadsMemory    = "memory"
	LeadsSQLite    = "sqlite"
	LeadsPostgres  = "postgres"
	LeadsFirestore = "firestore"
)

type Config struct {
	Mode Mode `yaml:"mode"`

	Port    string `yaml:"port"`
	LogMode string `yaml:"log_mode"`

	GCPProjectID string `yaml:"gcp_project"`
	GCPLocation  string `yaml:"gcp_location"`
	ModelName    string `yaml:"model_name"`

	ProseBackend string        `yaml:"prose_backend"` // "none", "mock" or "vertex"
	ProseTimeout time.Duration `yaml:"prose_timeout"`

	StorageBackend string        `yaml:"storage_backend"` // "memory", "firestore" or "redis"
	RedisAddr      string        `yaml:"redis_addr"`
	RedisPassword  string        `yaml:"redis_password"`
	SessionTTL     time.Duration `yaml:"session_ttl"`

	LeadsBackend string `yaml:"leads_backend"` // "memory", "sqlite", "postgres" or "firestore"
	LeadsDSN     string `yaml:"leads_dsn"`

	CatalogPath string `yaml:"catalog_path"`

	MaxInputChars      int      `yaml:"max_input_chars"`
	FollowupAfterTurns int      `yaml:"followup_after_turns"`
	AllowedOrigins     []string `yaml:"allowed_origins"`

	OTLPEndpoint string `yaml:"otlp_endpoint"`
	TraceStdout  bool   `yaml:"trace_stdout"`
}

// Default returns the local development configuration.
func Default() *Config {
	return &Config{
		Mode:               ModeLocal,
		Port:               "8080",
		LogMode:            "development",
		GCPLocation:        "us-central1",
		ModelName:          "gemini-2.5-flash",
		ProseBackend:       ProseNone,
		ProseTimeout:       8 * time.Second,
		StorageBackend:     StorageMemory,
		SessionTTL:         24 * time.Hour,
		LeadsBackend:       LeadsMemory,
		MaxInputChars:      2000,
		FollowupAfterTurns: 8,
		AllowedOrigins:     []string{"*"},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// Load reads the optional config file and all env vars and builds the config.
// It does not validate; call Validate before wiring backends.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("ATELIER_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	switch getEnv("ATELIER_MODE", string(c.Mode)) {
	case "gcp":
		c.Mode = ModeGCP
	default:
		c.Mode = ModeLocal
	}

	c.Port = getEnv("ATELIER_PORT", getEnv("PORT", c.Port))
	c.LogMode = getEnv("ATELIER_LOG_MODE", c.LogMode)

	c.GCPProjectID = getEnv("ATELIER_GCP_PROJECT", c.GCPProjectID)
	c.GCPLocation = getEnv("ATELIER_GCP_LOCATION", c.GCPLocation)
	c.ModelName = getEnv("ATELIER_MODEL_NAME", c.ModelName)

	c.ProseBackend = strings.ToLower(getEnv("ATELIER_PROSE_BACKEND", c.ProseBackend))
	c.StorageBackend = strings.ToLower(getEnv("ATELIER_STORAGE_BACKEND", c.StorageBackend))
	c.RedisAddr = getEnv("ATELIER_REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnv("ATELIER_REDIS_PASSWORD", c.RedisPassword)
	c.LeadsBackend = strings.ToLower(getEnv("ATELIER_LEADS_BACKEND", c.LeadsBackend))
	c.LeadsDSN = getEnv("ATELIER_LEADS_DSN", c.LeadsDSN)
	c.CatalogPath = getEnv("ATELIER_CATALOG_PATH", c.CatalogPath)
	c.OTLPEndpoint = getEnv("ATELIER_OTLP_ENDPOINT", c.OTLPEndpoint)
	c.TraceStdout = getBoolEnv("ATELIER_TRACE_STDOUT", c.TraceStdout)

	if v := os.Getenv("ATELIER_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}

	var errs []error
	var err error
	if c.ProseTimeout, err = getDurationEnv("ATELIER_PROSE_TIMEOUT", c.ProseTimeout); err != nil {
		errs = append(errs, err)
	}
	if c.SessionTTL, err = getDurationEnv("ATELIER_SESSION_TTL", c.SessionTTL); err != nil {
		errs = append(errs, err)
	}
	if c.MaxInputChars, err = getIntEnv("ATELIER_MAX_INPUT_CHARS", c.MaxInputChars); err != nil {
		errs = append(errs, err)
	}
	if c.FollowupAfterTurns, err = getIntEnv("ATELIER_FOLLOWUP_AFTER_TURNS", c.FollowupAfterTurns); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate reports every inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Mode == ModeGCP && c.GCPProjectID == "" {
		errs = append(errs, errors.New("ATELIER_GCP_PROJECT must be set in gcp mode"))
	}

	switch c.ProseBackend {
	case ProseNone, ProseMock:
	case ProseVertex:
		if c.GCPProjectID == "" {
			errs = append(errs, errors.New("vertex prose backend requires ATELIER_GCP_PROJECT"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown prose backend %q", c.ProseBackend))
	}

	switch c.StorageBackend {
	case StorageMemory:
	case StorageFirestore:
		if c.GCPProjectID == "" {
			errs = append(errs, errors.New("firestore storage requires ATELIER_GCP_PROJECT"))
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("redis storage requires ATELIER_REDIS_ADDR"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.StorageBackend))
	}

	switch c.LeadsBackend {
	case LeadsMemory:
	case LeadsSQLite, LeadsPostgres:
		if c.LeadsDSN == "" {
			errs = append(errs, fmt.Errorf("%s leads backend requires ATELIER_LEADS_DSN", c.LeadsBackend))
		}
	case LeadsFirestore:
		if c.GCPProjectID == "" {
			errs = append(errs, errors.New("firestore leads backend requires ATELIER_GCP_PROJECT"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown leads backend %q", c.LeadsBackend))
	}

	if c.MaxInputChars <= 0 {
		errs = append(errs, errors.New("max input chars must be positive"))
	}
	if c.FollowupAfterTurns <= 0 {
		errs = append(errs, errors.New("followup after turns must be positive"))
	}

	return errors.Join(errs...)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
