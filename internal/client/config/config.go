package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrMissingBackend = errors.New("missing Supabase environment variables")

// Config holds runtime settings for the bloghub CLI.
//
// SessionKey overrides the storage key derived from SupabaseURL. The S3
// fields configure cover uploads, which stay disabled without credentials.
type Config struct {
	SupabaseURL       string
	AnonKey           string
	DataPath          string
	SessionKey        string
	LogLevel          string
	HTTPTimeout       time.Duration
	S3Endpoint        string
	S3Region          string
	S3AccessKey       string
	S3SecretKey       string
	CoverBucket       string
	RealtimeHeartbeat time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataPath = defaultDataPath()
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
	c.CoverBucket = "covers"
	c.RealtimeHeartbeat = 30 * time.Second
}

func defaultDataPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "bloghub", "local.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays the dotenv
// file, the environment, JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnvFile()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports a missing backend URL or key.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SupabaseURL) == "" || strings.TrimSpace(c.AnonKey) == "" {
		return ErrMissingBackend
	}
	return nil
}

// StorageEnabled reports whether cover uploads are configured.
func (c *Config) StorageEnabled() bool {
	return c.S3AccessKey != "" && c.S3SecretKey != ""
}

// StorageEndpoint is S3Endpoint, or the backend's own S3 gateway when unset.
func (c *Config) StorageEndpoint() string {
	if c.S3Endpoint != "" {
		return c.S3Endpoint
	}
	return strings.TrimRight(c.SupabaseURL, "/") + "/storage/v1/s3"
}
