package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bloghub/internal/flagx"
	"github.com/dmitrijs2005/bloghub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "empty", so a JSON file only overrides
// the keys it names.
type JsonConfig struct {
	SupabaseURL       *string         `json:"supabase_url"`
	AnonKey           *string         `json:"anon_key"`
	DataPath          *string         `json:"data_path"`
	SessionKey        *string         `json:"session_key"`
	LogLevel          *string         `json:"log_level"`
	HTTPTimeout       *timex.Duration `json:"http_timeout"`
	S3Endpoint        *string         `json:"s3_endpoint"`
	S3Region          *string         `json:"s3_region"`
	S3AccessKey       *string         `json:"s3_access_key"`
	S3SecretKey       *string         `json:"s3_secret_key"`
	CoverBucket       *string         `json:"cover_bucket"`
	RealtimeHeartbeat *timex.Duration `json:"realtime_heartbeat"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without the flag nothing is loaded. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.SupabaseURL, jc.SupabaseURL)
	overlay(&cfg.AnonKey, jc.AnonKey)
	overlay(&cfg.DataPath, jc.DataPath)
	overlay(&cfg.SessionKey, jc.SessionKey)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.S3Endpoint, jc.S3Endpoint)
	overlay(&cfg.S3Region, jc.S3Region)
	overlay(&cfg.S3AccessKey, jc.S3AccessKey)
	overlay(&cfg.S3SecretKey, jc.S3SecretKey)
	overlay(&cfg.CoverBucket, jc.CoverBucket)
	if jc.HTTPTimeout != nil {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
	if jc.RealtimeHeartbeat != nil {
		cfg.RealtimeHeartbeat = jc.RealtimeHeartbeat.Duration
	}
}

func overlay(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
