package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/bloghub/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnvFile loads a dotenv file into the process environment without
// overriding variables that are already set. An explicit -e/-env file must
// exist; the default ./.env is optional. Panics on read errors.
func parseEnvFile() {
	path := flagx.EnvFileFlags()
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); errors.Is(err, fs.ErrNotExist) {
			return
		}
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}

// parseEnv overlays Config with environment variables. Unset or empty
// variables leave the current value alone. Panics on malformed durations.
func parseEnv(cfg *Config) {
	setString(&cfg.SupabaseURL, "SUPABASE_URL", "VITE_SUPABASE_URL")
	setString(&cfg.AnonKey, "SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY")
	setString(&cfg.DataPath, "BLOGHUB_DATA")
	setString(&cfg.SessionKey, "BLOGHUB_SESSION_KEY")
	setString(&cfg.LogLevel, "BLOGHUB_LOG_LEVEL")
	setString(&cfg.S3Endpoint, "BLOGHUB_S3_ENDPOINT")
	setString(&cfg.S3Region, "BLOGHUB_S3_REGION")
	setString(&cfg.S3AccessKey, "BLOGHUB_S3_ACCESS_KEY")
	setString(&cfg.S3SecretKey, "BLOGHUB_S3_SECRET_KEY")
	setString(&cfg.CoverBucket, "BLOGHUB_COVER_BUCKET")
	setDuration(&cfg.HTTPTimeout, "BLOGHUB_HTTP_TIMEOUT")
	setDuration(&cfg.RealtimeHeartbeat, "BLOGHUB_REALTIME_HEARTBEAT")
}

// setString assigns the first non-empty variable among names.
func setString(dst *string, names ...string) {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			*dst = v
			return
		}
	}
}

func setDuration(dst *time.Duration, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
