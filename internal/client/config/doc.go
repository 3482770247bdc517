// Package config loads runtime configuration for the bloghub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (see parseEnvFile): -e/-env, or ./.env when present.
//     Variables already set in the environment are not overwritten.
//  3. Environment variables (see parseEnv).
//  4. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  5. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string     backend URL (https://<ref>.supabase.co)
//	-k string     backend anon key
//	-d string     path of the local sqlite database
//	-l string     log level: debug, info, warn, error
//	-t duration   HTTP timeout, 0 for none
//	-s string     S3 endpoint of the object storage
//	-b string     bucket for cover images
//
// # Environment
//
//	SUPABASE_URL, SUPABASE_ANON_KEY (VITE_SUPABASE_URL, VITE_SUPABASE_ANON_KEY
//	are accepted as well), BLOGHUB_DATA, BLOGHUB_SESSION_KEY,
//	BLOGHUB_LOG_LEVEL, BLOGHUB_HTTP_TIMEOUT, BLOGHUB_S3_ENDPOINT,
//	BLOGHUB_S3_REGION, BLOGHUB_S3_ACCESS_KEY, BLOGHUB_S3_SECRET_KEY,
//	BLOGHUB_COVER_BUCKET, BLOGHUB_REALTIME_HEARTBEAT
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "supabase_url": "https://abc.supabase.co",
//	  "anon_key": "eyJ...",
//	  "http_timeout": "15s",
//	  "realtime_heartbeat": "30s"
//	}
package config
