package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/bloghub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-k", "-d", "-l", "-t", "-s", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.SupabaseURL, "u", cfg.SupabaseURL, "backend URL")
	fs.StringVar(&cfg.AnonKey, "k", cfg.AnonKey, "backend anon key")
	fs.StringVar(&cfg.DataPath, "d", cfg.DataPath, "path of the local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.DurationVar(&cfg.HTTPTimeout, "t", cfg.HTTPTimeout, "HTTP timeout, 0 for none")
	fs.StringVar(&cfg.S3Endpoint, "s", cfg.S3Endpoint, "S3 endpoint of the object storage")
	fs.StringVar(&cfg.CoverBucket, "b", cfg.CoverBucket, "bucket for cover images")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
