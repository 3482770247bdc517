// Command migrate creates the backend tables of BlogHub in the Postgres
// database behind the hosted backend.
//
// The DSN comes from -d or DATABASE_URL; a ./.env file is read first when
// present.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/dmitrijs2005/bloghub/internal/logging"
	"github.com/dmitrijs2005/bloghub/internal/schema"
	"github.com/joho/godotenv"
)

func main() {

	if _, err := os.Stat(".env"); !errors.Is(err, fs.ErrNotExist) {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("%v", err)
		}
	}

	dsn := flag.String("d", os.Getenv("DATABASE_URL"), "Postgres DSN of the backend database")
	level := flag.String("l", "info", "log level")
	flag.Parse()

	ctx := context.Background()
	logger := logging.New(os.Stderr, *level)

	if err := run(ctx, *dsn); err != nil {
		logger.Error(ctx, "migration failed", "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "schema up to date")

}

func run(ctx context.Context, dsn string) error {
	db, err := schema.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	return schema.Apply(ctx, db)
}
