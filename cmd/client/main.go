package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/bloghub/internal/client/cli"
	"github.com/dmitrijs2005/bloghub/internal/client/config"
	"github.com/dmitrijs2005/bloghub/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error(ctx, "close failed", "error", err)
		}
	}()

	app.Run(ctx)

}
