package main

import (
	"context"
	"log"
	"os"

	"github.com/mlapshin/storefront/internal/buildinfo"
	"github.com/mlapshin/storefront/internal/client/cli"
	"github.com/mlapshin/storefront/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
