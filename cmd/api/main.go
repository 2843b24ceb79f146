package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hassy/readcycle/internal/bootstrap"
	"github.com/hassy/readcycle/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the config file")
	migrationsDir := flag.String("migrations", "migrations", "path to the migrations directory")
	flag.Parse()

	if err := run(*configPath, *migrationsDir); err != nil {
		fmt.Fprintf(os.Stderr, "readcycle: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, migrationsDir string) error {
	cfg, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := bootstrap.SetupDatabase(ctx, cfg, migrationsDir)
	if err != nil {
		return err
	}

	app, err := bootstrap.Build(ctx, cfg, pool)
	if err != nil {
		pool.Close()
		return err
	}
	return server.Run(app)
}
