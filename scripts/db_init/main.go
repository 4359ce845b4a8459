package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	dbfs "github.com/garnizeh/pedidos/db"
	"github.com/garnizeh/pedidos/internal/config"
	"github.com/garnizeh/pedidos/internal/db"
	"github.com/garnizeh/pedidos/internal/repository/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to config YAML file")
		prune      = flag.Duration("prune", 0, "Also drop journal entries older than this (0 keeps all)")
	)
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.Session.DatabasePath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	if *prune > 0 {
		n, err := sqlite.New(database, nil).PruneMutations(ctx, *prune)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Prune error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Pruned %d journal entries older than %s.\n", n, prune.Round(time.Second))
	}

	fmt.Println("Database initialized successfully.")
}
