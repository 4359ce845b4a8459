package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/garnizeh/pedidos/internal/config"
	"github.com/garnizeh/pedidos/internal/db"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to config YAML file")
		out        = flag.String("out", "", "Backup file (default <database>.<timestamp>.bak)")
	)
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	src := cfg.Session.DatabasePath
	dst := *out
	if dst == "" {
		dst = fmt.Sprintf("%s.%s.bak", src, time.Now().UTC().Format("20060102T150405Z"))
	}

	if _, err := os.Stat(src); err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, src, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.BackupTo(ctx, dst); err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database backup completed: %s\n", dst)
}
