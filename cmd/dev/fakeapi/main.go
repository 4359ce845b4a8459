package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/pedidos/internal/config"
	"github.com/garnizeh/pedidos/internal/fakeapi"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to config YAML file")
		seed       = flag.Bool("seed", false, "Load demo areas and the admin usuario")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateFakeAPI(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	logger, err := cfg.Log.NewLogger()
	if err != nil {
		log.Fatalf("Invalid log config: %v", err)
	}
	fakeapi.SetLogger(logger)

	log.Printf("Starting pedidos fake API version %s (built at %s)", version, buildTime)

	api, err := fakeapi.New(fakeapi.Options{
		JWTSecret:     cfg.FakeAPI.JWTSecret,
		TokenDuration: cfg.FakeAPI.TokenDuration,
		Seed:          cfg.FakeAPI.Seed || *seed,
	})
	if err != nil {
		log.Fatalf("Failed to build fake API: %v", err)
	}
	if cfg.FakeAPI.Seed || *seed {
		log.Printf("Seeded admin usuario %s / %s", fakeapi.SeedAdminEmail, fakeapi.SeedAdminPassword)
	}

	server := &http.Server{
		Addr:         cfg.FakeAPI.Addr,
		Handler:      api,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s (API under %s)", cfg.FakeAPI.Addr, fakeapi.BasePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
