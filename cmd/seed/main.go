// Command seed dry-runs a seed file against a fresh in-memory store and
// reports which records the server would accept at start-up.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-user-registry/config"
	"github.com/oksasatya/go-user-registry/internal/container"
	"github.com/oksasatya/go-user-registry/internal/seed"
	"github.com/oksasatya/go-user-registry/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	path := flag.String("file", cfg.SeedFile, "seed file to check (defaults to SEED_FILE)")
	flag.Parse()
	if *path == "" {
		log.Fatal("no seed file: pass -file or set SEED_FILE")
	}

	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	c := container.New(cfg, logger, nil)

	res, err := seed.LoadFile(context.Background(), c.Service, logger, *path)
	if err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	users, err := c.Service.List(context.Background())
	if err != nil {
		log.Fatalf("failed to list users: %v", err)
	}
	for _, u := range users {
		fmt.Printf("seeded user: id=%s email=%s name=%s\n", u.ID, u.Email, u.FullName())
	}
	fmt.Printf("created=%d skipped=%d\n", res.Created, res.Skipped)
}
