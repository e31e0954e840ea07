package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrescamacho/containeryard-go/internal/adapters/cli"
	"github.com/andrescamacho/containeryard-go/internal/infrastructure/config"
)

func main() {
	// Parse command-line flags
	configFlag := flag.String("config", "", "Path to config file (default: search standard paths)")
	migrateFlag := flag.Bool("migrate", true, "Migrate the database schema on startup")
	flag.Parse()

	fmt.Println("Container Yard Service v0.1.0")
	fmt.Println("=============================")

	// Load configuration
	cfg := config.MustLoadConfig(*configFlag)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.RunServer(ctx, cfg, *migrateFlag); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}
