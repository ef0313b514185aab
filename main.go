package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/seoforge/seo-api/app"
	"github.com/seoforge/seo-api/config"
	"github.com/seoforge/seo-api/database"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load(envExampleContract)
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if len(cfg.Missing) > 0 {
		log.Printf("ℹ️  Settings not provided (defaults apply): %s", strings.Join(cfg.Missing, ", "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, database.NewConnection())
	if err := application.Run(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
