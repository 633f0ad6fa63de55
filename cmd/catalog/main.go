// Команда catalog импортирует каталог модулей и пользователей в хранилище из конфигурации.
//
//	go run ./cmd/catalog -modules configs/modules_example.yaml -users configs/users_example.yaml
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	app2 "github.com/IT-Nick/visionhub/internal/app"
	"github.com/IT-Nick/visionhub/internal/infra/config"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "configs/values_examples.yaml"), "path to config file")
	modules := flag.String("modules", "", "YAML module catalog (defaults to catalog.seed_path)")
	users := flag.String("users", "", "YAML users file (defaults to catalog.users_seed_path)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config.LoadConfig: %v", err)
	}
	if *modules != "" {
		cfg.Catalog.SeedPath = *modules
	}
	if *users != "" {
		cfg.Catalog.UsersSeedPath = *users
	}

	logger := log.New(os.Stdout, "[catalog] ", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := app2.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer store.Close()

	if err := app2.New(cfg, store, logger, prometheus.NewRegistry()).Seed(ctx); err != nil {
		log.Fatalf("import failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
