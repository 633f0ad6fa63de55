// Команда token выпускает bearer-токен для пользователя портала.
//
//	go run ./cmd/token -username i.petrova -ttl 24h
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	app2 "github.com/IT-Nick/visionhub/internal/app"
	"github.com/IT-Nick/visionhub/internal/app/middleware"
	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/infra/config"
)

func main() {
	configPath := flag.String("config", "configs/values_examples.yaml", "path to config file")
	username := flag.String("username", "", "portal username")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	if *username == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config.LoadConfig: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := app2.OpenStore(ctx, cfg, log.New(io.Discard, "", 0))
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer store.Close()

	user, err := store.Users().GetUserByUsername(ctx, *username)
	if err != nil {
		log.Fatalf("failed to get user: %v", err)
	}
	if user == nil {
		log.Fatalf("user %q not found", *username)
	}

	token, err := middleware.GenerateToken(cfg.Auth.JWTSecret, model.Identity{UserID: user.ID, Role: user.Role}, *ttl)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(token)
}
