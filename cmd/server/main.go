package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	app2 "github.com/IT-Nick/visionhub/internal/app"
)

func main() {
	log.Println("app starting")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/values_examples.yaml"
	}

	app, err := app2.NewApp(configPath)
	if err != nil {
		log.Fatalf("failed to create app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("app stopped: %v", err)
		}
	case <-ctx.Done():
		log.Println("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
