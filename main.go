package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"productform/internal/config"
	"productform/internal/form"
	"productform/internal/repositories"
	"productform/pkg/productapi"
	"productform/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Product created events (optional) ---
	var publisher form.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL is not set. Product created events are disabled.")
	}

	repo := repositories.NewMemoryFormRepository()
	creator := productapi.NewClient(cfg.ProductAPIURL, cfg.ProductAPITimeout)

	app, err := NewApp(cfg, repo, creator, publisher)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Evict forms left idle by closed browser sessions ---
	stopEviction := make(chan struct{})
	go evictIdleForms(repo, cfg.FormIdleTTL, stopEviction)

	log.Printf("Starting server on port %s, creating products at %s", cfg.AppPort, cfg.ProductAPIURL)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	close(stopEviction)

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

func evictIdleForms(repo repositories.FormRepository, ttl time.Duration, stop <-chan struct{}) {
	interval := ttl / 2
	if interval <= 0 {
		interval = ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			if n := repo.DeleteIdle(now.Add(-ttl)); n > 0 {
				log.Printf("Evicted %d idle forms", n)
			}
		}
	}
}
