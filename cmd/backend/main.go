package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/backend/httpapi"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/backend/repository"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/events"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	httpPort := getEnv("BACKEND_PORT", "8001")
	dbPath := getEnv("DB_PATH", "luxekicks.db")
	kafkaBrokers := getEnv("KAFKA_BROKERS", "")
	seed := getEnv("SEED_PRODUCTS", "true") == "true"
	requestTimeout := 30 * time.Second

	ctx := context.Background()

	repo, err := repository.NewRepository(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Database ready at %s", dbPath)

	if seed {
		if err := repo.Seed(ctx); err != nil {
			log.Fatalf("Failed to seed products: %v", err)
		}
	}

	// events are optional; without brokers the publisher stays nil and
	// order creation skips publishing
	var publisher *events.Publisher
	if kafkaBrokers != "" {
		publisher = events.NewPublisher(strings.Split(kafkaBrokers, ",")...)
		defer publisher.Close()
		log.Printf("Publishing order events to %s", kafkaBrokers)
	}

	srv := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      httpapi.NewRouter(repo, publisher, requestTimeout),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Backend starting on :%s", httpPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down backend...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("backend exited")
}
