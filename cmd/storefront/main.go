package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/cart"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/cart/storage"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/catalog"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/checkout"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/httpapi"
	"github.com/FenadoAI/fv2-luxe-kicks-9psftd/internal/order"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	RedisPassword   string
	BackendURL      string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		BackendURL:      getEnv("BACKEND_URL", "http://localhost:8001"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Connected to redis at %s", cfg.RedisAddr)

	cartStorage := storage.NewRedisStorage(redisClient)
	cartStore := cart.NewStore(ctx, cartStorage)
	log.Printf("Cart loaded with %d item(s)", cartStore.Count())

	catalogClient := catalog.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	orderClient := order.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	flow := checkout.NewFlow(cartStore, orderClient)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      httpapi.NewRouter(cartStore, flow, catalogClient, cfg.RequestTimeout),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s (backend %s)", cfg.HTTPPort, cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down storefront...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("storefront exited")
}
