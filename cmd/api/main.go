package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	_ "cardpay/docs"
	"cardpay/internal/adapter/http/routes"
	"cardpay/internal/config"
	"cardpay/internal/infrastructure/tracing"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Card Payments API
// @version         1.0
// @description     Charges credit cards through PayPal, Braintree or Mercado Pago.

// @host localhost:8080

// @BasePath  /v1

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	shutdown, err := tracing.InitProvider(ctx, cfg.Tracing)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("[tracing] shutdown failed err=%v", err)
		}
	}()

	if err := routes.Run(ctx, cfg); err != nil {
		log.Printf("Failed to startup the application: %v", err)
	}
}
