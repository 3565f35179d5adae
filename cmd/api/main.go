// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/docesdalu/storefront-backend/internal/config"
	"github.com/docesdalu/storefront-backend/internal/domain/cart"
	"github.com/docesdalu/storefront-backend/internal/domain/catalog"
	"github.com/docesdalu/storefront-backend/internal/domain/checkout"
	"github.com/docesdalu/storefront-backend/internal/domain/pricing"
	"github.com/docesdalu/storefront-backend/internal/infrastructure/database/redis"
	"github.com/docesdalu/storefront-backend/internal/infrastructure/payment"
	"github.com/docesdalu/storefront-backend/internal/infrastructure/shipping"
	httpserver "github.com/docesdalu/storefront-backend/internal/interfaces/http"
	"github.com/docesdalu/storefront-backend/internal/interfaces/http/middleware"
	"github.com/docesdalu/storefront-backend/internal/interfaces/http/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := middleware.NewLogger(cfg)
	logger.Infof("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Load and validate the product catalog
	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Build the promotion rule set
	rules, err := pricing.DefaultRuleSet(cfg)
	if err != nil {
		log.Fatalf("Failed to build promotion rules: %v", err)
	}

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Wire the services
	fallbackRate, err := decimal.NewFromString(cfg.Shop.FallbackDeliveryRate)
	if err != nil {
		log.Fatalf("Invalid fallback delivery rate: %v", err)
	}

	resolver := shipping.NewResolver(cfg, shipping.DefaultRateTable(fallbackRate))
	paymentClient := payment.NewClient(cfg)
	cartService := cart.NewService(redisClient.GetClient(), cat, cfg, logger)
	engine := pricing.NewEngine(rules)
	formatter := checkout.NewFormatter(cfg.Shop.WhatsAppNumber, cfg.Shop.CurrencyCode)
	checkoutService := checkout.NewService(cartService, engine, formatter, resolver, paymentClient, cfg, logger)

	logger.Info("All systems operational")

	// Create and start HTTP server
	server := httpserver.NewServer(cfg, logger, &routes.Deps{
		Config:          cfg,
		RedisClient:     redisClient.GetClient(),
		Catalog:         cat,
		Rules:           rules,
		CartService:     cartService,
		CheckoutService: checkoutService,
		Resolver:        resolver,
	})

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	logger.Info("Server shutdown completed")
}
