// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tkbet/internal/config"
	"tkbet/internal/metrics"
	"tkbet/internal/repositories"
	"tkbet/internal/routes"
	"tkbet/internal/services/autopay"
	"tkbet/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Initialize databases (PostgreSQL + Redis)
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	defer func() {
		if repositories.DB != nil {
			sqlDB, err := repositories.DB.DB()
			if err == nil {
				sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}
	}()

	// Prometheus registry plus its own scrape listener.
	metrics.Init()
	metrics.Serve(":" + config.GetEnv("METRICS_PORT", "9100"))

	// Create Fiber app
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Routes
	deps := routes.SetupRoutes(app, repositories.DB)

	// Background auto-payment verification. One cancellable context drives
	// the whole loop; shutdown stops it before the worker pool drains.
	ctx, cancel := context.WithCancel(context.Background())
	pool := worker.NewPool(config.GetIntEnv("WORKER_POOL_SIZE", 4), metrics.WorkerQueueDepth)
	verifier := autopay.NewVerifier(
		deps.Claims,
		deps.Transactions,
		autopay.NewHTTPProvider(),
		pool,
		metrics.AutoPaymentCollector{},
		config.GetDurationEnv("AUTOPAY_INTERVAL", 5*time.Second),
	)
	go verifier.Run(ctx)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down...")
		cancel()
		pool.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	if err := app.Listen(":" + config.GetEnv("PORT", "3000")); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
