package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/api"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/config"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/database"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/pricing"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/repository"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	transactionService := service.NewTransactionService(
		transactionRepo,
	)
	priceClient := pricing.NewClient(cfg.Pricing.BaseURL)
	priceService := pricing.NewService(priceClient, priceRepo, transactionRepo)
	taxService := service.NewTaxService(
		transactionRepo,
		priceService.Lookup(),
		cfg.Tax,
	)

	// Refresh prices on a schedule so reports use recent values
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Pricing.RefreshSchedule, func() {
		if err := priceService.Refresh(); err != nil {
			log.Printf("Scheduled price refresh failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid price refresh schedule %q: %v", cfg.Pricing.RefreshSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, transactionService, taxService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
