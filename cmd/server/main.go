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

	"github.com/tvandenberg/portfolio-tracker/internal/api"
	"github.com/tvandenberg/portfolio-tracker/internal/config"
	"github.com/tvandenberg/portfolio-tracker/internal/database"
	"github.com/tvandenberg/portfolio-tracker/internal/marketdata"
	"github.com/tvandenberg/portfolio-tracker/internal/repository"
	"github.com/tvandenberg/portfolio-tracker/internal/service"
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

	// Apply pending schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	portfolioRepo := repository.NewPortfolioRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	rateRepo := repository.NewExchangeRateRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	settingsService, err := service.NewSettingsService(settingRepo, cfg.MarketData.FernetKey)
	if err != nil {
		log.Fatalf("Failed to create settings service: %v", err)
	}

	client := newMarketDataClient(cfg, settingsService)

	positionService := service.NewPositionService(positionRepo, transactionRepo, quoteRepo)
	transactionService := service.NewTransactionService(transactionRepo, positionRepo)
	quoteService := service.NewQuoteService(quoteRepo, positionRepo, client)
	fxService := service.NewFxService(rateRepo, client, cfg.Currency.Base)
	portfolioService := service.NewPortfolioService(portfolioRepo, positionService, fxService)

	// Scheduled refresh of quotes and exchange rates
	scheduler := cron.New()
	if cfg.MarketData.RefreshSpec != "" {
		_, err := scheduler.AddFunc(cfg.MarketData.RefreshSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			if n, err := quoteService.RefreshAll(ctx); err != nil {
				log.Printf("Scheduled quote refresh failed: %v", err)
			} else {
				log.Printf("Scheduled quote refresh completed: %d symbols", n)
			}
			if n, err := fxService.RefreshAll(ctx); err != nil {
				log.Printf("Scheduled fx refresh failed: %v", err)
			} else {
				log.Printf("Scheduled fx refresh completed: %d rates", n)
			}
		})
		if err != nil {
			log.Fatalf("Invalid refresh schedule %q: %v", cfg.MarketData.RefreshSpec, err)
		}
		scheduler.Start()
		log.Printf("Scheduled market data refresh: %s", cfg.MarketData.RefreshSpec)
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Portfolio:   portfolioService,
		Position:    positionService,
		Transaction: transactionService,
		Quote:       quoteService,
		Fx:          fxService,
		Settings:    settingsService,
	}, cfg)

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

	// Stop scheduling new refreshes; running jobs finish on their own context.
	scheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newMarketDataClient selects the quote provider. Alpha Vantage needs the
// stored API key; Yahoo works unauthenticated and is the default.
func newMarketDataClient(cfg *config.Config, settingsService *service.SettingsService) marketdata.Client {
	switch cfg.MarketData.Provider {
	case "alphavantage":
		apiKey, err := settingsService.GetMarketDataAPIKey()
		if err != nil {
			log.Fatalf("Alpha Vantage selected but no API key stored: %v", err)
		}
		return marketdata.NewAlphaVantageClient(apiKey)
	default:
		return marketdata.NewYahooClient()
	}
}
