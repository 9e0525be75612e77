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

	"github.com/fiitrack/fii-portfolio-backend/internal/api"
	"github.com/fiitrack/fii-portfolio-backend/internal/auth"
	"github.com/fiitrack/fii-portfolio-backend/internal/config"
	"github.com/fiitrack/fii-portfolio-backend/internal/database"
	"github.com/fiitrack/fii-portfolio-backend/internal/repository"
	"github.com/fiitrack/fii-portfolio-backend/internal/service"
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
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	fiiRepo := repository.NewFiiRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	dividendRepo := repository.NewDividendRepository(db)

	// Create auth managers
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	passwordManager := auth.NewPasswordManager(cfg.Auth.BcryptCost)

	// Create services
	systemService := service.NewSystemService(db)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, jwtManager, passwordManager)
	fiiService := service.NewFiiService(fiiRepo)
	transactionService := service.NewTransactionService(transactionRepo, fiiRepo)
	dividendService := service.NewDividendService(dividendRepo, fiiRepo, transactionService)
	holdingsService := service.NewHoldingsService(transactionRepo)

	// Nightly maintenance: drop expired and revoked refresh tokens
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 3 * * *", func() {
		if err := authService.PurgeExpiredTokens(context.Background()); err != nil {
			log.Printf("Token purge failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule token purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.RouterDeps{
		SystemService:      systemService,
		AuthService:        authService,
		FiiService:         fiiService,
		TransactionService: transactionService,
		DividendService:    dividendService,
		HoldingsService:    holdingsService,
		JWTManager:         jwtManager,
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

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
