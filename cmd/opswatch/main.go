package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"

	"github.com/opswatch/opswatch/internal/advisor"
	"github.com/opswatch/opswatch/internal/config"
	"github.com/opswatch/opswatch/internal/database"
	"github.com/opswatch/opswatch/internal/events"
	"github.com/opswatch/opswatch/internal/handlers"
	"github.com/opswatch/opswatch/internal/jobs"
	"github.com/opswatch/opswatch/internal/middleware"
	"github.com/opswatch/opswatch/internal/notify"
	"github.com/opswatch/opswatch/internal/services"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it (this is fine if using environment variables): %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting opswatch...")

	// Initialize JWT authentication middleware
	if cfg.AdminPassword == "" {
		log.Fatalf("ADMIN_PASSWORD is not set")
	}

	passwordHash, err := middleware.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	jwtAuthMiddleware := middleware.NewJWTAuthMiddleware(&middleware.JWTAuthConfig{
		Enabled:           true,
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: passwordHash,
		JWTSecret:         cfg.JWTSecret,
		JWTExpiryHours:    cfg.JWTExpiryHours,
		SkipPaths: []string{
			"/health",
			"/auth/login",
			// Monitoring sources push alerts without operator credentials
			"POST /api/alerts",
		},
	})
	log.Printf("JWT authentication enabled for user: %s", cfg.AdminUsername)

	// Initialize database connection
	if err := database.Connect(cfg.DatabaseURL, logger.Warn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run database migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Initialize default database records
	if err := database.InitializeDefaults(); err != nil {
		log.Fatalf("Failed to initialize database defaults: %v", err)
	}

	db := database.GetDB()

	// Load the severity routing policy
	policy := notify.DefaultPolicy()
	if cfg.RoutingPolicyPath != "" {
		policy, err = notify.LoadPolicy(cfg.RoutingPolicyPath)
		if err != nil {
			log.Printf("Warning: Could not load routing policy, using defaults: %v", err)
		} else {
			log.Printf("Routing policy loaded from %s", cfg.RoutingPolicyPath)
		}
	}

	// Build notification providers; channels without credentials run simulated
	var chat notify.ChatSender
	switch cfg.ChatProvider {
	case "chatwork":
		chat = notify.NewChatworkSender(cfg.ChatworkToken)
		log.Printf("Chat channel: chatwork")
	case "slack":
		chat = notify.NewSlackSender(cfg.SlackBotToken)
		log.Printf("Chat channel: slack")
	default:
		chat = &notify.SimulatedSender{Delay: cfg.SimulatedSendDelay}
		log.Printf("Chat channel: simulated")
	}

	var email notify.EmailSender
	if cfg.SMTPHost != "" {
		email = notify.NewSMTPSender(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
		log.Printf("Email channel: smtp relay %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	} else {
		email = &notify.SimulatedSender{Delay: cfg.SimulatedSendDelay}
		log.Printf("Email channel: simulated")
	}

	var sms notify.SMSSender
	if cfg.SMSGatewayURL != "" {
		sms = notify.NewSMSGatewaySender(cfg.SMSGatewayURL, cfg.SMSGatewayKey, cfg.SMSFrom)
		log.Printf("SMS channel: gateway %s", cfg.SMSGatewayURL)
	} else {
		sms = &notify.SimulatedSender{Delay: cfg.SimulatedSendDelay}
		log.Printf("SMS channel: simulated")
	}

	// Dashboard live event feed
	hub := events.NewHub()

	// Notification dispatcher with its background worker
	dispatcher := notify.NewDispatcher(db, policy, chat, email, sms)
	dispatcher.SetPublisher(hub)

	dispatchCtx, dispatchCancel := context.WithCancel(context.Background())
	dispatcher.Start(dispatchCtx)
	log.Printf("Notification dispatcher started")

	// AI advisory client (settings live in the database)
	advisorClient := advisor.NewClient(db)

	// Alert ingestion service
	alertService := services.NewAlertService(db, advisorClient, dispatcher)
	alertService.SetPublisher(hub)

	// Reaper for notifications abandoned mid-delivery
	reaper := jobs.NewPendingReaper(db, jobs.DefaultPendingMaxAge)
	reaperStop := make(chan struct{})
	go reaper.Start(time.Minute, reaperStop)

	// Set up HTTP server routes
	apiHandler := handlers.NewAPIHandler(db, alertService, advisorClient, hub)
	authHandler := handlers.NewAuthHandler(jwtAuthMiddleware)
	healthHandler := handlers.NewHealthHandler(db, hub)

	mux := http.NewServeMux()
	apiHandler.SetupRoutes(mux)
	authHandler.SetupRoutes(mux)
	healthHandler.SetupRoutes(mux)

	// Wrap routes with request IDs, then CORS, then JWT authentication
	corsMiddleware := middleware.NewCORSMiddleware() // Allow all origins
	handler := middleware.RequestIDMiddleware(corsMiddleware.Wrap(jwtAuthMiddleware.Wrap(mux)))

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: handler,
	}

	go func() {
		log.Printf("Starting HTTP server on port %d", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	log.Println("opswatch is running! Press Ctrl+C to exit.")
	log.Printf("Health check endpoint: http://localhost:%d/health", cfg.HTTPPort)
	log.Printf("API base URL: http://localhost:%d/api", cfg.HTTPPort)
	log.Printf("Event feed: ws://localhost:%d/ws/events", cfg.HTTPPort)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Received shutdown signal, cleaning up...")

	log.Println("Shutting down HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}
	shutdownCancel()

	close(reaperStop)

	// Let the dispatcher drain queued notifications before closing the DB
	dispatchCancel()
	dispatcher.Wait()

	if err := database.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Shutdown complete")
}
