package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tg-moderator/internal/bot"
	"tg-moderator/internal/classifier"
	"tg-moderator/internal/config"
	"tg-moderator/internal/crash"
	"tg-moderator/internal/gateway"
	"tg-moderator/internal/handler"
	"tg-moderator/internal/logger"
	"tg-moderator/internal/moderation"
	"tg-moderator/internal/storage"
)

func main() {
	defer crash.RecoverWithStackAndExit("main")

	// Define command line flags
	configPath := flag.String("config", "configs/config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging first
	if err := logger.Setup(cfg); err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	// The violation store is required: without it the escalation counter
	// and the audit log are lost
	if err := storage.Initialize(cfg); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}

	repository := storage.NewViolationRepository(storage.GetDB())
	if err := repository.MigrateTables(); err != nil {
		logger.Fatalf("Failed to migrate database tables: %v", err)
	}

	cl, err := classifier.New(cfg)
	if err != nil {
		logger.Fatalf("Failed to create classifier: %v", err)
	}

	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize bot with configuration
	botService, server, err := bot.Initialize(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize bot: %v", err)
	}

	engine := moderation.NewEngine(
		gateway.NewTelegramGateway(botService.Bot),
		cl,
		repository,
		cfg.Bot.Language,
	)

	// Initialize handler with configuration
	handler.Initialize(cfg)

	// Start HTTP server in a goroutine
	crash.SafeGoroutine("webhook-server", func() {
		if err := server.Start(); err != nil {
			logger.Fatalf("HTTP server error: %v", err)
		}
	})

	// Give server time to start
	time.Sleep(500 * time.Millisecond)
	logger.Infof("HTTP server is ready, starting bot handler...")

	// Setup and start message handlers
	handler.SetupMessageHandlers(botService.Handler, botService.Bot, engine)
	botService.Start()

	// Create a channel for receiving OS signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for signal
	sig := <-sigChan
	logger.Infof("Received signal: %v, shutting down...", sig)

	botService.Stop()

	// Gracefully shutdown server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}

	logger.Infof("Server gracefully stopped")
}
