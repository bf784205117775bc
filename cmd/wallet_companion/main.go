package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"wallet_companion/internal/app/service"
	"wallet_companion/internal/config"
	"wallet_companion/internal/infrastructure/assistant"
	"wallet_companion/internal/infrastructure/restapi"
	"wallet_companion/internal/infrastructure/stacksapi"
	"wallet_companion/internal/infrastructure/walletagent"
	"wallet_companion/internal/infrastructure/ws"
	"wallet_companion/internal/pkg/logger"
	"wallet_companion/internal/pkg/utils"
	"wallet_companion/pkg/metrics"
)

func main() {
	// Bootstrap logging with logrus until the config is loaded.
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// Route the slog default through zap so all three logging surfaces agree.
	logger.InitZapBridge(zapLogger)

	// Load configuration
	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Update log level from config
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			log.SetOutput(file)
		} else {
			log.Infof("Failed to log to file, using default stdout: %v", err)
		}
	}

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	// Initialize Prometheus metrics
	metrics.MustRegisterMetrics()

	// External collaborators
	chainClient := stacksapi.NewClient(
		cfg.Network.NodeBaseURL,
		time.Duration(cfg.Network.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	assistantClient := assistant.NewClient(
		cfg.Assistant.BaseURL,
		time.Duration(cfg.Assistant.RequestTimeoutMillis)*time.Millisecond,
		cfg.Assistant.RateLimit,
		cfg.Assistant.BurstLimit,
		zapLogger,
	)
	walletClient := walletagent.NewClient(
		cfg.WalletAgent.BaseURL,
		cfg.Network.Name,
		time.Duration(cfg.WalletAgent.ConnectTimeoutMillis)*time.Millisecond,
		time.Duration(cfg.WalletAgent.ApprovalTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	zapLogger.Info("External clients initialized",
		zap.String("node", cfg.Network.NodeBaseURL),
		zap.String("assistant", cfg.Assistant.BaseURL),
		zap.String("walletAgent", cfg.WalletAgent.BaseURL))

	// Event stream hub
	hub := ws.NewHub(zapLogger)

	// Orchestration core
	sessionService := service.NewSessionService(walletClient, chainClient, hub, cfg, zapLogger)
	counterService := service.NewCounterService(assistantClient, hub, cfg, zapLogger)
	orchestrator := service.NewOrchestrator(walletClient, sessionService, counterService, hub, cfg, zapLogger)
	transferService := service.NewTransferService(assistantClient, orchestrator, sessionService, hub, cfg, zapLogger)
	chatService := service.NewChatService(assistantClient, counterService, orchestrator, transferService, hub, cfg, zapLogger)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Counter.PollingEnabled {
		poller := service.NewCounterPoller(counterService, cfg, zapLogger)
		go poller.Run(rootCtx)
	}

	// HTTP server
	handler := restapi.NewHandler(sessionService, counterService, orchestrator, transferService, chatService, cfg.Contracts)
	router := restapi.SetupRouter(handler, hub)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info("Starting gateway", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	zapLogger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
	zapLogger.Info("Gateway stopped")
}
