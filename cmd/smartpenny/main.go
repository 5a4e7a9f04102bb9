package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"smartpenny/internal/assistant"
	"smartpenny/internal/auth"
	"smartpenny/internal/config"
	"smartpenny/internal/events"
	apphttp "smartpenny/internal/http"
	applog "smartpenny/internal/log"
	"smartpenny/internal/ratelimit"
	"smartpenny/internal/service"
	"smartpenny/internal/storage"
	"smartpenny/internal/storage/memory"
	"smartpenny/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	var (
		records store.Records
		deals   store.DealStore
	)
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite backend",
				applog.FieldError, err, "db_path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		records, deals = repo, repo
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
	default:
		mem := memory.New()
		records, deals = mem, mem
		logger.Info("Initialized memory backend")
	}

	// Record-change events are best-effort: a missing broker downgrades the
	// service, it does not stop it.
	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		p, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, record-change events disabled",
				applog.FieldError, err)
		} else {
			publisher = p
			defer publisher.Close()
			logger.Info("Connected to AMQP broker",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, chat turns will fail")
	}
	completer := assistant.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)

	identity := auth.NewTokenIdentity(auth.ParseTokenPairs(cfg.AuthTokens))
	counter := ratelimit.NewFixedWindow(ratelimit.Config{Window: cfg.ChatRateWindow})

	recordService := service.NewRecordService(records, publisher, logger)
	chatService := service.NewChatService(records, counter, cfg.ChatRateLimit, completer, cfg.ChatTimeout, logger)
	dealService := service.NewDealService(deals, logger)

	srv := apphttp.NewServer(":"+cfg.Port, recordService, chatService, dealService, identity, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting smartpenny server",
		"port", cfg.Port, "backend", cfg.DataBackend, "model", cfg.GeminiModel)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
