package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comptlabs/waitlist/internal/adapter/airtable"
	"github.com/comptlabs/waitlist/internal/adapter/llm"
	"github.com/comptlabs/waitlist/internal/adapter/resend"
	"github.com/comptlabs/waitlist/internal/config"
	"github.com/comptlabs/waitlist/internal/service"
	"github.com/comptlabs/waitlist/internal/session"
	transport "github.com/comptlabs/waitlist/internal/transport/http"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting waitlist backend",
		"port", cfg.Port,
		"airtableConfigured", cfg.AirtableAPIKey != "",
		"openaiConfigured", cfg.OpenAIAPIKey != "",
	)

	// External-service clients, constructed once and injected.
	airtableClient := airtable.NewClient("", cfg.AirtableAPIKey, cfg.AirtableBaseID, cfg.AirtableTableName, cfg.HTTPTimeout)
	emailClient := resend.NewClient("", cfg.ResendAPIKey, cfg.FromEmail, cfg.ReplyToEmail, cfg.HTTPTimeout)
	llmClient := llm.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.LLMTimeout)

	svc := service.New(cfg, airtableClient, emailClient, llmClient, logger)

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	defer sessions.Close()

	server := transport.NewServer(cfg, svc, sessions)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("listening", "port", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
