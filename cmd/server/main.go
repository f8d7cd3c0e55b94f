package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"registrly/leads-service/internal/assistant"
	"registrly/leads-service/internal/config"
	"registrly/leads-service/internal/handler"
	"registrly/leads-service/internal/middleware"
	"registrly/leads-service/internal/repository"
	"registrly/leads-service/internal/service"
	"registrly/leads-service/pkg/db"
	"registrly/leads-service/pkg/helpers"
	"registrly/leads-service/pkg/logger"
	"registrly/leads-service/pkg/metrics"
)

const serviceName = "leads_service"

func main() {
	// Load environment variables from config.env, falling back to .env
	if err := godotenv.Load("config.env"); err != nil {
		if err2 := godotenv.Load(); err2 != nil {
			log.Printf("Warning: config.env and .env files not found, using environment variables only")
		}
	}

	cfg := config.LoadConfig()
	logg := logger.NewLogger(serviceName)
	m := metrics.NewMetrics(serviceName)

	conn, err := db.Connect(context.Background(), cfg.Database, logg)
	if err != nil {
		logg.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := conn.EnsureSchema(context.Background()); err != nil {
		logg.Fatalf("Failed to ensure schema: %v", err)
	}
	logg.Info("Successfully connected to database")

	if cfg.Email.ResendAPIKey == "" {
		logg.Warn("RESEND_API_KEY is not set, email delivery will fail")
	}

	// Wiring. Clients are constructed here and injected; nothing is shared
	// through package-level state.
	searchRepo := repository.NewSearchRepository(conn.DB)
	emailChannel := service.NewResendEmailChannel(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	completer := assistant.NewClient(cfg.Assistant.APIKey,
		assistant.WithBaseURL(cfg.Assistant.BaseURL),
		assistant.WithModel(cfg.Assistant.Model),
	)

	dispatcher := service.NewDispatcher(emailChannel, logg, m)
	leadService := service.NewLeadService(searchRepo, emailChannel, logg)
	paymentService := service.NewPaymentService(searchRepo, emailChannel, logg)
	chatService := service.NewChatService(completer, logg)

	validator := helpers.NewCustomValidator()

	campaignHandler := handler.NewCampaignHandler(dispatcher, logg)
	leadHandler := handler.NewLeadHandler(leadService, validator, logg)
	webhookHandler := handler.NewWebhookHandler(paymentService, cfg.Payment.WebhookSecret, logg)
	chatHandler := handler.NewChatHandler(chatService, logg)
	healthHandler := handler.NewHealthHandler(conn.DB)

	mux := http.NewServeMux()
	mux.Handle("/api/campaigns/followup", metrics.Middleware(m, "campaigns_followup")(http.HandlerFunc(campaignHandler.SendFollowUps)))
	mux.Handle("/api/leads", metrics.Middleware(m, "leads_create")(http.HandlerFunc(leadHandler.CreateLead)))
	mux.Handle("/api/leads/", metrics.Middleware(m, "leads_get")(http.HandlerFunc(leadHandler.GetLead)))
	mux.Handle("/api/webhooks/payment", metrics.Middleware(m, "webhooks_payment")(http.HandlerFunc(webhookHandler.HandlePaymentEvent)))
	mux.Handle("/api/chat", metrics.Middleware(m, "chat")(middleware.ThrottleMiddleware(30, time.Minute)(http.HandlerFunc(chatHandler.Chat))))
	mux.HandleFunc("/healthz", healthHandler.Healthz)
	mux.Handle("/metrics", promhttp.Handler())

	root := middleware.RecoveryMiddleware(logg)(
		middleware.LoggingMiddleware(logg)(
			middleware.CORSMiddleware(mux),
		),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Server.HTTPPort,
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Periodically export DB pool stats
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			stats := conn.DB.Stats()
			m.RecordDBPoolStats(stats.OpenConnections, stats.InUse, stats.Idle, stats.WaitCount, stats.WaitDuration)
		}
	}()

	go func() {
		logg.Infof("Leads service listening on port %s", cfg.Server.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logg.Errorf("Forced shutdown: %v", err)
	}
	logg.Info("Server stopped")
}
