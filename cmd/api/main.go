package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"eventconnect/config"
	"eventconnect/internal/adapters/auth"
	"eventconnect/internal/adapters/email"
	"eventconnect/internal/adapters/llm"
	"eventconnect/internal/adapters/storage"
	httpdelivery "eventconnect/internal/delivery/http"
	"eventconnect/internal/delivery/http/controllers"
	"eventconnect/internal/delivery/http/middleware"
	"eventconnect/internal/repository/postgres"
	"eventconnect/internal/services"
)

// @title EventConnect API
// @version 1.0
// @description Connects event organizers with service partners and handles AI-drafted outreach email previews and dispatch.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	partnerRepo := postgres.NewPartnerRepository(db)
	eventRepo := postgres.NewEventRequestRepository(db)
	fileRepo := postgres.NewEventFileRepository(db)
	selectionRepo := postgres.NewSelectedPartnerRepository(db)
	inquiryRepo := postgres.NewInquiryRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer, tokenVerifier := auth.NewJWTManager(cfg.JWTSecret)

	generator := llm.NewClient(llm.Config{
		APIKey:      cfg.OpenAIKey,
		Model:       cfg.OpenAIModel,
		Temperature: cfg.OpenAITemperature,
		MaxTokens:   cfg.OpenAIMaxTokens,
	}, &http.Client{Timeout: cfg.RequestTimeout})

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		Gmail: email.GmailConfig{
			ClientID:     cfg.GmailClientID,
			ClientSecret: cfg.GmailClientSecret,
			RefreshToken: cfg.GmailRefreshToken,
		},
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
		Timeout: cfg.RequestTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	fileStore, err := storage.NewFileStore(context.Background(), storage.StoreConfig{
		Provider: cfg.StorageProvider,
		S3: storage.S3Config{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Bucket:          cfg.S3Bucket,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create file store", "err", err)
		os.Exit(1)
	}

	// Services
	authService := services.NewAuthService(userRepo, partnerRepo, hasher, tokenIssuer, cfg.JWTExpiry)
	eventService := services.NewEventService(eventRepo, fileRepo, selectionRepo, partnerRepo, inquiryRepo, fileStore, cfg.RequestTimeout)
	partnerService := services.NewPartnerService(partnerRepo, inquiryRepo, cfg.RequestTimeout)
	outreachService := services.NewOutreachService(
		eventRepo, userRepo, selectionRepo, fileRepo, inquiryRepo,
		generator, mailer, fileStore, logger, cfg.RequestTimeout,
	)

	// Controllers and router
	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService)
	partnerController := controllers.NewPartnerController(logger, partnerService)
	outreachController := controllers.NewOutreachController(logger, outreachService, eventService)

	mux := httpdelivery.NewRouter(authController, eventController, partnerController, outreachController, tokenVerifier)
	handler := middleware.CORS(cfg.CORSOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
		}
	}
}
