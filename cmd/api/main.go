package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linguista/internal/api"
	"linguista/internal/auth"
	"linguista/internal/config"
	"linguista/internal/database"
	"linguista/internal/mail"
	"linguista/internal/repository/postgres"
	"linguista/internal/service"

	"go.uber.org/zap"
)

const (
	shutdownTimeout = 10 * time.Second
	cleanupInterval = 24 * time.Hour
)

func main() {
	// Load configuration
	cfg, err := config.LoadAPI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Linguista API", zap.String("port", cfg.Port))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database with retries
	db, err := database.Connect(ctx, cfg.Database.DSN(), database.DefaultRetry, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	if err := database.Migrate(db, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	tokenRepo := postgres.NewTokenRepo(db)
	confirmationRepo := postgres.NewConfirmationRepo(db)
	languageRepo := postgres.NewLanguageRepo(db)
	wordRepo := postgres.NewWordRepo(db)
	wordTypeRepo := postgres.NewWordTypeRepo(db)
	collectionRepo := postgres.NewCollectionRepo(db)
	exerciseRepo := postgres.NewExerciseRepo(db)

	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.User,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	})

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		tokenRepo,
		confirmationRepo,
		auth.NewTokenManager(cfg.SecretKey, cfg.TokenTTL),
		service.Confirmation{
			Required: cfg.EmailConfirmationRequired,
			Mailer:   mailer,
			URL:      cfg.ConfirmationURL(),
		},
		logger,
	)
	maintenance := service.NewMaintenanceService(tokenRepo, confirmationRepo, logger)

	handler := api.NewServer(api.Deps{
		Auth:      authService,
		Profiles:  service.NewProfileService(userRepo, languageRepo, postgres.NewUserLanguageRepo(db), wordRepo),
		Languages: service.NewLanguageService(languageRepo),
		Vocabulary: service.NewVocabularyService(
			wordRepo,
			postgres.NewDefinitionRepo(db),
			postgres.NewExampleRepo(db),
			postgres.NewTranslationRepo(db),
			postgres.NewTagRepo(db),
			wordTypeRepo,
			postgres.NewWordLinkRepo(db),
			languageRepo,
		),
		WordTypes:   service.NewWordTypeService(wordTypeRepo),
		Collections: service.NewCollectionService(collectionRepo, wordRepo),
		Exercises: service.NewExerciseService(
			exerciseRepo,
			postgres.NewSettingsRepo(db),
			postgres.NewHistoryRepo(db),
		),
		Favorites:      service.NewFavoriteService(postgres.NewFavoriteRepo(db), wordRepo, collectionRepo, exerciseRepo),
		Admin:          service.NewAdminService(postgres.NewAdminRepo(db)),
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Start cleanup job in background
	go maintenance.Run(ctx, cleanupInterval)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, stopping API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}

	logger.Info("API stopped gracefully")
}
