package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linguista/internal/apiclient"
	"linguista/internal/botstore/sqlite"
	"linguista/internal/config"
	"linguista/internal/fsm"
	"linguista/internal/handler"
	"linguista/internal/middleware"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// sessionTTL bounds how long an idle chat keeps its state in Redis
const sessionTTL = 30 * 24 * time.Hour

func main() {
	// Load configuration
	cfg, err := config.LoadBot()
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

	logger.Info("Starting Linguista Bot", zap.String("api_url", cfg.APIURL))

	ctx := context.Background()

	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Fatal("Failed to open bot database", zap.Error(err))
	}
	defer db.Close()

	if err := sqlite.BootstrapFile(ctx, db, cfg.DDLPath, logger); err != nil {
		logger.Fatal("Failed to bootstrap bot database", zap.Error(err))
	}

	store, closeStore, err := newStore(ctx, cfg, db, logger)
	if err != nil {
		logger.Fatal("Failed to create session store", zap.Error(err))
	}
	defer closeStore()

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:     cfg.BotToken,
		Poller:    &tele.LongPoller{Timeout: 10 * time.Second},
		ParseMode: tele.ModeHTML,
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("chat_id", c.Sender().ID))
			}
			logger.Error("Update handling failed", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	bot.Use(middleware.Session(store, logger))

	h := handler.NewHandler(apiclient.New(cfg.APIURL, logger), sqlite.NewUserRepo(db), bot, logger)
	h.RegisterHandlers(bot)

	logger.Info("Handlers registered")

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	bot.Stop()

	logger.Info("Bot stopped gracefully")
}

// newStore keeps sessions in Redis when REDIS_URL is set and in the bot database otherwise
func newStore(ctx context.Context, cfg *config.BotConfig, db *sql.DB, logger *zap.Logger) (fsm.Store, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info("Using SQLite session store", zap.String("path", cfg.DBPath))
		return fsm.NewSQLiteStore(db), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Using Redis session store", zap.String("addr", opts.Addr))
	return fsm.NewRedisStore(client, sessionTTL), func() { client.Close() }, nil
}
