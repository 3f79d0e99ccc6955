package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"linguista/internal/botstore/sqlite"
	"linguista/internal/config"

	"go.uber.org/zap"
)

func main() {
	// Parse command line flags
	dbPath := flag.String("db", envOr("BOT_DB_PATH", "bot.sqlite3"), "Path to the bot SQLite database")
	ddlPath := flag.String("ddl", envOr("BOT_DDL_PATH", "sqlite.ddl"), "Path to the DDL script")
	flag.Parse()

	logger, err := config.NewLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		logger.Fatal("Failed to open bot database", zap.String("path", *dbPath), zap.Error(err))
	}
	defer db.Close()

	if err := sqlite.BootstrapFile(ctx, db, *ddlPath, logger); err != nil {
		logger.Fatal("Failed to apply DDL", zap.String("ddl", *ddlPath), zap.Error(err))
	}
}

func envOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
