// Package sqlite holds the bot's local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Open opens the bot database at path
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows one writer at a time
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// Statements splits a DDL script into single statements
func Statements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// Bootstrap applies a DDL script in one transaction
func Bootstrap(ctx context.Context, db *sql.DB, script string, logger *zap.Logger) error {
	stmts := Statements(script)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bootstrap: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply ddl: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bootstrap: %w", err)
	}

	logger.Info("Bot database ready", zap.Int("statements", len(stmts)))
	return nil
}

// BootstrapFile applies the DDL script stored at path
func BootstrapFile(ctx context.Context, db *sql.DB, path string, logger *zap.Logger) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read ddl: %w", err)
	}
	return Bootstrap(ctx, db, string(script), logger)
}

// UserRepo records Telegram users seen by the bot
type UserRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewUserRepo creates a new bot user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db, now: time.Now}
}

// Touch records a chat, keeping its first_seen time
func (r *UserRepo) Touch(ctx context.Context, chatID int64, tgUsername string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bot_users (chat_id, tg_username, first_seen)
		VALUES (?, ?, ?)
		ON CONFLICT (chat_id) DO UPDATE SET tg_username = excluded.tg_username`,
		chatID, tgUsername, r.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("touch bot user: %w", err)
	}
	return nil
}

// RecordLogin stores the Linguista username the chat logged in as
func (r *UserRepo) RecordLogin(ctx context.Context, chatID int64, username string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE bot_users SET username = ?, last_login = ? WHERE chat_id = ?`,
		username, r.now().UTC(), chatID,
	)
	if err != nil {
		return fmt.Errorf("record bot login: %w", err)
	}
	return nil
}
