package fsm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteStore keeps sessions in the bot's fsm_states table
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore creates a store over db
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Get loads the chat's session, empty when none is stored
func (s *SQLiteStore) Get(ctx context.Context, chatID int64) (*Session, error) {
	var state, data string
	err := s.db.QueryRowContext(ctx,
		`SELECT state, data FROM fsm_states WHERE chat_id = ?`, chatID,
	).Scan(&state, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return decode(state, data)
}

// Set stores the chat's session
func (s *SQLiteStore) Set(ctx context.Context, chatID int64, sess *Session) error {
	data, err := encode(sess)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO fsm_states (chat_id, state, data, updated)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (chat_id) DO UPDATE
		SET state = excluded.state, data = excluded.data, updated = excluded.updated`,
		chatID, string(sess.State), data, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Clear deletes the chat's session
func (s *SQLiteStore) Clear(ctx context.Context, chatID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM fsm_states WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
