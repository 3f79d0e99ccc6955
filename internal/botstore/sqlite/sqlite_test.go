package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatements(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		expected []string
	}{
		{
			name:     "two statements",
			script:   "CREATE TABLE a (id INTEGER);\n\nCREATE TABLE b (id INTEGER);\n",
			expected: []string{"CREATE TABLE a (id INTEGER)", "CREATE TABLE b (id INTEGER)"},
		},
		{
			name:     "no trailing semicolon",
			script:   "CREATE TABLE a (id INTEGER)",
			expected: []string{"CREATE TABLE a (id INTEGER)"},
		},
		{
			name:     "blank",
			script:   " ;\n ; ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Statements(tt.script))
		})
	}
}

func TestBootstrap(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS fsm_states`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS bot_users`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	script := "CREATE TABLE IF NOT EXISTS fsm_states (chat_id INTEGER);\nCREATE TABLE IF NOT EXISTS bot_users (chat_id INTEGER);"
	require.NoError(t, Bootstrap(context.Background(), db, script, zap.NewNop()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootstrap_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE`).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	err = Bootstrap(context.Background(), db, "CREATE TABLE broken (", zap.NewNop())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootstrapFile_Missing(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = BootstrapFile(context.Background(), db, filepath.Join(t.TempDir(), "absent.ddl"), zap.NewNop())

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUserRepo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	mock.ExpectExec(`INSERT INTO bot_users .* ON CONFLICT \(chat_id\) DO UPDATE`).
		WithArgs(int64(9), "alice_tg", now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE bot_users SET username = \?, last_login = \? WHERE chat_id = \?`).
		WithArgs("alice", now, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Touch(context.Background(), 9, "alice_tg"))
	require.NoError(t, repo.RecordLogin(context.Background(), 9, "alice"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
