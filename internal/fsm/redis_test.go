package fsm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Get(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, 0)

	mock.ExpectHMGet("linguista:fsm:7", "state", "data").
		SetVal([]interface{}{"Registration:email", `{"username":"alice"}`})

	s, err := store.Get(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, RegistrationEmail, s.State)
	assert.Equal(t, "alice", s.Get(KeyUsername))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_GetMissing(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, 0)

	mock.ExpectHMGet("linguista:fsm:7", "state", "data").SetVal([]interface{}{nil, nil})

	s, err := store.Get(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, None, s.State)
	assert.NotNil(t, s.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_GetError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, 0)

	mock.ExpectHMGet("linguista:fsm:7", "state", "data").SetErr(errors.New("connection refused"))

	_, err := store.Get(context.Background(), 7)

	assert.Error(t, err)
}

func TestRedisStore_Set(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, time.Hour)

	s := NewSession()
	s.State = AuthorizedToken
	s.Set(KeyToken, "abc")

	mock.ExpectHSet("linguista:fsm:7", "state", "Authorized:token", "data", `{"token":"abc"}`).SetVal(2)
	mock.ExpectExpire("linguista:fsm:7", time.Hour).SetVal(true)

	require.NoError(t, store.Set(context.Background(), 7, s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Clear(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, 0)

	mock.ExpectDel("linguista:fsm:7").SetVal(1)

	require.NoError(t, store.Clear(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}
