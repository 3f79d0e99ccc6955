package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	tokenID, userID := uuid.New(), uuid.New()

	token, err := m.Generate(tokenID, userID, "alice", time.Now())
	require.NoError(t, err)

	gotToken, gotUser, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, gotToken)
	assert.Equal(t, userID, gotUser)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)

	token, err := m.Generate(uuid.New(), uuid.New(), "alice", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, _, err = m.Parse(token)
	assert.Error(t, err)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).Generate(uuid.New(), uuid.New(), "alice", time.Now())
	require.NoError(t, err)

	_, _, err = NewTokenManager("two", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
}

func TestValidUsername(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"alice", true},
		{"alice.b+c@d-e_f", true},
		{"Вася", true},
		{"", false},
		{"with space", false},
		{"semi;colon", false},
		{string(make([]byte, 151)), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidUsername(tt.input))
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("alice@example.com"))
	assert.True(t, ValidEmail("a.b@mail.example.org"))
	assert.False(t, ValidEmail("alice"))
	assert.False(t, ValidEmail("Alice <alice@example.com>"))
	assert.False(t, ValidEmail("alice@localhost"))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("12345678"))
	assert.False(t, ValidPassword("1234567"))
}
