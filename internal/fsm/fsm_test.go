package fsm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Next(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected State
		ok       bool
	}{
		{name: "registration username", state: RegistrationUsername, expected: RegistrationEmail, ok: true},
		{name: "registration email", state: RegistrationEmail, expected: RegistrationPassword1, ok: true},
		{name: "registration password1", state: RegistrationPassword1, expected: RegistrationPassword2, ok: true},
		{name: "registration ends", state: RegistrationPassword2, ok: false},
		{name: "authorization password", state: AuthorizationPassword, expected: AuthorizedToken, ok: true},
		{name: "profile edit returns to profile", state: ProfileFirstNameUpdate, expected: ProfileRetrieve, ok: true},
		{name: "none", state: None, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := tt.state.Next()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, next)
		})
	}
}

func TestState_Group(t *testing.T) {
	assert.Equal(t, "Registration", RegistrationPassword2.Group())
	assert.Equal(t, "UserProfile", ProfileImageUpdate.Group())
	assert.Equal(t, "", None.Group())
}

func TestState_ValidAndFinal(t *testing.T) {
	assert.True(t, None.Valid())
	assert.True(t, AddLearningLanguageLanguage.Valid())
	assert.False(t, State("Registration:nickname").Valid())

	assert.True(t, RegistrationPassword2.Final())
	assert.True(t, AuthorizedToken.Final())
	assert.False(t, RegistrationUsername.Final())
	assert.False(t, None.Final())
}

func TestSession_Advance(t *testing.T) {
	s := NewSession()
	s.State = RegistrationUsername

	require.NoError(t, s.Advance())
	assert.Equal(t, RegistrationEmail, s.State)

	s.State = RegistrationPassword2
	assert.Error(t, s.Advance())
	assert.Equal(t, RegistrationPassword2, s.State)
}

func TestSession_Reset(t *testing.T) {
	t.Run("keeps token", func(t *testing.T) {
		s := NewSession()
		s.State = ProfileFirstNameUpdate
		s.Set(KeyToken, "abc")
		s.Set(KeyUsername, "alice")

		s.Reset(false)

		assert.Equal(t, AuthorizedToken, s.State)
		assert.Equal(t, "abc", s.Token())
		assert.Empty(t, s.Get(KeyUsername))
	})

	t.Run("drops token", func(t *testing.T) {
		s := NewSession()
		s.State = AuthorizedToken
		s.Set(KeyToken, "abc")

		s.Reset(true)

		assert.Equal(t, None, s.State)
		assert.Empty(t, s.Token())
	})

	t.Run("anonymous", func(t *testing.T) {
		s := NewSession()
		s.State = RegistrationEmail

		s.Reset(false)

		assert.Equal(t, None, s.State)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, None, s.State)

	s.State = RegistrationEmail
	s.Set(KeyUsername, "alice")
	require.NoError(t, store.Set(ctx, 42, s))

	// stored copy is not affected by later changes
	s.Set(KeyUsername, "bob")

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, RegistrationEmail, got.State)
	assert.Equal(t, "alice", got.Get(KeyUsername))

	require.NoError(t, store.Clear(ctx, 42))
	got, err = store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, None, got.State)
	assert.Empty(t, got.Data)
}
