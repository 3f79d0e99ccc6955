package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"linguista/internal/apperr"
	"linguista/internal/auth"
	"linguista/internal/domain"
	"linguista/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type authMocks struct {
	users         *testutil.MockUserRepository
	tokens        *testutil.MockTokenRepository
	confirmations *testutil.MockConfirmationRepository
	mailer        *testutil.MockMailer
}

func newAuthService(confirm bool) (*AuthService, authMocks) {
	m := authMocks{
		users:         new(testutil.MockUserRepository),
		tokens:        new(testutil.MockTokenRepository),
		confirmations: new(testutil.MockConfirmationRepository),
		mailer:        new(testutil.MockMailer),
	}
	confirmation := Confirmation{
		Required: confirm,
		Mailer:   m.mailer,
		URL:      "https://linguista.online/api/v1/auth/registration/account-confirm-email",
	}
	s := NewAuthService(m.users, m.tokens, m.confirmations, auth.NewTokenManager("secret", time.Hour), confirmation, testutil.NewTestLogger())
	return s, m
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		expectedField string
	}{
		{
			name:          "bad username",
			input:         RegisterInput{Username: "bad name", Email: "a@example.com", Password1: "password1", Password2: "password1"},
			expectedField: "username",
		},
		{
			name:          "bad email",
			input:         RegisterInput{Username: "alice", Email: "nope", Password1: "password1", Password2: "password1"},
			expectedField: "email",
		},
		{
			name:          "short password",
			input:         RegisterInput{Username: "alice", Email: "a@example.com", Password1: "short", Password2: "short"},
			expectedField: "password1",
		},
		{
			name:          "mismatch",
			input:         RegisterInput{Username: "alice", Email: "a@example.com", Password1: "password1", Password2: "password2"},
			expectedField: "non_field_errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newAuthService(false)

			_, err := s.Register(context.Background(), tt.input)

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.expectedField)
			m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	s, m := newAuthService(false)
	m.users.On("GetByUsername", mock.Anything, "alice").Return(testutil.NewTestUser("alice"), nil)

	_, err := s.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "a@example.com", Password1: "password1", Password2: "password1",
	})

	assert.EqualError(t, err, "validation failed: username: "+MsgUsernameTaken)
}

func TestAuthService_Register_Active(t *testing.T) {
	s, m := newAuthService(false)
	m.users.On("GetByUsername", mock.Anything, "alice").Return(nil, apperr.ErrNotFound)
	m.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "alice" && u.IsActive && auth.CheckPassword(u.PasswordHash, "password1")
	})).Return(nil)

	res, err := s.Register(context.Background(), RegisterInput{
		Username: " alice ", Email: "a@example.com", Password1: "password1", Password2: "password1",
	})

	require.NoError(t, err)
	assert.False(t, res.ConfirmationRequired)
	assert.Empty(t, res.ConfirmationKey)
	m.users.AssertExpectations(t)
	m.confirmations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_WithConfirmation(t *testing.T) {
	s, m := newAuthService(true)
	m.users.On("GetByUsername", mock.Anything, "alice").Return(nil, apperr.ErrNotFound)
	m.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool { return !u.IsActive })).Return(nil)
	m.confirmations.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailConfirmation")).Return(nil)
	m.mailer.On("Send", mock.Anything, "a@example.com", confirmationSubject, mock.AnythingOfType("string")).Return(nil)

	res, err := s.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "a@example.com", Password1: "password1", Password2: "password1",
	})

	require.NoError(t, err)
	assert.True(t, res.ConfirmationRequired)
	assert.Len(t, res.ConfirmationKey, confirmationKeyLength)
	m.confirmations.AssertExpectations(t)
	m.mailer.AssertExpectations(t)

	body := m.mailer.Calls[0].Arguments.String(3)
	assert.Contains(t, body, "Hello, alice!")
	assert.Contains(t, body, "https://linguista.online/api/v1/auth/registration/account-confirm-email/"+res.ConfirmationKey+"/")
}

func TestAuthService_Register_MailFailure(t *testing.T) {
	s, m := newAuthService(true)
	m.users.On("GetByUsername", mock.Anything, "alice").Return(nil, apperr.ErrNotFound)
	m.users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	m.confirmations.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailConfirmation")).Return(nil)
	m.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("relay down"))

	_, err := s.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "a@example.com", Password1: "password1", Password2: "password1",
	})

	assert.ErrorContains(t, err, "relay down")
	assert.Equal(t, http.StatusInternalServerError, apperr.HTTPStatus(err))
}

func TestAuthService_Register_KeyIsNotLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := authMocks{
		users:         new(testutil.MockUserRepository),
		tokens:        new(testutil.MockTokenRepository),
		confirmations: new(testutil.MockConfirmationRepository),
		mailer:        new(testutil.MockMailer),
	}
	s := NewAuthService(m.users, m.tokens, m.confirmations, auth.NewTokenManager("secret", time.Hour),
		Confirmation{Required: true, Mailer: m.mailer, URL: "http://localhost:8000/confirm"}, zap.New(core))
	m.users.On("GetByUsername", mock.Anything, "alice").Return(nil, apperr.ErrNotFound)
	m.users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	m.confirmations.On("Create", mock.Anything, mock.AnythingOfType("*domain.EmailConfirmation")).Return(nil)
	m.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	res, err := s.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "a@example.com", Password1: "password1", Password2: "password1",
	})

	require.NoError(t, err)
	require.NotZero(t, logs.Len())
	for _, entry := range logs.All() {
		for _, v := range entry.ContextMap() {
			assert.NotContains(t, fmt.Sprint(v), res.ConfirmationKey)
		}
	}
}

func TestAuthService_ConfirmEmail(t *testing.T) {
	s, m := newAuthService(true)
	user := testutil.NewTestUser("alice")
	user.IsActive = false

	m.confirmations.On("Get", mock.Anything, "key").
		Return(&domain.EmailConfirmation{Key: "key", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}, nil)
	m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	m.users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool { return u.IsActive })).Return(nil)
	m.confirmations.On("Delete", mock.Anything, "key").Return(nil)

	require.NoError(t, s.ConfirmEmail(context.Background(), "key"))
	m.users.AssertExpectations(t)
	m.confirmations.AssertExpectations(t)
}

func TestAuthService_ConfirmEmail_Expired(t *testing.T) {
	s, m := newAuthService(true)
	m.confirmations.On("Get", mock.Anything, "key").
		Return(&domain.EmailConfirmation{Key: "key", ExpiresAt: time.Now().Add(-time.Minute)}, nil)

	assert.ErrorIs(t, s.ConfirmEmail(context.Background(), "key"), apperr.ErrNotFound)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("password1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		input      LoginInput
		setup      func(m authMocks, u *domain.User)
		inactive   bool
		expectedOK bool
	}{
		{
			name:  "by username",
			input: LoginInput{Username: "alice", Password: "password1"},
			setup: func(m authMocks, u *domain.User) {
				m.users.On("GetByUsername", mock.Anything, "alice").Return(u, nil)
				m.tokens.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuthToken")).Return(nil)
			},
			expectedOK: true,
		},
		{
			name:  "by email",
			input: LoginInput{Email: "alice@example.com", Password: "password1"},
			setup: func(m authMocks, u *domain.User) {
				m.users.On("GetByEmail", mock.Anything, "alice@example.com").Return(u, nil)
				m.tokens.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuthToken")).Return(nil)
			},
			expectedOK: true,
		},
		{
			name:  "wrong password",
			input: LoginInput{Username: "alice", Password: "password2"},
			setup: func(m authMocks, u *domain.User) {
				m.users.On("GetByUsername", mock.Anything, "alice").Return(u, nil)
			},
		},
		{
			name:  "unknown user",
			input: LoginInput{Username: "bob", Password: "password1"},
			setup: func(m authMocks, u *domain.User) {
				m.users.On("GetByUsername", mock.Anything, "bob").Return(nil, apperr.ErrNotFound)
			},
		},
		{
			name:     "not confirmed",
			input:    LoginInput{Username: "alice", Password: "password1"},
			inactive: true,
			setup: func(m authMocks, u *domain.User) {
				m.users.On("GetByUsername", mock.Anything, "alice").Return(u, nil)
			},
		},
		{
			name:  "no identifier",
			input: LoginInput{Password: "password1"},
			setup: func(m authMocks, u *domain.User) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newAuthService(false)
			u := testutil.NewTestUser("alice")
			u.PasswordHash = hash
			u.IsActive = !tt.inactive
			tt.setup(m, u)

			token, err := s.Login(context.Background(), tt.input)

			if tt.expectedOK {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
			} else {
				var verr *apperr.ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Empty(t, token)
			}
			m.users.AssertExpectations(t)
			m.tokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	s, m := newAuthService(false)
	user := testutil.NewTestUser("alice")

	var stored *domain.AuthToken
	m.tokens.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuthToken")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.AuthToken) }).
		Return(nil)

	raw, err := s.IssueToken(context.Background(), user)
	require.NoError(t, err)
	require.NotNil(t, stored)

	m.tokens.On("Get", mock.Anything, stored.ID).Return(stored, nil)
	m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	got, tokenID, err := s.Authenticate(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, stored.ID, tokenID)
}

func TestAuthService_Authenticate_Revoked(t *testing.T) {
	s, m := newAuthService(false)
	user := testutil.NewTestUser("alice")
	m.tokens.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.tokens.On("Get", mock.Anything, mock.Anything).Return(nil, apperr.ErrNotFound)

	raw, err := s.IssueToken(context.Background(), user)
	require.NoError(t, err)

	_, _, err = s.Authenticate(context.Background(), raw)

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestAuthService_Authenticate_Garbage(t *testing.T) {
	s, _ := newAuthService(false)

	_, _, err := s.Authenticate(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestAuthService_Logout(t *testing.T) {
	s, m := newAuthService(false)
	id := uuid.New()
	m.tokens.On("Delete", mock.Anything, id).Return(nil)

	assert.NoError(t, s.Logout(context.Background(), id))
	m.tokens.AssertExpectations(t)
}

func TestAuthService_CreateSuperuser(t *testing.T) {
	s, m := newAuthService(true)
	m.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.IsStaff && u.IsActive
	})).Return(nil)

	u, err := s.CreateSuperuser(context.Background(), "admin", "admin@example.com", "password1")

	require.NoError(t, err)
	assert.True(t, u.IsStaff)
	m.users.AssertExpectations(t)
}
