package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"linguista/internal/apperr"
	"linguista/internal/auth"
	"linguista/internal/domain"
	"linguista/internal/mail"
	"linguista/internal/repository"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const (
	confirmationKeyLength = 64
	confirmationTTL       = 3 * 24 * time.Hour
)

// Messages returned in validation errors
const (
	MsgUsernameTaken    = "A user with that username already exists."
	MsgInvalidUsername  = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgInvalidEmail     = "Enter a valid email address."
	MsgPasswordTooShort = "This password is too short. It must contain at least 8 characters."
	MsgPasswordMismatch = "The two password fields didn't match."
	MsgBadCredentials   = "Unable to log in with provided credentials."
	MsgEmailNotVerified = "E-mail is not verified."
	MsgConfirmationSent = "Verification e-mail sent."
)

// RegisterInput is the registration form
type RegisterInput struct {
	Username  string
	Email     string
	Password1 string
	Password2 string
}

// RegisterResult tells the caller whether the account still needs confirmation
type RegisterResult struct {
	User                 *domain.User
	ConfirmationRequired bool
	ConfirmationKey      string
}

// Confirmation configures e-mail confirmation of new accounts
type Confirmation struct {
	Required bool
	Mailer   mail.Mailer
	// URL is the confirmation link prefix, the key and a slash are appended
	URL string
}

const confirmationSubject = "Confirm your e-mail address"

const confirmationBody = `Hello, %s!

To finish signing up for Linguista, confirm your e-mail address by opening this link:

%s

The link is valid for %d days.
`

// LoginInput is the login form; either Username or Email identifies the user
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// AuthService handles registration and token authentication
type AuthService struct {
	users           repository.UserRepository
	tokens          repository.TokenRepository
	confirmations   repository.ConfirmationRepository
	tokenManager    *auth.TokenManager
	confirmation    Confirmation
	logger          *zap.Logger
	now             func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	confirmations repository.ConfirmationRepository,
	tokenManager *auth.TokenManager,
	confirmation Confirmation,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:           users,
		tokens:          tokens,
		confirmations:   confirmations,
		tokenManager:    tokenManager,
		confirmation:    confirmation,
		logger:          logger,
		now:             time.Now,
	}
}

// Register creates an account. Without confirmation the account is active immediately.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	var verr apperr.ValidationError
	if !auth.ValidUsername(in.Username) {
		verr.Add("username", MsgInvalidUsername)
	}
	if !auth.ValidEmail(in.Email) {
		verr.Add("email", MsgInvalidEmail)
	}
	if !auth.ValidPassword(in.Password1) {
		verr.Add("password1", MsgPasswordTooShort)
	}
	if in.Password1 != in.Password2 {
		verr.Add("non_field_errors", MsgPasswordMismatch)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		return nil, apperr.Invalid("username", MsgUsernameTaken)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	user, err := s.newUser(in.Username, in.Email, in.Password1)
	if err != nil {
		return nil, err
	}
	user.IsActive = !s.confirmation.Required

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return nil, apperr.Invalid("username", MsgUsernameTaken)
		}
		return nil, err
	}

	result := &RegisterResult{User: user, ConfirmationRequired: s.confirmation.Required}
	if !s.confirmation.Required {
		s.logger.Info("User registered", zap.String("username", user.Username))
		return result, nil
	}

	key, err := gonanoid.New(confirmationKeyLength)
	if err != nil {
		return nil, fmt.Errorf("generate confirmation key: %w", err)
	}
	now := s.now()
	confirmation := &domain.EmailConfirmation{Key: key, UserID: user.ID, Created: now, ExpiresAt: now.Add(confirmationTTL)}
	if err := s.confirmations.Create(ctx, confirmation); err != nil {
		return nil, err
	}
	result.ConfirmationKey = key

	link := strings.TrimRight(s.confirmation.URL, "/") + "/" + key + "/"
	body := fmt.Sprintf(confirmationBody, user.Username, link, int(confirmationTTL.Hours()/24))
	if err := s.confirmation.Mailer.Send(ctx, user.Email, confirmationSubject, body); err != nil {
		s.logger.Error("Failed to send confirmation e-mail",
			zap.String("username", user.Username),
			zap.Error(err),
		)
		return nil, fmt.Errorf("send confirmation: %w", err)
	}

	s.logger.Info("User registered, confirmation e-mail sent", zap.String("username", user.Username))
	return result, nil
}

// ConfirmEmail activates the account that owns key
func (s *AuthService) ConfirmEmail(ctx context.Context, key string) error {
	c, err := s.confirmations.Get(ctx, key)
	if err != nil {
		return err
	}
	if s.now().After(c.ExpiresAt) {
		return apperr.ErrNotFound
	}

	user, err := s.users.GetByID(ctx, c.UserID)
	if err != nil {
		return err
	}
	user.IsActive = true
	now := s.now()
	user.Modified = &now
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	return s.confirmations.Delete(ctx, key)
}

// Login checks credentials and issues a new token
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	var (
		user *domain.User
		err  error
	)
	switch {
	case in.Username != "":
		user, err = s.users.GetByUsername(ctx, in.Username)
	case in.Email != "":
		user, err = s.users.GetByEmail(ctx, in.Email)
	default:
		return "", apperr.Invalid("non_field_errors", `Must include "username" or "email" and "password".`)
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return "", apperr.Invalid("non_field_errors", MsgBadCredentials)
	}
	if err != nil {
		return "", err
	}

	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		return "", apperr.Invalid("non_field_errors", MsgBadCredentials)
	}
	if !user.IsActive {
		return "", apperr.Invalid("non_field_errors", MsgEmailNotVerified)
	}

	return s.IssueToken(ctx, user)
}

// IssueToken stores a token row and returns its signed form
func (s *AuthService) IssueToken(ctx context.Context, user *domain.User) (string, error) {
	now := s.now()
	t := &domain.AuthToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Created:   now,
		ExpiresAt: now.Add(s.tokenManager.TTL()),
	}
	if err := s.tokens.Create(ctx, t); err != nil {
		return "", err
	}

	signed, err := s.tokenManager.Generate(t.ID, user.ID, user.Username, now)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Logout revokes a token
func (s *AuthService) Logout(ctx context.Context, tokenID uuid.UUID) error {
	return s.tokens.Delete(ctx, tokenID)
}

// Authenticate resolves a raw token to its user
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*domain.User, uuid.UUID, error) {
	tokenID, userID, err := s.tokenManager.Parse(raw)
	if err != nil {
		return nil, uuid.Nil, apperr.ErrUnauthorized
	}

	t, err := s.tokens.Get(ctx, tokenID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, uuid.Nil, apperr.ErrUnauthorized
	}
	if err != nil {
		return nil, uuid.Nil, err
	}
	if t.UserID != userID || s.now().After(t.ExpiresAt) {
		return nil, uuid.Nil, apperr.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, uuid.Nil, apperr.ErrUnauthorized
	}
	if err != nil {
		return nil, uuid.Nil, err
	}
	if !user.IsActive {
		return nil, uuid.Nil, apperr.ErrUnauthorized
	}

	return user, tokenID, nil
}

// CreateSuperuser creates an active staff account
func (s *AuthService) CreateSuperuser(ctx context.Context, username, email, password string) (*domain.User, error) {
	if !auth.ValidUsername(username) {
		return nil, apperr.Invalid("username", MsgInvalidUsername)
	}
	if !auth.ValidPassword(password) {
		return nil, apperr.Invalid("password", MsgPasswordTooShort)
	}

	user, err := s.newUser(username, email, password)
	if err != nil {
		return nil, err
	}
	user.IsActive = true
	user.IsStaff = true

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) newUser(username, email, password string) (*domain.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Created:      s.now(),
	}, nil
}
