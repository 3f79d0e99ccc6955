package testutil

import (
	"time"

	"linguista/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates an active test user
func NewTestUser(username string) *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
		Created:  time.Now(),
	}
}

// NewTestLanguage creates a test language available for learning
func NewTestLanguage(isocode, name string) *domain.Language {
	return &domain.Language{
		ID:                 uuid.New(),
		Name:               name,
		NameLocal:          name,
		Isocode:            isocode,
		LearningAvailable:  true,
		InterfaceAvailable: true,
	}
}

// NewTestWord creates a test word owned by author
func NewTestWord(author *domain.User, text string, lang *domain.Language) *domain.Word {
	w := &domain.Word{
		ID:             uuid.New(),
		Author:         author,
		Language:       lang,
		Text:           text,
		ActivityStatus: domain.StatusInactive,
		Created:        time.Now(),
	}
	_, _ = domain.WordSlug.Fill(w)
	return w
}
