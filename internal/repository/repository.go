package repository

import (
	"context"
	"time"

	"linguista/internal/domain"

	"github.com/google/uuid"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenRepository defines API token storage
type TokenRepository interface {
	Create(ctx context.Context, t *domain.AuthToken) error
	Get(ctx context.Context, id uuid.UUID) (*domain.AuthToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ConfirmationRepository defines email confirmation storage
type ConfirmationRepository interface {
	Create(ctx context.Context, c *domain.EmailConfirmation) error
	Get(ctx context.Context, key string) (*domain.EmailConfirmation, error)
	Delete(ctx context.Context, key string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// LanguageRepository defines language catalogue operations
type LanguageRepository interface {
	List(ctx context.Context, learningOnly bool) ([]domain.Language, error)
	Find(ctx context.Context, key string) (*domain.Language, error)
	Upsert(ctx context.Context, l *domain.Language) error
}

// UserLanguageRepository defines learning and native language links
type UserLanguageRepository interface {
	List(ctx context.Context, userID uuid.UUID, kind domain.LanguageKind) ([]domain.UserLanguage, error)
	Count(ctx context.Context, userID uuid.UUID, kind domain.LanguageKind) (int, error)
	Create(ctx context.Context, l *domain.UserLanguage) error
	ReplaceNative(ctx context.Context, userID uuid.UUID, langs []domain.UserLanguage) error
}

// WordFilter narrows a vocabulary listing
type WordFilter struct {
	AuthorID       uuid.UUID
	Language       string
	ActivityStatus domain.ActivityStatus
	Search         string
	Type           string
	// Favorite keeps only words the author marked as favorite
	Favorite bool
}

// WordRepository defines word data operations
type WordRepository interface {
	Create(ctx context.Context, w *domain.Word) error
	GetBySlug(ctx context.Context, slug string) (*domain.Word, error)
	List(ctx context.Context, f WordFilter, page domain.PageRequest) ([]domain.Word, int, error)
	Update(ctx context.Context, w *domain.Word) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
}

// DefinitionRepository defines word definition operations
type DefinitionRepository interface {
	Create(ctx context.Context, d *domain.Definition) error
	ListByWord(ctx context.Context, wordID uuid.UUID) ([]domain.Definition, error)
	CountByWord(ctx context.Context, wordID uuid.UUID) (int, error)
}

// ExampleRepository defines usage example operations
type ExampleRepository interface {
	Create(ctx context.Context, e *domain.UsageExample) error
	ListByWord(ctx context.Context, wordID uuid.UUID) ([]domain.UsageExample, error)
	CountByWord(ctx context.Context, wordID uuid.UUID) (int, error)
}

// TranslationRepository defines word translation operations
type TranslationRepository interface {
	Create(ctx context.Context, t *domain.WordTranslation) error
	ListByWord(ctx context.Context, wordID uuid.UUID) ([]domain.WordTranslation, error)
	CountByWord(ctx context.Context, wordID uuid.UUID) (int, error)
}

// TagRepository defines tag operations
type TagRepository interface {
	GetOrCreate(ctx context.Context, authorID uuid.UUID, name string) (*domain.Tag, error)
	Attach(ctx context.Context, wordID, tagID uuid.UUID) error
	ListByWord(ctx context.Context, wordID uuid.UUID) ([]domain.Tag, error)
	CountByWord(ctx context.Context, wordID uuid.UUID) (int, error)
}

// WordTypeRepository defines word type operations
type WordTypeRepository interface {
	List(ctx context.Context) ([]domain.WordType, error)
	FindByNames(ctx context.Context, names []string) ([]domain.WordType, error)
	Set(ctx context.Context, wordID uuid.UUID, typeIDs []uuid.UUID) error
	Upsert(ctx context.Context, t *domain.WordType) error
}

// WordLinkRepository defines synonym, antonym and similar word links
type WordLinkRepository interface {
	Create(ctx context.Context, l *domain.WordLink) error
	List(ctx context.Context, kind domain.LinkKind, toWordID uuid.UUID) ([]domain.WordLink, error)
	Count(ctx context.Context, kind domain.LinkKind, toWordID uuid.UUID) (int, error)
	Delete(ctx context.Context, kind domain.LinkKind, toWordID, fromWordID uuid.UUID) error
}

// FavoriteRepository defines user bookmarks on words, collections and exercises
type FavoriteRepository interface {
	Add(ctx context.Context, kind domain.FavoriteKind, userID, objectID uuid.UUID) error
	Remove(ctx context.Context, kind domain.FavoriteKind, userID, objectID uuid.UUID) error
	Collections(ctx context.Context, userID uuid.UUID, page domain.PageRequest) ([]domain.Collection, int, error)
	Exercises(ctx context.Context, userID uuid.UUID) ([]domain.Exercise, error)
}

// CollectionRepository defines collection operations
type CollectionRepository interface {
	Create(ctx context.Context, c *domain.Collection) error
	GetBySlug(ctx context.Context, slug string) (*domain.Collection, error)
	List(ctx context.Context, authorID uuid.UUID, page domain.PageRequest) ([]domain.Collection, int, error)
	Update(ctx context.Context, c *domain.Collection) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddWords(ctx context.Context, collectionID uuid.UUID, wordIDs []uuid.UUID) error
}

// ExerciseRepository defines exercise operations
type ExerciseRepository interface {
	List(ctx context.Context, availableOnly bool) ([]domain.Exercise, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Exercise, error)
	Upsert(ctx context.Context, e *domain.Exercise) error
}

// SettingsRepository defines translator settings storage
type SettingsRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.TranslatorSettings, error)
	Save(ctx context.Context, s *domain.TranslatorSettings) error
}

// HistoryRepository defines exercise history storage
type HistoryRepository interface {
	Create(ctx context.Context, h *domain.ExerciseHistory) error
	List(ctx context.Context, userID, exerciseID uuid.UUID, page domain.PageRequest) ([]domain.ExerciseHistory, int, error)
}

// AdminRepository exposes raw listings for staff
type AdminRepository interface {
	Resources() []string
	List(ctx context.Context, resource string, page domain.PageRequest) ([]map[string]any, int, error)
	Delete(ctx context.Context, resource string, id uuid.UUID) error
}
