package testutil

import (
	"context"
	"time"

	"linguista/internal/apiclient"
	"linguista/internal/domain"
	"linguista/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenRepository is a mock for TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, t *domain.AuthToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTokenRepository) Get(ctx context.Context, id uuid.UUID) (*domain.AuthToken, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthToken), args.Error(1)
}

func (m *MockTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockConfirmationRepository is a mock for ConfirmationRepository
type MockConfirmationRepository struct {
	mock.Mock
}

func (m *MockConfirmationRepository) Create(ctx context.Context, c *domain.EmailConfirmation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConfirmationRepository) Get(ctx context.Context, key string) (*domain.EmailConfirmation, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailConfirmation), args.Error(1)
}

func (m *MockConfirmationRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockConfirmationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockLanguageRepository is a mock for LanguageRepository
type MockLanguageRepository struct {
	mock.Mock
}

func (m *MockLanguageRepository) List(ctx context.Context, learningOnly bool) ([]domain.Language, error) {
	args := m.Called(ctx, learningOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Language), args.Error(1)
}

func (m *MockLanguageRepository) Find(ctx context.Context, key string) (*domain.Language, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Language), args.Error(1)
}

func (m *MockLanguageRepository) Upsert(ctx context.Context, l *domain.Language) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

// MockUserLanguageRepository is a mock for UserLanguageRepository
type MockUserLanguageRepository struct {
	mock.Mock
}

func (m *MockUserLanguageRepository) List(ctx context.Context, userID uuid.UUID, kind domain.LanguageKind) ([]domain.UserLanguage, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserLanguage), args.Error(1)
}

func (m *MockUserLanguageRepository) Count(ctx context.Context, userID uuid.UUID, kind domain.LanguageKind) (int, error) {
	args := m.Called(ctx, userID, kind)
	return args.Int(0), args.Error(1)
}

func (m *MockUserLanguageRepository) Create(ctx context.Context, l *domain.UserLanguage) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockUserLanguageRepository) ReplaceNative(ctx context.Context, userID uuid.UUID, langs []domain.UserLanguage) error {
	args := m.Called(ctx, userID, langs)
	return args.Error(0)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) Create(ctx context.Context, w *domain.Word) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWordRepository) GetBySlug(ctx context.Context, slug string) (*domain.Word, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) List(ctx context.Context, f repository.WordFilter, page domain.PageRequest) ([]domain.Word, int, error) {
	args := m.Called(ctx, f, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Word), args.Int(1), args.Error(2)
}

func (m *MockWordRepository) Update(ctx context.Context, w *domain.Word) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWordRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	args := m.Called(ctx, authorID)
	return args.Int(0), args.Error(1)
}

// MockDefinitionRepository is a mock for DefinitionRepository
type MockDefinitionRepository struct {
	mock.Mock
}

func (m *MockDefinitionRepository) Create(ctx context.Context, d *domain.Definition) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDefinitionRepository) ListByWord(ctx context.Context, wordID uuid.UUID) ([]domain.Definition, error) {
	args := m.Called(ctx, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Definition), args.Error(1)
}

func (m *MockDefinitionRepository) CountByWord(ctx context.Context, wordID uuid.UUID) (int, error) {
	args := m.Called(ctx, wordID)
	return args.Int(0), args.Error(1)
}

// MockExampleRepository is a mock for ExampleRepository
type MockExampleRepository struct {
	mock.Mock
}

func (m *MockExampleRepository) Create(ctx context.Context, e *domain.UsageExample) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExampleRepository) ListByWord(ctx context.Context, wordID uuid.UUID) ([]domain.UsageExample, error) {
	args := m.Called(ctx, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UsageExample), args.Error(1)
}

func (m *MockExampleRepository) CountByWord(ctx context.Context, wordID uuid.UUID) (int, error) {
	args := m.Called(ctx, wordID)
	return args.Int(0), args.Error(1)
}

// MockTranslationRepository is a mock for TranslationRepository
type MockTranslationRepository struct {
	mock.Mock
}

func (m *MockTranslationRepository) Create(ctx context.Context, t *domain.WordTranslation) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTranslationRepository) ListByWord(ctx context.Context, wordID uuid.UUID) ([]domain.WordTranslation, error) {
	args := m.Called(ctx, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordTranslation), args.Error(1)
}

func (m *MockTranslationRepository) CountByWord(ctx context.Context, wordID uuid.UUID) (int, error) {
	args := m.Called(ctx, wordID)
	return args.Int(0), args.Error(1)
}

// MockTagRepository is a mock for TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) GetOrCreate(ctx context.Context, authorID uuid.UUID, name string) (*domain.Tag, error) {
	args := m.Called(ctx, authorID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) Attach(ctx context.Context, wordID, tagID uuid.UUID) error {
	args := m.Called(ctx, wordID, tagID)
	return args.Error(0)
}

func (m *MockTagRepository) ListByWord(ctx context.Context, wordID uuid.UUID) ([]domain.Tag, error) {
	args := m.Called(ctx, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagRepository) CountByWord(ctx context.Context, wordID uuid.UUID) (int, error) {
	args := m.Called(ctx, wordID)
	return args.Int(0), args.Error(1)
}

// MockWordTypeRepository is a mock for WordTypeRepository
type MockWordTypeRepository struct {
	mock.Mock
}

func (m *MockWordTypeRepository) List(ctx context.Context) ([]domain.WordType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordType), args.Error(1)
}

func (m *MockWordTypeRepository) FindByNames(ctx context.Context, names []string) ([]domain.WordType, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordType), args.Error(1)
}

func (m *MockWordTypeRepository) Set(ctx context.Context, wordID uuid.UUID, typeIDs []uuid.UUID) error {
	args := m.Called(ctx, wordID, typeIDs)
	return args.Error(0)
}

func (m *MockWordTypeRepository) Upsert(ctx context.Context, t *domain.WordType) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// MockWordLinkRepository is a mock for WordLinkRepository
type MockWordLinkRepository struct {
	mock.Mock
}

func (m *MockWordLinkRepository) Create(ctx context.Context, l *domain.WordLink) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockWordLinkRepository) List(ctx context.Context, kind domain.LinkKind, toWordID uuid.UUID) ([]domain.WordLink, error) {
	args := m.Called(ctx, kind, toWordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordLink), args.Error(1)
}

func (m *MockWordLinkRepository) Count(ctx context.Context, kind domain.LinkKind, toWordID uuid.UUID) (int, error) {
	args := m.Called(ctx, kind, toWordID)
	return args.Int(0), args.Error(1)
}

func (m *MockWordLinkRepository) Delete(ctx context.Context, kind domain.LinkKind, toWordID, fromWordID uuid.UUID) error {
	args := m.Called(ctx, kind, toWordID, fromWordID)
	return args.Error(0)
}

// MockFavoriteRepository is a mock for FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, kind domain.FavoriteKind, userID, objectID uuid.UUID) error {
	args := m.Called(ctx, kind, userID, objectID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, kind domain.FavoriteKind, userID, objectID uuid.UUID) error {
	args := m.Called(ctx, kind, userID, objectID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Collections(ctx context.Context, userID uuid.UUID, page domain.PageRequest) ([]domain.Collection, int, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Collection), args.Int(1), args.Error(2)
}

func (m *MockFavoriteRepository) Exercises(ctx context.Context, userID uuid.UUID) ([]domain.Exercise, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Exercise), args.Error(1)
}

// MockMailer is a mock for mail.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// MockCollectionRepository is a mock for CollectionRepository
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) Create(ctx context.Context, c *domain.Collection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCollectionRepository) GetBySlug(ctx context.Context, slug string) (*domain.Collection, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *MockCollectionRepository) List(ctx context.Context, authorID uuid.UUID, page domain.PageRequest) ([]domain.Collection, int, error) {
	args := m.Called(ctx, authorID, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Collection), args.Int(1), args.Error(2)
}

func (m *MockCollectionRepository) Update(ctx context.Context, c *domain.Collection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCollectionRepository) AddWords(ctx context.Context, collectionID uuid.UUID, wordIDs []uuid.UUID) error {
	args := m.Called(ctx, collectionID, wordIDs)
	return args.Error(0)
}

// MockExerciseRepository is a mock for ExerciseRepository
type MockExerciseRepository struct {
	mock.Mock
}

func (m *MockExerciseRepository) List(ctx context.Context, availableOnly bool) ([]domain.Exercise, error) {
	args := m.Called(ctx, availableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) GetBySlug(ctx context.Context, slug string) (*domain.Exercise, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) Upsert(ctx context.Context, e *domain.Exercise) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// MockSettingsRepository is a mock for SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.TranslatorSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TranslatorSettings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s *domain.TranslatorSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockHistoryRepository is a mock for HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Create(ctx context.Context, h *domain.ExerciseHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHistoryRepository) List(ctx context.Context, userID, exerciseID uuid.UUID, page domain.PageRequest) ([]domain.ExerciseHistory, int, error) {
	args := m.Called(ctx, userID, exerciseID, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExerciseHistory), args.Int(1), args.Error(2)
}

// MockAdminRepository is a mock for AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Resources() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockAdminRepository) List(ctx context.Context, resource string, page domain.PageRequest) ([]map[string]any, int, error) {
	args := m.Called(ctx, resource, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]map[string]any), args.Int(1), args.Error(2)
}

func (m *MockAdminRepository) Delete(ctx context.Context, resource string, id uuid.UUID) error {
	args := m.Called(ctx, resource, id)
	return args.Error(0)
}

// MockBotAPI is a mock for the API the bot calls
type MockBotAPI struct {
	mock.Mock
}

func (m *MockBotAPI) Register(ctx context.Context, req apiclient.RegisterRequest) (bool, string, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockBotAPI) Login(ctx context.Context, req apiclient.LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockBotAPI) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockBotAPI) Profile(ctx context.Context, token string) (*apiclient.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.Profile), args.Error(1)
}

func (m *MockBotAPI) UpdateProfile(ctx context.Context, token string, upd apiclient.ProfileUpdate) (*apiclient.Profile, error) {
	args := m.Called(ctx, token, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.Profile), args.Error(1)
}

func (m *MockBotAPI) LearningAvailableLanguages(ctx context.Context, token string) ([]apiclient.Language, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]apiclient.Language), args.Error(1)
}

func (m *MockBotAPI) AddLearningLanguage(ctx context.Context, token, language string) error {
	args := m.Called(ctx, token, language)
	return args.Error(0)
}

// MockBotUsers is a mock for the bot user repository
type MockBotUsers struct {
	mock.Mock
}

func (m *MockBotUsers) Touch(ctx context.Context, chatID int64, tgUsername string) error {
	args := m.Called(ctx, chatID, tgUsername)
	return args.Error(0)
}

func (m *MockBotUsers) RecordLogin(ctx context.Context, chatID int64, username string) error {
	args := m.Called(ctx, chatID, username)
	return args.Error(0)
}
