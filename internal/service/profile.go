package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"linguista/internal/apperr"
	"linguista/internal/domain"
	"linguista/internal/repository"

	"github.com/google/uuid"
)

// LearningLanguageInput names a language to start learning
type LearningLanguageInput struct {
	Language string
	Level    string
}

// ProfileService manages the authenticated user's profile and languages
type ProfileService struct {
	users         repository.UserRepository
	languages     repository.LanguageRepository
	userLanguages repository.UserLanguageRepository
	words         repository.WordRepository
	now           func() time.Time
}

// NewProfileService creates a new profile service
func NewProfileService(
	users repository.UserRepository,
	languages repository.LanguageRepository,
	userLanguages repository.UserLanguageRepository,
	words repository.WordRepository,
) *ProfileService {
	return &ProfileService{
		users:         users,
		languages:     languages,
		userLanguages: userLanguages,
		words:         words,
		now:           time.Now,
	}
}

// Get assembles the user's profile
func (s *ProfileService) Get(ctx context.Context, user *domain.User) (*domain.Profile, error) {
	native, err := s.userLanguages.List(ctx, user.ID, domain.LanguageNative)
	if err != nil {
		return nil, err
	}
	learning, err := s.userLanguages.List(ctx, user.ID, domain.LanguageLearning)
	if err != nil {
		return nil, err
	}
	count, err := s.words.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.Profile{
		User:              *user,
		NativeLanguages:   native,
		LearningLanguages: learning,
		WordsCount:        count,
	}, nil
}

// Update applies a partial profile change
func (s *ProfileService) Update(ctx context.Context, user *domain.User, upd domain.ProfileUpdate) (*domain.Profile, error) {
	var verr apperr.ValidationError
	if upd.FirstName != nil && utf8.RuneCountInString(*upd.FirstName) > domain.FirstNameMaxLength {
		verr.Add("first_name", fmt.Sprintf("Ensure this field has no more than %d characters.", domain.FirstNameMaxLength))
	}
	if upd.Gender != nil && *upd.Gender != "" && *upd.Gender != domain.GenderMale && *upd.Gender != domain.GenderFemale {
		verr.Add("gender", fmt.Sprintf("%q is not a valid choice.", *upd.Gender))
	}
	if len(upd.NativeLanguages) > domain.MaxNativeLanguages {
		return nil, apperr.LimitExceeded(domain.MaxNativeLanguages, "Native languages amount limit exceeded")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if upd.NativeLanguages != nil {
		if err := s.replaceNative(ctx, user, upd.NativeLanguages); err != nil {
			return nil, err
		}
	}

	if upd.FirstName != nil || upd.Gender != nil || upd.Image != nil {
		updated := *user
		if upd.FirstName != nil {
			updated.FirstName = strings.TrimSpace(*upd.FirstName)
		}
		if upd.Gender != nil {
			updated.Gender = emptyToNil(*upd.Gender)
		}
		if upd.Image != nil {
			updated.Image = emptyToNil(*upd.Image)
		}
		now := s.now()
		updated.Modified = &now
		if err := s.users.Update(ctx, &updated); err != nil {
			return nil, err
		}
		*user = updated
	}

	return s.Get(ctx, user)
}

// Delete removes the account
func (s *ProfileService) Delete(ctx context.Context, user *domain.User) error {
	return s.users.Delete(ctx, user.ID)
}

// LearningLanguages lists languages the user learns
func (s *ProfileService) LearningLanguages(ctx context.Context, user *domain.User) ([]domain.UserLanguage, error) {
	return s.userLanguages.List(ctx, user.ID, domain.LanguageLearning)
}

// AddLearningLanguages links new learning languages within the per-user limit
func (s *ProfileService) AddLearningLanguages(ctx context.Context, user *domain.User, in []LearningLanguageInput) ([]domain.UserLanguage, error) {
	if len(in) == 0 {
		return nil, apperr.Invalid("language", "This field is required.")
	}

	count, err := s.userLanguages.Count(ctx, user.ID, domain.LanguageLearning)
	if err != nil {
		return nil, err
	}
	if count+len(in) > domain.MaxLearningLanguages {
		return nil, apperr.LimitExceeded(domain.MaxLearningLanguages, "Learning languages amount limit exceeded")
	}

	out := make([]domain.UserLanguage, 0, len(in))
	for _, item := range in {
		lang, err := s.findLanguage(ctx, "language", item.Language)
		if err != nil {
			return nil, err
		}
		if !lang.LearningAvailable {
			return nil, apperr.Invalid("language", fmt.Sprintf("Language %q is not available for learning.", lang.Name))
		}

		ul, err := s.newUserLanguage(user, lang, domain.LanguageLearning)
		if err != nil {
			return nil, err
		}
		ul.Level = item.Level
		if err := s.userLanguages.Create(ctx, ul); err != nil {
			return nil, err
		}
		out = append(out, *ul)
	}

	return out, nil
}

func (s *ProfileService) replaceNative(ctx context.Context, user *domain.User, keys []string) error {
	langs := make([]domain.UserLanguage, 0, len(keys))
	seen := make(map[uuid.UUID]bool, len(keys))
	for _, key := range keys {
		lang, err := s.findLanguage(ctx, "native_languages", key)
		if err != nil {
			return err
		}
		if seen[lang.ID] {
			continue
		}
		seen[lang.ID] = true

		ul, err := s.newUserLanguage(user, lang, domain.LanguageNative)
		if err != nil {
			return err
		}
		langs = append(langs, *ul)
	}

	return s.userLanguages.ReplaceNative(ctx, user.ID, langs)
}

func (s *ProfileService) findLanguage(ctx context.Context, field, key string) (*domain.Language, error) {
	key = strings.TrimSpace(key)
	lang, err := s.languages.Find(ctx, key)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Invalid(field, fmt.Sprintf("Object with name=%s does not exist.", key))
	}
	return lang, err
}

func (s *ProfileService) newUserLanguage(user *domain.User, lang *domain.Language, kind domain.LanguageKind) (*domain.UserLanguage, error) {
	ul := &domain.UserLanguage{
		ID:       uuid.New(),
		Kind:     kind,
		User:     user,
		Language: lang,
		Created:  s.now(),
	}
	if _, err := domain.UserLanguageSlug.Fill(ul); err != nil {
		return nil, err
	}
	return ul, nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// LanguageService exposes the language catalogue
type LanguageService struct {
	languages repository.LanguageRepository
}

// NewLanguageService creates a new language service
func NewLanguageService(languages repository.LanguageRepository) *LanguageService {
	return &LanguageService{languages: languages}
}

// List returns all languages, or only those open for learning
func (s *LanguageService) List(ctx context.Context, learningOnly bool) ([]domain.Language, error) {
	return s.languages.List(ctx, learningOnly)
}

// Import upserts languages by isocode and returns how many were written
func (s *LanguageService) Import(ctx context.Context, langs []domain.Language) (int, error) {
	for i := range langs {
		if langs[i].ID == uuid.Nil {
			langs[i].ID = uuid.New()
		}
		if err := s.languages.Upsert(ctx, &langs[i]); err != nil {
			return i, fmt.Errorf("import %s: %w", langs[i].Isocode, err)
		}
	}
	return len(langs), nil
}
