package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linguista/internal/apperr"
	"linguista/internal/domain"
	"linguista/internal/repository"

	"github.com/google/uuid"
)

// HistoryInput is one finished exercise round
type HistoryInput struct {
	WordsAmount      int
	CorrectsAmount   int
	IncorrectsAmount int
	Mode             string
}

// ExerciseInput describes an exercise created by staff or imported
type ExerciseInput struct {
	Name                  string
	Description           string
	ConstraintDescription string
	Available             bool
}

// ExerciseService manages exercises, translator settings and history
type ExerciseService struct {
	exercises repository.ExerciseRepository
	settings  repository.SettingsRepository
	history   repository.HistoryRepository
	now       func() time.Time
}

// NewExerciseService creates a new exercise service
func NewExerciseService(
	exercises repository.ExerciseRepository,
	settings repository.SettingsRepository,
	history repository.HistoryRepository,
) *ExerciseService {
	return &ExerciseService{exercises: exercises, settings: settings, history: history, now: time.Now}
}

// List returns exercises; staff may see unavailable ones
func (s *ExerciseService) List(ctx context.Context, user *domain.User) ([]domain.Exercise, error) {
	return s.exercises.List(ctx, user == nil || !user.IsStaff)
}

// Settings returns the user's translator settings, creating defaults on first access
func (s *ExerciseService) Settings(ctx context.Context, user *domain.User) (*domain.TranslatorSettings, error) {
	st, err := s.settings.Get(ctx, user.ID)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	def := domain.DefaultTranslatorSettings(user.ID)
	if err := s.settings.Save(ctx, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

// UpdateSettings validates and stores a partial settings change
func (s *ExerciseService) UpdateSettings(ctx context.Context, user *domain.User, upd domain.TranslatorSettingsUpdate) (*domain.TranslatorSettings, error) {
	var verr apperr.ValidationError
	if upd.Mode != nil && !domain.ValidMode(*upd.Mode) {
		verr.Add("mode", fmt.Sprintf("%q is not a valid choice.", *upd.Mode))
	}
	if upd.FromLanguage != nil && !domain.ValidFromLanguage(*upd.FromLanguage) {
		verr.Add("from_language", fmt.Sprintf("%q is not a valid choice.", *upd.FromLanguage))
	}
	if upd.RepetitionsAmount != nil {
		if n := *upd.RepetitionsAmount; n < domain.MinRepetitionsAmount || n > domain.MaxRepetitionsAmount {
			verr.Add("repetitions_amount", fmt.Sprintf("Ensure this value is between %d and %d.",
				domain.MinRepetitionsAmount, domain.MaxRepetitionsAmount))
		}
	}
	if upd.AnswerTimeLimit != nil {
		if d := *upd.AnswerTimeLimit; d < domain.MinAnswerTimeLimit || d > domain.MaxAnswerTimeLimit {
			verr.Add("answer_time_limit", fmt.Sprintf("Ensure this value is between %s and %s.",
				domain.MinAnswerTimeLimit, domain.MaxAnswerTimeLimit))
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	st, err := s.Settings(ctx, user)
	if err != nil {
		return nil, err
	}
	if upd.Mode != nil {
		st.Mode = *upd.Mode
	}
	if upd.FromLanguage != nil {
		st.FromLanguage = *upd.FromLanguage
	}
	if upd.RepetitionsAmount != nil {
		st.RepetitionsAmount = *upd.RepetitionsAmount
	}
	if upd.AnswerTimeLimit != nil {
		st.AnswerTimeLimit = upd.AnswerTimeLimit
	}

	if err := s.settings.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// History returns one page of the user's rounds of an exercise
func (s *ExerciseService) History(ctx context.Context, user *domain.User, slug string, page domain.PageRequest) ([]domain.ExerciseHistory, int, error) {
	e, err := s.exercises.GetBySlug(ctx, slug)
	if err != nil {
		return nil, 0, err
	}
	return s.history.List(ctx, user.ID, e.ID, page.Normalize())
}

// RecordHistory stores a finished round
func (s *ExerciseService) RecordHistory(ctx context.Context, user *domain.User, slug string, in HistoryInput) (*domain.ExerciseHistory, error) {
	e, err := s.exercises.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if in.Mode == "" {
		in.Mode = domain.ModeFreeInput
	}

	var verr apperr.ValidationError
	if in.WordsAmount < 1 || in.WordsAmount > domain.MaxExerciseWords {
		verr.Add("words_amount", fmt.Sprintf("Ensure this value is between 1 and %d.", domain.MaxExerciseWords))
	}
	if in.CorrectsAmount < 0 {
		verr.Add("corrects_amount", "Ensure this value is greater than or equal to 0.")
	}
	if in.IncorrectsAmount < 0 {
		verr.Add("incorrects_amount", "Ensure this value is greater than or equal to 0.")
	}
	if !domain.ValidMode(in.Mode) {
		verr.Add("mode", fmt.Sprintf("%q is not a valid choice.", in.Mode))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	h := &domain.ExerciseHistory{
		ID:               uuid.New(),
		UserID:           user.ID,
		ExerciseID:       e.ID,
		WordsAmount:      in.WordsAmount,
		CorrectsAmount:   in.CorrectsAmount,
		IncorrectsAmount: in.IncorrectsAmount,
		Mode:             in.Mode,
		Created:          s.now(),
	}
	if err := s.history.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Save creates an exercise or refreshes the one with the same slug
func (s *ExerciseService) Save(ctx context.Context, in ExerciseInput) (*domain.Exercise, error) {
	var verr apperr.ValidationError
	checkLength(&verr, "name", in.Name, 1, 256)
	checkLength(&verr, "description", in.Description, 0, 4096)
	checkLength(&verr, "constraint_description", in.ConstraintDescription, 0, 512)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	e := &domain.Exercise{
		ID:                    uuid.New(),
		Name:                  in.Name,
		Description:           in.Description,
		ConstraintDescription: in.ConstraintDescription,
		Available:             in.Available,
		Created:               s.now(),
	}
	if _, err := domain.ExerciseSlug.Fill(e); err != nil {
		return nil, err
	}
	if err := s.exercises.Upsert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
