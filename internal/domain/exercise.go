package domain

import (
	"time"

	"linguista/internal/slug"

	"github.com/google/uuid"
)

// Exercise modes
const (
	ModeFreeInput    = "FI"
	ModeFreeInputMax = "FIM"
	ModeVariants     = "V"
)

// Translator "from language" options
const (
	FromLearning           = "LTN"
	FromNative             = "NTL"
	FromLearningToLearning = "LTL"
	FromAlternately        = "A"
)

// Translator settings bounds
const (
	MinRepetitionsAmount = 1
	MaxRepetitionsAmount = 10
	MinAnswerTimeLimit   = 30 * time.Second
	MaxAnswerTimeLimit   = 5 * time.Minute
	MaxExerciseWords     = 100
)

// ValidMode reports whether m is a known exercise mode
func ValidMode(m string) bool {
	return m == ModeFreeInput || m == ModeFreeInputMax || m == ModeVariants
}

// ValidFromLanguage reports whether f is a known translator direction
func ValidFromLanguage(f string) bool {
	switch f {
	case FromLearning, FromNative, FromLearningToLearning, FromAlternately:
		return true
	}
	return false
}

// Exercise is a learning activity available in the app
type Exercise struct {
	ID                    uuid.UUID
	Name                  string
	Description           string
	ConstraintDescription string
	Available             bool
	Slug                  string
	Created               time.Time
	Modified              *time.Time
}

func (e *Exercise) SetSlug(s string) { e.Slug = s }

var ExerciseSlug = slug.NewFiller(
	slug.Attr("name", func(e *Exercise) string { return e.Name }),
)

// TranslatorSettings are a user's defaults for the translator exercise
type TranslatorSettings struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Mode              string
	AnswerTimeLimit   *time.Duration
	RepetitionsAmount int
	FromLanguage      string
}

// DefaultTranslatorSettings returns settings used when the user has none stored
func DefaultTranslatorSettings(userID uuid.UUID) TranslatorSettings {
	return TranslatorSettings{
		ID:                uuid.New(),
		UserID:            userID,
		Mode:              ModeFreeInput,
		RepetitionsAmount: MinRepetitionsAmount,
		FromLanguage:      FromLearning,
	}
}

// TranslatorSettingsUpdate holds fields to change, nil means unchanged
type TranslatorSettingsUpdate struct {
	Mode              *string
	AnswerTimeLimit   *time.Duration
	RepetitionsAmount *int
	FromLanguage      *string
}

// ExerciseHistory is one user's approach to an exercise
type ExerciseHistory struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	ExerciseID       uuid.UUID
	WordsAmount      int
	CorrectsAmount   int
	IncorrectsAmount int
	Mode             string
	Created          time.Time
}
