package domain

import (
	"time"

	"linguista/internal/slug"

	"github.com/google/uuid"
)

// Language is a language identified by its iso code (e.g. "en-gb")
type Language struct {
	ID                 uuid.UUID
	Name               string
	NameLocal          string
	Isocode            string
	Country            string
	Sorting            int
	LearningAvailable  bool
	InterfaceAvailable bool
}

// LanguageKind tells learning and native associations apart
type LanguageKind string

const (
	LanguageLearning LanguageKind = "learning"
	LanguageNative   LanguageKind = "native"
)

// UserLanguage links a user to a language they learn or speak natively
type UserLanguage struct {
	ID       uuid.UUID
	Kind     LanguageKind
	User     *User
	Language *Language
	Level    string
	Slug     string
	Created  time.Time
}

func (l *UserLanguage) SetSlug(s string) { l.Slug = s }

// UserLanguageSlug builds "<username>-<isocode>"
var UserLanguageSlug = slug.NewFiller(
	slug.Related("user.username",
		func(l *UserLanguage) *User { return l.User },
		func(u *User) string { return u.Username }),
	slug.Related("language.isocode",
		func(l *UserLanguage) *Language { return l.Language },
		func(lang *Language) string { return lang.Isocode }),
)
