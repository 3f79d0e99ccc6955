package domain

import (
	"time"

	"linguista/internal/slug"

	"github.com/google/uuid"
)

// ActivityStatus is a word's learning progress
type ActivityStatus string

const (
	StatusInactive ActivityStatus = "I"
	StatusActive   ActivityStatus = "A"
	StatusMastered ActivityStatus = "M"
)

// Valid reports whether s is a known activity status
func (s ActivityStatus) Valid() bool {
	switch s {
	case StatusInactive, StatusActive, StatusMastered:
		return true
	}
	return false
}

// Length limits
const (
	MaxWordLength        = 256
	MaxTranslationLength = 256
	MaxDefinitionLength  = 512
	MinDefinitionLength  = 2
	MaxExampleLength     = 512
	MinExampleLength     = 2
	MaxNoteLength        = 256
	MaxTagLength         = 32
)

// Per-word amount limits
const (
	MaxDefinitions  = 10
	MaxExamples     = 10
	MaxTranslations = 24
	MaxTags         = 10
	MaxTypes        = 3
	MaxLinks        = 16
)

// Word is a word or phrase in a user's vocabulary
type Word struct {
	ID             uuid.UUID
	Author         *User
	Language       *Language
	Text           string
	ActivityStatus ActivityStatus
	Note           string
	Slug           string
	Created        time.Time
	Modified       *time.Time

	DefinitionsCount  int
	ExamplesCount     int
	TranslationsCount int
	Tags              []string
	Types             []string
}

func (w *Word) SetSlug(s string) { w.Slug = s }

// WordSlug builds "<text>-<author>-<isocode>"
var WordSlug = slug.NewFiller(
	slug.Attr("text", func(w *Word) string { return w.Text }),
	slug.Related("author.username",
		func(w *Word) *User { return w.Author },
		func(u *User) string { return u.Username }),
	slug.Related("language.isocode",
		func(w *Word) *Language { return w.Language },
		func(l *Language) string { return l.Isocode }),
)

// WordUpdate holds mutable word fields, nil means unchanged
type WordUpdate struct {
	ActivityStatus *ActivityStatus
	Note           *string
	Types          []string
}

// WordType is a part of speech or phrase kind, e.g. "Noun" or "Idiom"
type WordType struct {
	ID         uuid.UUID
	Name       string
	Slug       string
	Sorting    int
	WordsCount int
	Created    time.Time
}

func (t *WordType) SetSlug(s string) { t.Slug = s }

var WordTypeSlug = slug.NewFiller(
	slug.Attr("name", func(t *WordType) string { return t.Name }),
)

// LinkKind names a relation between two words of one author
type LinkKind string

const (
	LinkSynonym LinkKind = "synonym"
	LinkAntonym LinkKind = "antonym"
	LinkSimilar LinkKind = "similar"
)

// Valid reports whether k is a known link kind
func (k LinkKind) Valid() bool {
	switch k {
	case LinkSynonym, LinkAntonym, LinkSimilar:
		return true
	}
	return false
}

// HasNote reports whether links of this kind carry a note
func (k LinkKind) HasNote() bool { return k != LinkSimilar }

// WordLink states that Word is a synonym, antonym or similar of the word ToWordID
type WordLink struct {
	ID       uuid.UUID
	Kind     LinkKind
	ToWordID uuid.UUID
	Word     *Word
	Note     string
	Created  time.Time
}

// Definition explains a word's meaning
type Definition struct {
	ID          uuid.UUID
	WordID      uuid.UUID
	Author      *User
	Text        string
	Translation string
	Slug        string
	Created     time.Time
}

func (d *Definition) SetSlug(s string) { d.Slug = s }

var DefinitionSlug = slug.NewFiller(
	slug.Attr("text", func(d *Definition) string { return d.Text }),
	slug.Related("author.username",
		func(d *Definition) *User { return d.Author },
		func(u *User) string { return u.Username }),
)

// Example sources
const (
	ExampleSourceUser = "USER"
	ExampleSourceWeb  = "WEB"
)

// UsageExample shows the word used in a sentence
type UsageExample struct {
	ID          uuid.UUID
	WordID      uuid.UUID
	Author      *User
	Text        string
	Translation string
	Source      string
	Slug        string
	Created     time.Time
}

func (e *UsageExample) SetSlug(s string) { e.Slug = s }

var UsageExampleSlug = slug.NewFiller(
	slug.Attr("text", func(e *UsageExample) string { return e.Text }),
	slug.Related("author.username",
		func(e *UsageExample) *User { return e.Author },
		func(u *User) string { return u.Username }),
)

// WordTranslation is a translation of a word into another language
type WordTranslation struct {
	ID       uuid.UUID
	WordID   uuid.UUID
	Author   *User
	Language *Language
	Text     string
	Slug     string
	Created  time.Time
}

func (t *WordTranslation) SetSlug(s string) { t.Slug = s }

var WordTranslationSlug = slug.NewFiller(
	slug.Attr("text", func(t *WordTranslation) string { return t.Text }),
	slug.Related("author.username",
		func(t *WordTranslation) *User { return t.Author },
		func(u *User) string { return u.Username }),
	slug.Related("language.name",
		func(t *WordTranslation) *Language { return t.Language },
		func(l *Language) string { return l.Name }),
)

// Tag labels words of one author
type Tag struct {
	ID       uuid.UUID
	AuthorID uuid.UUID
	Name     string
	Created  time.Time
}
