package api

import (
	"time"

	"linguista/internal/domain"
	"linguista/internal/service"
)

type languageJSON struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	NameLocal          string `json:"name_local"`
	Isocode            string `json:"isocode"`
	Country            string `json:"country"`
	Sorting            int    `json:"sorting"`
	LearningAvailable  bool   `json:"learning_available"`
	InterfaceAvailable bool   `json:"interface_available"`
}

func toLanguage(l *domain.Language) *languageJSON {
	if l == nil {
		return nil
	}
	return &languageJSON{
		ID:                 l.ID.String(),
		Name:               l.Name,
		NameLocal:          l.NameLocal,
		Isocode:            l.Isocode,
		Country:            l.Country,
		Sorting:            l.Sorting,
		LearningAvailable:  l.LearningAvailable,
		InterfaceAvailable: l.InterfaceAvailable,
	}
}

type userLanguageJSON struct {
	ID       string        `json:"id"`
	Slug     string        `json:"slug"`
	Language *languageJSON `json:"language"`
	Level    string        `json:"level,omitempty"`
	Created  time.Time     `json:"created"`
}

func toUserLanguages(in []domain.UserLanguage) []userLanguageJSON {
	out := make([]userLanguageJSON, 0, len(in))
	for i := range in {
		out = append(out, userLanguageJSON{
			ID:       in[i].ID.String(),
			Slug:     in[i].Slug,
			Language: toLanguage(in[i].Language),
			Level:    in[i].Level,
			Created:  in[i].Created,
		})
	}
	return out
}

type profileJSON struct {
	ID                string             `json:"id"`
	Username          string             `json:"username"`
	Email             string             `json:"email"`
	FirstName         string             `json:"first_name"`
	Gender            *string            `json:"gender"`
	Image             *string            `json:"image"`
	IsStaff           bool               `json:"is_staff"`
	NativeLanguages   []userLanguageJSON `json:"native_languages"`
	LearningLanguages []userLanguageJSON `json:"learning_languages"`
	WordsCount        int                `json:"words_count"`
	Created           time.Time          `json:"date_joined"`
}

func toProfile(p *domain.Profile) profileJSON {
	return profileJSON{
		ID:                p.ID.String(),
		Username:          p.Username,
		Email:             p.Email,
		FirstName:         p.FirstName,
		Gender:            p.Gender,
		Image:             p.Image,
		IsStaff:           p.IsStaff,
		NativeLanguages:   toUserLanguages(p.NativeLanguages),
		LearningLanguages: toUserLanguages(p.LearningLanguages),
		WordsCount:        p.WordsCount,
		Created:           p.Created,
	}
}

func authorName(u *domain.User) string {
	if u == nil {
		return ""
	}
	return u.Username
}

type wordJSON struct {
	ID                string     `json:"id"`
	Slug              string     `json:"slug"`
	Text              string     `json:"text"`
	Language          *string    `json:"language"`
	ActivityStatus    string     `json:"activity_status"`
	Note              string     `json:"note"`
	Author            string     `json:"author"`
	Tags              []string   `json:"tags"`
	Types             []string   `json:"types"`
	DefinitionsCount  int        `json:"definitions_count"`
	ExamplesCount     int        `json:"examples_count"`
	TranslationsCount int        `json:"translations_count"`
	Created           time.Time  `json:"created"`
	Modified          *time.Time `json:"modified"`
}

func toWord(w *domain.Word) wordJSON {
	out := wordJSON{
		ID:                w.ID.String(),
		Slug:              w.Slug,
		Text:              w.Text,
		ActivityStatus:    string(w.ActivityStatus),
		Note:              w.Note,
		Author:            authorName(w.Author),
		Tags:              w.Tags,
		Types:             w.Types,
		DefinitionsCount:  w.DefinitionsCount,
		ExamplesCount:     w.ExamplesCount,
		TranslationsCount: w.TranslationsCount,
		Created:           w.Created,
		Modified:          w.Modified,
	}
	if w.Language != nil {
		out.Language = &w.Language.Isocode
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Types == nil {
		out.Types = []string{}
	}
	return out
}

type wordDetailJSON struct {
	wordJSON
	Definitions  []definitionJSON  `json:"definitions"`
	Examples     []exampleJSON     `json:"examples"`
	Translations []translationJSON `json:"translations"`
}

func toWordDetail(d *service.WordDetail) wordDetailJSON {
	return wordDetailJSON{
		wordJSON:     toWord(&d.Word),
		Definitions:  mapSlice(d.Definitions, toDefinition),
		Examples:     mapSlice(d.Examples, toExample),
		Translations: mapSlice(d.Translations, toTranslation),
	}
}

type definitionJSON struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Text        string    `json:"text"`
	Translation string    `json:"translation"`
	Author      string    `json:"author"`
	Created     time.Time `json:"created"`
}

func toDefinition(d *domain.Definition) definitionJSON {
	return definitionJSON{
		ID:          d.ID.String(),
		Slug:        d.Slug,
		Text:        d.Text,
		Translation: d.Translation,
		Author:      authorName(d.Author),
		Created:     d.Created,
	}
}

type exampleJSON struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Text        string    `json:"text"`
	Translation string    `json:"translation"`
	Source      string    `json:"source"`
	Author      string    `json:"author"`
	Created     time.Time `json:"created"`
}

func toExample(e *domain.UsageExample) exampleJSON {
	return exampleJSON{
		ID:          e.ID.String(),
		Slug:        e.Slug,
		Text:        e.Text,
		Translation: e.Translation,
		Source:      e.Source,
		Author:      authorName(e.Author),
		Created:     e.Created,
	}
}

type translationJSON struct {
	ID       string    `json:"id"`
	Slug     string    `json:"slug"`
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Author   string    `json:"author"`
	Created  time.Time `json:"created"`
}

func toTranslation(t *domain.WordTranslation) translationJSON {
	out := translationJSON{
		ID:      t.ID.String(),
		Slug:    t.Slug,
		Text:    t.Text,
		Author:  authorName(t.Author),
		Created: t.Created,
	}
	if t.Language != nil {
		out.Language = t.Language.Name
	}
	return out
}

type tagJSON struct {
	Name string `json:"name"`
}

func toTag(t *domain.Tag) tagJSON {
	return tagJSON{Name: t.Name}
}

type wordTypeJSON struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	WordsCount int    `json:"words_count"`
}

func toWordType(t *domain.WordType) wordTypeJSON {
	return wordTypeJSON{Name: t.Name, Slug: t.Slug, WordsCount: t.WordsCount}
}

type wordLinkJSON struct {
	ID      string    `json:"id"`
	Word    *wordJSON `json:"word"`
	Note    *string   `json:"note,omitempty"`
	Created time.Time `json:"created"`
}

// toWordLink omits the note for similars, which never carry one
func toWordLink(l *domain.WordLink) wordLinkJSON {
	out := wordLinkJSON{ID: l.ID.String(), Created: l.Created}
	if l.Word != nil {
		w := toWord(l.Word)
		out.Word = &w
	}
	if l.Kind.HasNote() {
		note := l.Note
		out.Note = &note
	}
	return out
}

type collectionJSON struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Author      string     `json:"author"`
	WordsCount  int        `json:"words_count"`
	Created     time.Time  `json:"created"`
	Modified    *time.Time `json:"modified"`
}

func toCollection(c *domain.Collection) collectionJSON {
	return collectionJSON{
		ID:          c.ID.String(),
		Slug:        c.Slug,
		Title:       c.Title,
		Description: c.Description,
		Author:      authorName(c.Author),
		WordsCount:  c.WordsCount,
		Created:     c.Created,
		Modified:    c.Modified,
	}
}

type exerciseJSON struct {
	Slug                  string `json:"slug"`
	Name                  string `json:"name"`
	Description           string `json:"description"`
	ConstraintDescription string `json:"constraint_description"`
	Available             bool   `json:"available"`
}

func toExercise(e *domain.Exercise) exerciseJSON {
	return exerciseJSON{
		Slug:                  e.Slug,
		Name:                  e.Name,
		Description:           e.Description,
		ConstraintDescription: e.ConstraintDescription,
		Available:             e.Available,
	}
}

// settingsJSON carries answer_time_limit in whole seconds
type settingsJSON struct {
	Mode              string `json:"mode"`
	AnswerTimeLimit   *int   `json:"answer_time_limit"`
	RepetitionsAmount int    `json:"repetitions_amount"`
	FromLanguage      string `json:"from_language"`
}

func toSettings(s *domain.TranslatorSettings) settingsJSON {
	out := settingsJSON{
		Mode:              s.Mode,
		RepetitionsAmount: s.RepetitionsAmount,
		FromLanguage:      s.FromLanguage,
	}
	if s.AnswerTimeLimit != nil {
		sec := int(s.AnswerTimeLimit.Seconds())
		out.AnswerTimeLimit = &sec
	}
	return out
}

type historyJSON struct {
	ID               string    `json:"id"`
	WordsAmount      int       `json:"words_amount"`
	CorrectsAmount   int       `json:"corrects_amount"`
	IncorrectsAmount int       `json:"incorrects_amount"`
	Mode             string    `json:"mode"`
	Created          time.Time `json:"created"`
}

func toHistory(h *domain.ExerciseHistory) historyJSON {
	return historyJSON{
		ID:               h.ID.String(),
		WordsAmount:      h.WordsAmount,
		CorrectsAmount:   h.CorrectsAmount,
		IncorrectsAmount: h.IncorrectsAmount,
		Mode:             h.Mode,
		Created:          h.Created,
	}
}

func mapSlice[T, R any](in []T, fn func(*T) R) []R {
	out := make([]R, 0, len(in))
	for i := range in {
		out = append(out, fn(&in[i]))
	}
	return out
}
