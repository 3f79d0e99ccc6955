package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"linguista/internal/apperr"
	"linguista/internal/domain"
	"linguista/internal/permission"
	"linguista/internal/repository"

	"github.com/google/uuid"
)

// WordInput is the payload for a new word
type WordInput struct {
	Text           string
	Language       string
	ActivityStatus domain.ActivityStatus
	Note           string
	Tags           []string
	Types          []string
}

// TextInput is the payload for a definition or usage example
type TextInput struct {
	Text        string
	Translation string
}

// TranslationInput is the payload for a word translation
type TranslationInput struct {
	Text     string
	Language string
}

// LinkInput is the payload for a synonym, antonym or similar word.
// The linked word is looked up in the author's vocabulary and created when missing.
type LinkInput struct {
	Text     string
	Language string
	Note     string
}

// WordDetail is a word with all attached objects
type WordDetail struct {
	domain.Word
	Definitions  []domain.Definition
	Examples     []domain.UsageExample
	Translations []domain.WordTranslation
}

// VocabularyService manages words and the objects attached to them
type VocabularyService struct {
	words         repository.WordRepository
	definitions   repository.DefinitionRepository
	examples      repository.ExampleRepository
	translations  repository.TranslationRepository
	tags          repository.TagRepository
	types         repository.WordTypeRepository
	links         repository.WordLinkRepository
	languages     repository.LanguageRepository
	definitionCap permission.Checker
	now           func() time.Time
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(
	words repository.WordRepository,
	definitions repository.DefinitionRepository,
	examples repository.ExampleRepository,
	translations repository.TranslationRepository,
	tags repository.TagRepository,
	types repository.WordTypeRepository,
	links repository.WordLinkRepository,
	languages repository.LanguageRepository,
) *VocabularyService {
	return &VocabularyService{
		words:         words,
		definitions:   definitions,
		examples:      examples,
		translations:  translations,
		tags:          tags,
		types:         types,
		links:         links,
		languages:     languages,
		definitionCap: permission.NewCanAddDefinition(definitions),
		now:           time.Now,
	}
}

// Create adds a word to the user's vocabulary.
// Nothing is written until the whole payload is valid.
func (s *VocabularyService) Create(ctx context.Context, user *domain.User, in WordInput) (*domain.Word, error) {
	in.Text = strings.TrimSpace(in.Text)
	if in.ActivityStatus == "" {
		in.ActivityStatus = domain.StatusInactive
	}
	tags := normalizeTags(in.Tags)

	var verr apperr.ValidationError
	checkLength(&verr, "text", in.Text, 1, domain.MaxWordLength)
	checkLength(&verr, "note", in.Note, 0, domain.MaxNoteLength)
	if !in.ActivityStatus.Valid() {
		verr.Add("activity_status", fmt.Sprintf("%q is not a valid choice.", in.ActivityStatus))
	}
	checkTagLengths(&verr, tags)
	if len(tags) > domain.MaxTags {
		return nil, apperr.LimitExceeded(domain.MaxTags, "Tags amount limit exceeded")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	lang, err := s.findLanguage(ctx, in.Language)
	if err != nil {
		return nil, err
	}
	types, err := s.findTypes(ctx, in.Types)
	if err != nil {
		return nil, err
	}

	w := &domain.Word{
		ID:             uuid.New(),
		Author:         user,
		Language:       lang,
		Text:           in.Text,
		ActivityStatus: in.ActivityStatus,
		Note:           in.Note,
		Created:        s.now(),
	}
	if _, err := domain.WordSlug.Fill(w); err != nil {
		return nil, err
	}
	if err := s.words.Create(ctx, w); err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, user, w.ID, tags); err != nil {
		return nil, err
	}
	w.Tags = tags
	if len(types) > 0 {
		if err := s.types.Set(ctx, w.ID, typeIDs(types)); err != nil {
			return nil, err
		}
		w.Types = typeNames(types)
	}
	return w, nil
}

// List returns one page of the user's words
func (s *VocabularyService) List(ctx context.Context, user *domain.User, f repository.WordFilter, page domain.PageRequest) ([]domain.Word, int, error) {
	f.AuthorID = user.ID
	return s.words.List(ctx, f, page.Normalize())
}

// Get returns a word of the user with everything attached to it
func (s *VocabularyService) Get(ctx context.Context, user *domain.User, slug string) (*WordDetail, error) {
	w, err := s.ownWord(ctx, user, slug, http.MethodGet)
	if err != nil {
		return nil, err
	}

	d := &WordDetail{Word: *w}
	if d.Definitions, err = s.definitions.ListByWord(ctx, w.ID); err != nil {
		return nil, err
	}
	if d.Examples, err = s.examples.ListByWord(ctx, w.ID); err != nil {
		return nil, err
	}
	if d.Translations, err = s.translations.ListByWord(ctx, w.ID); err != nil {
		return nil, err
	}
	return d, nil
}

// Update changes the status or note of a word
func (s *VocabularyService) Update(ctx context.Context, user *domain.User, slug string, upd domain.WordUpdate) (*domain.Word, error) {
	w, err := s.ownWord(ctx, user, slug, http.MethodPatch)
	if err != nil {
		return nil, err
	}

	var verr apperr.ValidationError
	if upd.ActivityStatus != nil && !upd.ActivityStatus.Valid() {
		verr.Add("activity_status", fmt.Sprintf("%q is not a valid choice.", *upd.ActivityStatus))
	}
	if upd.Note != nil {
		checkLength(&verr, "note", *upd.Note, 0, domain.MaxNoteLength)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	var types []domain.WordType
	if upd.Types != nil {
		if types, err = s.findTypes(ctx, upd.Types); err != nil {
			return nil, err
		}
	}

	if upd.ActivityStatus != nil {
		w.ActivityStatus = *upd.ActivityStatus
	}
	if upd.Note != nil {
		w.Note = *upd.Note
	}
	now := s.now()
	w.Modified = &now

	if err := s.words.Update(ctx, w); err != nil {
		return nil, err
	}
	if upd.Types != nil {
		if err := s.types.Set(ctx, w.ID, typeIDs(types)); err != nil {
			return nil, err
		}
		w.Types = typeNames(types)
	}
	return w, nil
}

// Delete removes a word
func (s *VocabularyService) Delete(ctx context.Context, user *domain.User, slug string) error {
	w, err := s.ownWord(ctx, user, slug, http.MethodDelete)
	if err != nil {
		return err
	}
	return s.words.Delete(ctx, w.ID)
}

// AddDefinition attaches a definition unless the word already holds the maximum
func (s *VocabularyService) AddDefinition(ctx context.Context, user *domain.User, slug string, in TextInput) (*domain.Definition, error) {
	w, err := s.ownWord(ctx, user, slug, http.MethodPost)
	if err != nil {
		return nil, err
	}
	req := permission.Request{Method: http.MethodPost, User: user, WordID: w.ID}
	if err := s.definitionCap.Allow(ctx, req); err != nil {
		return nil, err
	}

	in.Text = strings.TrimSpace(in.Text)
	var verr apperr.ValidationError
	checkLength(&verr, "text", in.Text, domain.MinDefinitionLength, domain.MaxDefinitionLength)
	checkLength(&verr, "translation", in.Translation, 0, domain.MaxDefinitionLength)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	d := &domain.Definition{
		ID:          uuid.New(),
		WordID:      w.ID,
		Author:      user,
		Text:        in.Text,
		Translation: in.Translation,
		Created:     s.now(),
	}
	if _, err := domain.DefinitionSlug.Fill(d); err != nil {
		return nil, err
	}
	if err := s.definitions.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Definitions lists a word's definitions
func (s *VocabularyService) Definitions(ctx context.Context, user *domain.User, slug string) ([]domain.Definition, error) {
	w, err := s.ownWord(ctx, user, slug, http.MethodGet)
	if err != nil {
		return nil, err
	}
	return s.definitions.ListByWord(ctx, w.ID)
}

// AddExample attaches a usage example within the per-word limit
func (s *VocabularyService) AddExample(ctx context.Context, user *domain.User, slug string, in TextInput) (*domain.UsageExample, error) {
	w, err := s.ownWord(ctx, user, slug, http.MethodPost)
	if err != nil {
		return nil, err
	}
	if err := checkLimit(ctx, s.examples.CountByWord, w.ID, domain.MaxExamples, "Usage examples amount limit exceeded"); err != nil {
		return nil, err
	}

	in.Text = strings.TrimSpace(in.Text)
	var verr apperr.ValidationError
	checkLength(&verr, "text", in.Text, domain.MinExampleLength, domain.MaxExampleLength)
	checkLength(&verr, "translation", in.Translation, 0, domain.MaxExampleLength)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	e := &domain.UsageExample{
		ID:          uuid.New(),
		WordID:      w.ID,
		Author:      user,
		Text:        in.Text,
		Translation: in.Translation,
		Source:      domain.ExampleSourceUser,
		Created:     s.now(),
	}
	if _, err := domain.UsageExampleSlug.Fill(e); err != nil {
		return nil, err
	}
	if err := s.examples.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Examples lists a word's usage examples
func (s *VocabularyService) Examples(ctx context.Context, user *domain.User, slug string) ([]domain.UsageExample, error) {
	w, err := s.ownWord(ctx, user, slug, http.MethodGet)
	if err != nil {
		return nil, err
	}
	return s.examples.ListByWord(ctx, w.ID)
}

// AddTranslation attaches a translation within the per-word limit
func (s *VocabularyService) AddTranslation(ctx context.Context, user *domain.User, slug string, in TranslationInput) (*domain.WordTranslation, error) {
	w, err := s.ownWord(ctx, user, slug, http.MethodPost)
	if err != nil {
		return nil, err
	}
	if err := checkLimit(ctx, s.translations.CountByWord, w.ID, domain.MaxTranslations, "Translations amount limit exceeded"); err != nil {
		return nil, err
	}

	in.Text = strings.TrimSpace(in.Text)
	var verr apperr.ValidationError
	checkLength(&verr, "text", in.Text, 1, domain.MaxTranslationLength)
	if in.Language == "" {
		verr.Add("language", "This field is required.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	lang, err := s.findLanguage(ctx, in.Language)
	if err != nil {
		return nil, err
	}

	t := &domain.WordTranslation{
		ID:       uuid.New(),
		WordID:   w.ID,
		Author:   user,
		Language: lang,
		Text:     in.Text,
		Created:  s.now(),
	}
	if _, err := domain.WordTranslationSlug.Fill(t); err != nil {
		return nil, err
	}
	if err := s.translations.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Translations lists a word's translations
func (s *VocabularyService) Translations(ctx context.Context, user *domain.User, slug string) ([]domain.WordTranslation, error) {
	w, err := s.ownWord(ctx, user, slug, http.MethodGet)
	if err != nil {
		return nil, err
	}
	return s.translations.ListByWord(ctx, w.ID)
}

// AddTags attaches tags within the per-word limit.
// Names the word already carries do not count against the limit.
func (s *VocabularyService) AddTags(ctx context.Context, user *domain.User, slug string, names []string) ([]domain.Tag, error) {
	w, err := s.ownWord(ctx, user, slug, http.MethodPost)
	if err != nil {
		return nil, err
	}

	names = normalizeTags(names)
	if len(names) == 0 {
		return nil, apperr.Invalid("tags", "This field is required.")
	}
	var verr apperr.ValidationError
	checkTagLengths(&verr, names)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	attached := make(map[string]bool, len(w.Tags))
	for _, t := range w.Tags {
		attached[t] = true
	}
	var fresh []string
	for _, n := range names {
		if !attached[n] {
			fresh = append(fresh, n)
		}
	}

	count, err := s.tags.CountByWord(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	if count+len(fresh) > domain.MaxTags {
		return nil, apperr.LimitExceeded(domain.MaxTags, "Tags amount limit exceeded")
	}

	if err := s.attachTags(ctx, user, w.ID, fresh); err != nil {
		return nil, err
	}
	return s.tags.ListByWord(ctx, w.ID)
}

// Tags lists a word's tags
func (s *VocabularyService) Tags(ctx context.Context, user *domain.User, slug string) ([]domain.Tag, error) {
	w, err := s.ownWord(ctx, user, slug, http.MethodGet)
	if err != nil {
		return nil, err
	}
	return s.tags.ListByWord(ctx, w.ID)
}

// Links lists the words linked to a word by kind
func (s *VocabularyService) Links(ctx context.Context, user *domain.User, slug string, kind domain.LinkKind) ([]domain.WordLink, error) {
	w, err := s.ownWord(ctx, user, slug, http.MethodGet)
	if err != nil {
		return nil, err
	}
	return s.links.List(ctx, kind, w.ID)
}

// AddLink links another word of the same language to the word
func (s *VocabularyService) AddLink(ctx context.Context, user *domain.User, slug string, kind domain.LinkKind, in LinkInput) ([]domain.WordLink, error) {
	if !kind.Valid() {
		return nil, apperr.ErrNotFound
	}
	w, err := s.ownWord(ctx, user, slug, http.MethodPost)
	if err != nil {
		return nil, err
	}
	count, err := s.links.Count(ctx, kind, w.ID)
	if err != nil {
		return nil, err
	}
	if count >= domain.MaxLinks {
		return nil, apperr.LimitExceeded(domain.MaxLinks, linkLimitDetail(kind))
	}

	in.Text = strings.TrimSpace(in.Text)
	if !kind.HasNote() {
		in.Note = ""
	}
	var verr apperr.ValidationError
	checkLength(&verr, "text", in.Text, 1, domain.MaxWordLength)
	checkLength(&verr, "note", in.Note, 0, domain.MaxNoteLength)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	lang := w.Language
	if in.Language != "" || lang == nil {
		if lang, err = s.findLanguage(ctx, in.Language); err != nil {
			return nil, err
		}
	}
	if w.Language != nil && lang.ID != w.Language.ID {
		return nil, apperr.Invalid("language", "Words must be in the same language.")
	}

	other, err := s.ensureWord(ctx, user, lang, in.Text)
	if err != nil {
		return nil, err
	}
	if other.ID == w.ID {
		return nil, apperr.Invalid("text", "Words must differ.")
	}

	link := &domain.WordLink{
		ID:       uuid.New(),
		Kind:     kind,
		ToWordID: w.ID,
		Word:     other,
		Note:     in.Note,
		Created:  s.now(),
	}
	if err := s.links.Create(ctx, link); err != nil {
		return nil, err
	}
	return s.links.List(ctx, kind, w.ID)
}

// RemoveLink drops the link between two words, both words stay in the vocabulary
func (s *VocabularyService) RemoveLink(ctx context.Context, user *domain.User, slug string, kind domain.LinkKind, otherSlug string) error {
	w, err := s.ownWord(ctx, user, slug, http.MethodDelete)
	if err != nil {
		return err
	}
	other, err := s.ownWord(ctx, user, otherSlug, http.MethodDelete)
	if err != nil {
		return err
	}
	return s.links.Delete(ctx, kind, w.ID, other.ID)
}

// ensureWord returns the author's word with text in lang, adding it when missing
func (s *VocabularyService) ensureWord(ctx context.Context, user *domain.User, lang *domain.Language, text string) (*domain.Word, error) {
	w := &domain.Word{
		ID:             uuid.New(),
		Author:         user,
		Language:       lang,
		Text:           text,
		ActivityStatus: domain.StatusInactive,
		Created:        s.now(),
	}
	slug, err := domain.WordSlug.Fill(w)
	if err != nil {
		return nil, err
	}

	existing, err := s.words.GetBySlug(ctx, slug)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}
	if err := s.words.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func linkLimitDetail(kind domain.LinkKind) string {
	switch kind {
	case domain.LinkSynonym:
		return "Synonyms amount limit exceeded"
	case domain.LinkAntonym:
		return "Antonyms amount limit exceeded"
	}
	return "Similars amount limit exceeded"
}

// ownWord loads a word visible to user and authorizes method on it
func (s *VocabularyService) ownWord(ctx context.Context, user *domain.User, slug, method string) (*domain.Word, error) {
	w, err := s.words.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	// Vocabulary is private: other users' words are reported as missing.
	if w.Author == nil || w.Author.ID != user.ID {
		return nil, apperr.ErrNotFound
	}
	req := permission.Request{Method: method, User: user, AuthorID: w.Author.ID}
	if err := (permission.IsAuthorOrReadOnly{}).Allow(ctx, req); err != nil {
		return nil, err
	}
	return w, nil
}

// attachTags expects names already normalized and validated
func (s *VocabularyService) attachTags(ctx context.Context, user *domain.User, wordID uuid.UUID, names []string) error {
	for _, name := range names {
		tag, err := s.tags.GetOrCreate(ctx, user.ID, name)
		if err != nil {
			return err
		}
		if err := s.tags.Attach(ctx, wordID, tag.ID); err != nil {
			return err
		}
	}
	return nil
}

// findTypes resolves type names, reporting unknown ones as validation errors
func (s *VocabularyService) findTypes(ctx context.Context, names []string) ([]domain.WordType, error) {
	names = normalizeTags(names)
	if len(names) == 0 {
		return nil, nil
	}
	if len(names) > domain.MaxTypes {
		return nil, apperr.LimitExceeded(domain.MaxTypes, "Word types amount limit exceeded")
	}

	found, err := s.types.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(found))
	for _, t := range found {
		known[strings.ToLower(t.Name)] = true
	}
	var verr apperr.ValidationError
	for _, n := range names {
		if !known[n] {
			verr.Add("types", fmt.Sprintf("Object with name=%s does not exist.", n))
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return found, nil
}

func (s *VocabularyService) findLanguage(ctx context.Context, key string) (*domain.Language, error) {
	if key == "" {
		return nil, apperr.Invalid("language", "This field is required.")
	}
	lang, err := s.languages.Find(ctx, key)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Invalid("language", fmt.Sprintf("Object with isocode=%s does not exist.", key))
	}
	return lang, err
}

func checkLimit(ctx context.Context, count func(context.Context, uuid.UUID) (int, error), wordID uuid.UUID, limit int, detail string) error {
	n, err := count(ctx, wordID)
	if err != nil {
		return err
	}
	if n >= limit {
		return apperr.LimitExceeded(limit, detail)
	}
	return nil
}

func checkLength(verr *apperr.ValidationError, field, value string, minLen, maxLen int) {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0 && minLen > 0:
		verr.Add(field, "This field may not be blank.")
	case n < minLen:
		verr.Add(field, fmt.Sprintf("Ensure this field has at least %d characters.", minLen))
	case n > maxLen:
		verr.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", maxLen))
	}
}

func checkTagLengths(verr *apperr.ValidationError, names []string) {
	for _, name := range names {
		if utf8.RuneCountInString(name) > domain.MaxTagLength {
			verr.Add("tags", fmt.Sprintf("Ensure this field has no more than %d characters.", domain.MaxTagLength))
			return
		}
	}
}

func typeIDs(types []domain.WordType) []uuid.UUID {
	ids := make([]uuid.UUID, len(types))
	for i, t := range types {
		ids[i] = t.ID
	}
	return ids
}

func typeNames(types []domain.WordType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	return names
}

func normalizeTags(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
