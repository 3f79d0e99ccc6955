package postgres

import (
	"context"
	"database/sql"

	"linguista/internal/domain"

	"github.com/google/uuid"
)

func countByWord(ctx context.Context, db *sql.DB, table string, wordID uuid.UUID) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE word_id = $1`, wordID).Scan(&count)
	return count, wrap("count "+table, err)
}

// DefinitionRepo implements repository.DefinitionRepository
type DefinitionRepo struct {
	db *sql.DB
}

// NewDefinitionRepo creates a new definition repository
func NewDefinitionRepo(db *sql.DB) *DefinitionRepo {
	return &DefinitionRepo{db: db}
}

// Create attaches a definition to a word
func (r *DefinitionRepo) Create(ctx context.Context, d *domain.Definition) error {
	query := `
		INSERT INTO definitions (id, word_id, author_id, text, translation, slug, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query, d.ID, d.WordID, d.Author.ID, d.Text, d.Translation, d.Slug, d.Created)
	return wrap("create definition", err)
}

// ListByWord returns a word's definitions, oldest first
func (r *DefinitionRepo) ListByWord(ctx context.Context, wordID uuid.UUID) ([]domain.Definition, error) {
	query := `
		SELECT d.id, d.word_id, d.author_id, u.username, d.text, d.translation, d.slug, d.created
		FROM definitions d
		JOIN users u ON u.id = d.author_id
		WHERE d.word_id = $1
		ORDER BY d.created
	`
	rows, err := r.db.QueryContext(ctx, query, wordID)
	if err != nil {
		return nil, wrap("list definitions", err)
	}
	defer rows.Close()

	var out []domain.Definition
	for rows.Next() {
		d := domain.Definition{Author: &domain.User{}}
		if err := rows.Scan(&d.ID, &d.WordID, &d.Author.ID, &d.Author.Username,
			&d.Text, &d.Translation, &d.Slug, &d.Created); err != nil {
			return nil, wrap("scan definition", err)
		}
		out = append(out, d)
	}

	return out, wrap("list definitions", rows.Err())
}

// CountByWord returns how many definitions a word has
func (r *DefinitionRepo) CountByWord(ctx context.Context, wordID uuid.UUID) (int, error) {
	return countByWord(ctx, r.db, "definitions", wordID)
}

// ExampleRepo implements repository.ExampleRepository
type ExampleRepo struct {
	db *sql.DB
}

// NewExampleRepo creates a new usage example repository
func NewExampleRepo(db *sql.DB) *ExampleRepo {
	return &ExampleRepo{db: db}
}

// Create attaches a usage example to a word
func (r *ExampleRepo) Create(ctx context.Context, e *domain.UsageExample) error {
	query := `
		INSERT INTO usage_examples (id, word_id, author_id, text, translation, source, slug, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.WordID, e.Author.ID, e.Text, e.Translation, e.Source, e.Slug, e.Created)
	return wrap("create usage example", err)
}

// ListByWord returns a word's usage examples, oldest first
func (r *ExampleRepo) ListByWord(ctx context.Context, wordID uuid.UUID) ([]domain.UsageExample, error) {
	query := `
		SELECT e.id, e.word_id, e.author_id, u.username, e.text, e.translation, e.source, e.slug, e.created
		FROM usage_examples e
		JOIN users u ON u.id = e.author_id
		WHERE e.word_id = $1
		ORDER BY e.created
	`
	rows, err := r.db.QueryContext(ctx, query, wordID)
	if err != nil {
		return nil, wrap("list usage examples", err)
	}
	defer rows.Close()

	var out []domain.UsageExample
	for rows.Next() {
		e := domain.UsageExample{Author: &domain.User{}}
		if err := rows.Scan(&e.ID, &e.WordID, &e.Author.ID, &e.Author.Username,
			&e.Text, &e.Translation, &e.Source, &e.Slug, &e.Created); err != nil {
			return nil, wrap("scan usage example", err)
		}
		out = append(out, e)
	}

	return out, wrap("list usage examples", rows.Err())
}

// CountByWord returns how many examples a word has
func (r *ExampleRepo) CountByWord(ctx context.Context, wordID uuid.UUID) (int, error) {
	return countByWord(ctx, r.db, "usage_examples", wordID)
}

// TranslationRepo implements repository.TranslationRepository
type TranslationRepo struct {
	db *sql.DB
}

// NewTranslationRepo creates a new translation repository
func NewTranslationRepo(db *sql.DB) *TranslationRepo {
	return &TranslationRepo{db: db}
}

// Create attaches a translation to a word
func (r *TranslationRepo) Create(ctx context.Context, t *domain.WordTranslation) error {
	query := `
		INSERT INTO word_translations (id, word_id, author_id, language_id, text, slug, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.WordID, t.Author.ID, t.Language.ID, t.Text, t.Slug, t.Created)
	return wrap("create translation", err)
}

// ListByWord returns a word's translations, oldest first
func (r *TranslationRepo) ListByWord(ctx context.Context, wordID uuid.UUID) ([]domain.WordTranslation, error) {
	query := `
		SELECT t.id, t.word_id, t.author_id, u.username, l.id, l.name, l.isocode, t.text, t.slug, t.created
		FROM word_translations t
		JOIN users u ON u.id = t.author_id
		JOIN languages l ON l.id = t.language_id
		WHERE t.word_id = $1
		ORDER BY t.created
	`
	rows, err := r.db.QueryContext(ctx, query, wordID)
	if err != nil {
		return nil, wrap("list translations", err)
	}
	defer rows.Close()

	var out []domain.WordTranslation
	for rows.Next() {
		t := domain.WordTranslation{Author: &domain.User{}, Language: &domain.Language{}}
		if err := rows.Scan(&t.ID, &t.WordID, &t.Author.ID, &t.Author.Username,
			&t.Language.ID, &t.Language.Name, &t.Language.Isocode, &t.Text, &t.Slug, &t.Created); err != nil {
			return nil, wrap("scan translation", err)
		}
		out = append(out, t)
	}

	return out, wrap("list translations", rows.Err())
}

// CountByWord returns how many translations a word has
func (r *TranslationRepo) CountByWord(ctx context.Context, wordID uuid.UUID) (int, error) {
	return countByWord(ctx, r.db, "word_translations", wordID)
}

// TagRepo implements repository.TagRepository
type TagRepo struct {
	db *sql.DB
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

// GetOrCreate returns the author's tag with name, creating it when missing
func (r *TagRepo) GetOrCreate(ctx context.Context, authorID uuid.UUID, name string) (*domain.Tag, error) {
	query := `
		INSERT INTO tags (id, author_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (author_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, author_id, name, created
	`
	var t domain.Tag
	err := r.db.QueryRowContext(ctx, query, uuid.New(), authorID, name).Scan(&t.ID, &t.AuthorID, &t.Name, &t.Created)
	if err != nil {
		return nil, wrap("get or create tag", err)
	}
	return &t, nil
}

// Attach tags a word; attaching twice is a no-op
func (r *TagRepo) Attach(ctx context.Context, wordID, tagID uuid.UUID) error {
	query := `INSERT INTO word_tags (word_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, wordID, tagID)
	return wrap("attach tag", err)
}

// ListByWord returns the tags of a word ordered by name
func (r *TagRepo) ListByWord(ctx context.Context, wordID uuid.UUID) ([]domain.Tag, error) {
	query := `
		SELECT t.id, t.author_id, t.name, t.created
		FROM tags t
		JOIN word_tags wt ON wt.tag_id = t.id
		WHERE wt.word_id = $1
		ORDER BY t.name
	`
	rows, err := r.db.QueryContext(ctx, query, wordID)
	if err != nil {
		return nil, wrap("list tags", err)
	}
	defer rows.Close()

	var out []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.AuthorID, &t.Name, &t.Created); err != nil {
			return nil, wrap("scan tag", err)
		}
		out = append(out, t)
	}

	return out, wrap("list tags", rows.Err())
}

// CountByWord returns how many tags a word has
func (r *TagRepo) CountByWord(ctx context.Context, wordID uuid.UUID) (int, error) {
	return countByWord(ctx, r.db, "word_tags", wordID)
}
