package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"linguista/internal/domain"

	"github.com/google/uuid"
)

const languageColumns = `id, name, name_local, isocode, country, sorting, learning_available, interface_available`

// LanguageRepo implements repository.LanguageRepository
type LanguageRepo struct {
	db *sql.DB
}

// NewLanguageRepo creates a new language repository
func NewLanguageRepo(db *sql.DB) *LanguageRepo {
	return &LanguageRepo{db: db}
}

// List returns languages ordered by sorting weight
func (r *LanguageRepo) List(ctx context.Context, learningOnly bool) ([]domain.Language, error) {
	query := `
		SELECT ` + languageColumns + `
		FROM languages
		WHERE ($1 = FALSE OR learning_available = TRUE)
		ORDER BY sorting DESC, name
	`
	rows, err := r.db.QueryContext(ctx, query, learningOnly)
	if err != nil {
		return nil, wrap("list languages", err)
	}
	defer rows.Close()

	var langs []domain.Language
	for rows.Next() {
		var l domain.Language
		if err := rows.Scan(&l.ID, &l.Name, &l.NameLocal, &l.Isocode, &l.Country, &l.Sorting,
			&l.LearningAvailable, &l.InterfaceAvailable); err != nil {
			return nil, wrap("scan language", err)
		}
		langs = append(langs, l)
	}

	return langs, wrap("list languages", rows.Err())
}

// Find returns a language by isocode, English name or local name, case-insensitive
func (r *LanguageRepo) Find(ctx context.Context, key string) (*domain.Language, error) {
	var l domain.Language
	query := `
		SELECT ` + languageColumns + `
		FROM languages
		WHERE LOWER(isocode) = LOWER($1) OR LOWER(name) = LOWER($1) OR LOWER(name_local) = LOWER($1)
		ORDER BY (LOWER(isocode) = LOWER($1)) DESC
		LIMIT 1
	`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&l.ID, &l.Name, &l.NameLocal, &l.Isocode,
		&l.Country, &l.Sorting, &l.LearningAvailable, &l.InterfaceAvailable)
	if err != nil {
		return nil, wrap(fmt.Sprintf("find language %q", key), err)
	}
	return &l, nil
}

// Upsert inserts a language or refreshes it by isocode
func (r *LanguageRepo) Upsert(ctx context.Context, l *domain.Language) error {
	query := `
		INSERT INTO languages (` + languageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (isocode) DO UPDATE
		SET name = EXCLUDED.name,
			name_local = EXCLUDED.name_local,
			country = EXCLUDED.country,
			sorting = EXCLUDED.sorting,
			learning_available = EXCLUDED.learning_available,
			interface_available = EXCLUDED.interface_available
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, l.ID, l.Name, l.NameLocal, l.Isocode, l.Country, l.Sorting,
		l.LearningAvailable, l.InterfaceAvailable).Scan(&l.ID)
	return wrap("upsert language", err)
}

// UserLanguageRepo implements repository.UserLanguageRepository
type UserLanguageRepo struct {
	db *sql.DB
}

// NewUserLanguageRepo creates a new user language repository
func NewUserLanguageRepo(db *sql.DB) *UserLanguageRepo {
	return &UserLanguageRepo{db: db}
}

func userLanguageTable(kind domain.LanguageKind) (string, error) {
	switch kind {
	case domain.LanguageLearning:
		return "user_learning_languages", nil
	case domain.LanguageNative:
		return "user_native_languages", nil
	}
	return "", fmt.Errorf("unknown language kind %q", kind)
}

// List returns the user's languages of a kind
func (r *UserLanguageRepo) List(ctx context.Context, userID uuid.UUID, kind domain.LanguageKind) ([]domain.UserLanguage, error) {
	table, err := userLanguageTable(kind)
	if err != nil {
		return nil, err
	}

	level := "ul.level"
	if kind == domain.LanguageNative {
		level = "''"
	}
	query := `
		SELECT ul.id, ` + level + `, ul.slug, ul.created,
			l.id, l.name, l.name_local, l.isocode, l.country, l.sorting, l.learning_available, l.interface_available
		FROM ` + table + ` ul
		JOIN languages l ON l.id = ul.language_id
		WHERE ul.user_id = $1
		ORDER BY ul.created
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, wrap("list user languages", err)
	}
	defer rows.Close()

	var out []domain.UserLanguage
	for rows.Next() {
		ul := domain.UserLanguage{Kind: kind, Language: &domain.Language{}}
		l := ul.Language
		if err := rows.Scan(&ul.ID, &ul.Level, &ul.Slug, &ul.Created,
			&l.ID, &l.Name, &l.NameLocal, &l.Isocode, &l.Country, &l.Sorting,
			&l.LearningAvailable, &l.InterfaceAvailable); err != nil {
			return nil, wrap("scan user language", err)
		}
		out = append(out, ul)
	}

	return out, wrap("list user languages", rows.Err())
}

// Count returns the number of the user's languages of a kind
func (r *UserLanguageRepo) Count(ctx context.Context, userID uuid.UUID, kind domain.LanguageKind) (int, error) {
	table, err := userLanguageTable(kind)
	if err != nil {
		return 0, err
	}

	var count int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE user_id = $1`, userID).Scan(&count)
	return count, wrap("count user languages", err)
}

// Create links a language to the user
func (r *UserLanguageRepo) Create(ctx context.Context, l *domain.UserLanguage) error {
	return insertUserLanguage(ctx, r.db, l)
}

// ReplaceNative swaps the user's native languages in one transaction
func (r *UserLanguageRepo) ReplaceNative(ctx context.Context, userID uuid.UUID, langs []domain.UserLanguage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("begin replace native languages", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_native_languages WHERE user_id = $1`, userID); err != nil {
		return wrap("clear native languages", err)
	}
	for i := range langs {
		if err := insertUserLanguage(ctx, tx, &langs[i]); err != nil {
			return err
		}
	}

	return wrap("commit native languages", tx.Commit())
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertUserLanguage(ctx context.Context, db execer, l *domain.UserLanguage) error {
	var (
		query string
		args  []any
	)
	switch l.Kind {
	case domain.LanguageLearning:
		query = `
			INSERT INTO user_learning_languages (id, user_id, language_id, level, slug, created)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		args = []any{l.ID, l.User.ID, l.Language.ID, l.Level, l.Slug, l.Created}
	case domain.LanguageNative:
		query = `
			INSERT INTO user_native_languages (id, user_id, language_id, slug, created)
			VALUES ($1, $2, $3, $4, $5)
		`
		args = []any{l.ID, l.User.ID, l.Language.ID, l.Slug, l.Created}
	default:
		return fmt.Errorf("unknown language kind %q", l.Kind)
	}

	_, err := db.ExecContext(ctx, query, args...)
	return wrap("create user language", err)
}
