package postgres

import (
	"context"
	"database/sql"
	"strings"

	"linguista/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// WordTypeRepo implements repository.WordTypeRepository
type WordTypeRepo struct {
	db *sql.DB
}

// NewWordTypeRepo creates a new word type repository
func NewWordTypeRepo(db *sql.DB) *WordTypeRepo {
	return &WordTypeRepo{db: db}
}

// List returns every word type, most used first
func (r *WordTypeRepo) List(ctx context.Context) ([]domain.WordType, error) {
	query := `
		SELECT ty.id, ty.name, ty.slug, ty.sorting, ty.created,
			(SELECT COUNT(*) FROM word_types_words twt WHERE twt.word_type_id = ty.id) AS words_count
		FROM word_types ty
		ORDER BY words_count DESC, ty.sorting DESC, ty.name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap("list word types", err)
	}
	defer rows.Close()

	var out []domain.WordType
	for rows.Next() {
		var t domain.WordType
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Sorting, &t.Created, &t.WordsCount); err != nil {
			return nil, wrap("scan word type", err)
		}
		out = append(out, t)
	}

	return out, wrap("list word types", rows.Err())
}

// FindByNames returns the types whose name matches one of names, case-insensitive
func (r *WordTypeRepo) FindByNames(ctx context.Context, names []string) ([]domain.WordType, error) {
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	query := `
		SELECT id, name, slug, sorting, created
		FROM word_types
		WHERE LOWER(name) = ANY($1)
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(lowered))
	if err != nil {
		return nil, wrap("find word types", err)
	}
	defer rows.Close()

	var out []domain.WordType
	for rows.Next() {
		var t domain.WordType
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Sorting, &t.Created); err != nil {
			return nil, wrap("scan word type", err)
		}
		out = append(out, t)
	}

	return out, wrap("find word types", rows.Err())
}

// Set replaces the types of a word in one transaction
func (r *WordTypeRepo) Set(ctx context.Context, wordID uuid.UUID, typeIDs []uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("begin set word types", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM word_types_words WHERE word_id = $1`, wordID); err != nil {
		return wrap("clear word types", err)
	}
	for _, id := range typeIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO word_types_words (word_id, word_type_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, wordID, id)
		if err != nil {
			return wrap("add word type", err)
		}
	}

	return wrap("commit set word types", tx.Commit())
}

// Upsert inserts a word type or refreshes it by name
func (r *WordTypeRepo) Upsert(ctx context.Context, t *domain.WordType) error {
	query := `
		INSERT INTO word_types (id, name, slug, sorting, created)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE
		SET slug = EXCLUDED.slug,
			sorting = EXCLUDED.sorting
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, t.ID, t.Name, t.Slug, t.Sorting, t.Created).Scan(&t.ID)
	return wrap("upsert word type", err)
}
