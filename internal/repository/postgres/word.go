package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"linguista/internal/domain"
	"linguista/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const wordColumns = `w.id, w.author_id, u.username, w.language_id, l.name, l.isocode,
		w.text, w.activity_status, w.note, w.slug, w.created, w.modified,
		(SELECT COUNT(*) FROM definitions d WHERE d.word_id = w.id),
		(SELECT COUNT(*) FROM usage_examples e WHERE e.word_id = w.id),
		(SELECT COUNT(*) FROM word_translations t WHERE t.word_id = w.id),
		ARRAY(SELECT tg.name FROM word_tags wt JOIN tags tg ON tg.id = wt.tag_id WHERE wt.word_id = w.id ORDER BY tg.name),
		ARRAY(SELECT ty.name FROM word_types_words twt JOIN word_types ty ON ty.id = twt.word_type_id WHERE twt.word_id = w.id ORDER BY ty.name)`

const wordJoins = `
	JOIN users u ON u.id = w.author_id
	LEFT JOIN languages l ON l.id = w.language_id
`

const wordSelect = `SELECT ` + wordColumns + ` FROM words w` + wordJoins

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

// Create saves a new word
func (r *WordRepo) Create(ctx context.Context, w *domain.Word) error {
	query := `
		INSERT INTO words (id, author_id, language_id, text, activity_status, note, slug, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	var languageID uuid.NullUUID
	if w.Language != nil {
		languageID = uuid.NullUUID{UUID: w.Language.ID, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		w.ID, w.Author.ID, languageID, w.Text, string(w.ActivityStatus), w.Note, w.Slug, w.Created,
	)
	return wrap("create word", err)
}

// GetBySlug returns a word with its counters and tags
func (r *WordRepo) GetBySlug(ctx context.Context, slug string) (*domain.Word, error) {
	w, err := scanWord(r.db.QueryRowContext(ctx, wordSelect+` WHERE w.slug = $1`, slug))
	if err != nil {
		return nil, wrap("get word", err)
	}
	return w, nil
}

// List returns one page of words matching the filter, newest first
func (r *WordRepo) List(ctx context.Context, f repository.WordFilter, page domain.PageRequest) ([]domain.Word, int, error) {
	where, args := wordWhere(f)

	var count int
	countQuery := `SELECT COUNT(*) FROM words w LEFT JOIN languages l ON l.id = w.language_id` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, wrap("count words", err)
	}

	n := len(args)
	query := wordSelect + where + fmt.Sprintf(` ORDER BY w.created DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, wrap("list words", err)
	}
	defer rows.Close()

	var words []domain.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, 0, wrap("scan word", err)
		}
		words = append(words, *w)
	}

	return words, count, wrap("list words", rows.Err())
}

// Update stores the editable fields of a word
func (r *WordRepo) Update(ctx context.Context, w *domain.Word) error {
	query := `UPDATE words SET activity_status = $2, note = $3, modified = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, w.ID, string(w.ActivityStatus), w.Note, w.Modified)
	if err != nil {
		return wrap("update word", err)
	}
	return mustAffect("update word", res)
}

// Delete removes a word and its dependent rows
func (r *WordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM words WHERE id = $1`, id)
	if err != nil {
		return wrap("delete word", err)
	}
	return mustAffect("delete word", res)
}

// CountByAuthor returns the size of a user's vocabulary
func (r *WordRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words WHERE author_id = $1`, authorID).Scan(&count)
	return count, wrap("count words", err)
}

func wordWhere(f repository.WordFilter) (string, []any) {
	conds := []string{"w.author_id = $1"}
	args := []any{f.AuthorID}

	if f.Language != "" {
		args = append(args, f.Language)
		conds = append(conds, fmt.Sprintf("LOWER(l.isocode) = LOWER($%d)", len(args)))
	}
	if f.ActivityStatus != "" {
		args = append(args, string(f.ActivityStatus))
		conds = append(conds, fmt.Sprintf("w.activity_status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("w.text ILIKE $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM word_types_words twt JOIN word_types ty ON ty.id = twt.word_type_id "+
				"WHERE twt.word_id = w.id AND (LOWER(ty.name) = LOWER($%[1]d) OR ty.slug = $%[1]d))", len(args)))
	}
	if f.Favorite {
		conds = append(conds, "EXISTS (SELECT 1 FROM favorite_words fw WHERE fw.word_id = w.id AND fw.user_id = $1)")
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanWord reads wordColumns; extra destinations are scanned first
func scanWord(row rowScanner, extra ...any) (*domain.Word, error) {
	var (
		w          domain.Word
		author     domain.User
		languageID uuid.NullUUID
		langName   sql.NullString
		isocode    sql.NullString
		status     string
		modified   sql.NullTime
		tags       pq.StringArray
		types      pq.StringArray
	)
	dest := append(extra, &w.ID, &author.ID, &author.Username, &languageID, &langName, &isocode,
		&w.Text, &status, &w.Note, &w.Slug, &w.Created, &modified,
		&w.DefinitionsCount, &w.ExamplesCount, &w.TranslationsCount, &tags, &types)
	err := row.Scan(dest...)
	if err != nil {
		return nil, err
	}

	w.Author = &author
	if languageID.Valid {
		w.Language = &domain.Language{ID: languageID.UUID, Name: langName.String, Isocode: isocode.String}
	}
	w.ActivityStatus = domain.ActivityStatus(status)
	w.Modified = nullTime(modified)
	w.Tags = []string(tags)
	w.Types = []string(types)
	return &w, nil
}
