package postgres

import (
	"context"
	"database/sql"

	"linguista/internal/domain"

	"github.com/google/uuid"
)

// WordLinkRepo implements repository.WordLinkRepository
type WordLinkRepo struct {
	db *sql.DB
}

// NewWordLinkRepo creates a new word link repository
func NewWordLinkRepo(db *sql.DB) *WordLinkRepo {
	return &WordLinkRepo{db: db}
}

// Create saves a link from l.Word to the word l.ToWordID
func (r *WordLinkRepo) Create(ctx context.Context, l *domain.WordLink) error {
	query := `
		INSERT INTO word_links (id, kind, to_word_id, from_word_id, note, created)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, l.ID, string(l.Kind), l.ToWordID, l.Word.ID, l.Note, l.Created)
	return wrap("create word link", err)
}

// List returns the linked words of one kind, newest first
func (r *WordLinkRepo) List(ctx context.Context, kind domain.LinkKind, toWordID uuid.UUID) ([]domain.WordLink, error) {
	query := `SELECT wl.id, wl.kind, wl.to_word_id, wl.note, wl.created, ` + wordColumns + `
		FROM word_links wl
		JOIN words w ON w.id = wl.from_word_id` + wordJoins + `
		WHERE wl.kind = $1 AND wl.to_word_id = $2
		ORDER BY wl.created DESC
	`
	rows, err := r.db.QueryContext(ctx, query, string(kind), toWordID)
	if err != nil {
		return nil, wrap("list word links", err)
	}
	defer rows.Close()

	var out []domain.WordLink
	for rows.Next() {
		var (
			l        domain.WordLink
			linkKind string
		)
		w, err := scanWord(rows, &l.ID, &linkKind, &l.ToWordID, &l.Note, &l.Created)
		if err != nil {
			return nil, wrap("scan word link", err)
		}
		l.Kind = domain.LinkKind(linkKind)
		l.Word = w
		out = append(out, l)
	}

	return out, wrap("list word links", rows.Err())
}

// Count returns how many links of one kind a word has
func (r *WordLinkRepo) Count(ctx context.Context, kind domain.LinkKind, toWordID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM word_links WHERE kind = $1 AND to_word_id = $2`, string(kind), toWordID).Scan(&count)
	return count, wrap("count word links", err)
}

// Delete removes one link
func (r *WordLinkRepo) Delete(ctx context.Context, kind domain.LinkKind, toWordID, fromWordID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM word_links WHERE kind = $1 AND to_word_id = $2 AND from_word_id = $3`,
		string(kind), toWordID, fromWordID)
	if err != nil {
		return wrap("delete word link", err)
	}
	return mustAffect("delete word link", res)
}
