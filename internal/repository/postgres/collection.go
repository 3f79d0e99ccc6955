package postgres

import (
	"context"
	"database/sql"

	"linguista/internal/domain"

	"github.com/google/uuid"
)

const collectionSelect = `
	SELECT c.id, c.author_id, u.username, c.title, c.description, c.slug, c.created, c.modified,
		(SELECT COUNT(*) FROM collection_words cw WHERE cw.collection_id = c.id)
	FROM collections c
	JOIN users u ON u.id = c.author_id
`

// CollectionRepo implements repository.CollectionRepository
type CollectionRepo struct {
	db *sql.DB
}

// NewCollectionRepo creates a new collection repository
func NewCollectionRepo(db *sql.DB) *CollectionRepo {
	return &CollectionRepo{db: db}
}

// Create saves a new collection
func (r *CollectionRepo) Create(ctx context.Context, c *domain.Collection) error {
	query := `
		INSERT INTO collections (id, author_id, title, description, slug, created)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Author.ID, c.Title, c.Description, c.Slug, c.Created)
	return wrap("create collection", err)
}

// GetBySlug returns a collection with its word count
func (r *CollectionRepo) GetBySlug(ctx context.Context, slug string) (*domain.Collection, error) {
	c, err := scanCollection(r.db.QueryRowContext(ctx, collectionSelect+` WHERE c.slug = $1`, slug))
	if err != nil {
		return nil, wrap("get collection", err)
	}
	return c, nil
}

// List returns one page of the author's collections, newest first
func (r *CollectionRepo) List(ctx context.Context, authorID uuid.UUID, page domain.PageRequest) ([]domain.Collection, int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM collections WHERE author_id = $1`, authorID).Scan(&count)
	if err != nil {
		return nil, 0, wrap("count collections", err)
	}

	query := collectionSelect + ` WHERE c.author_id = $1 ORDER BY c.created DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, authorID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, wrap("list collections", err)
	}
	defer rows.Close()

	var out []domain.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, 0, wrap("scan collection", err)
		}
		out = append(out, *c)
	}

	return out, count, wrap("list collections", rows.Err())
}

// Update stores the collection description
func (r *CollectionRepo) Update(ctx context.Context, c *domain.Collection) error {
	res, err := r.db.ExecContext(ctx, `UPDATE collections SET description = $2, modified = $3 WHERE id = $1`,
		c.ID, c.Description, c.Modified)
	if err != nil {
		return wrap("update collection", err)
	}
	return mustAffect("update collection", res)
}

// Delete removes a collection, leaving its words intact
func (r *CollectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return wrap("delete collection", err)
	}
	return mustAffect("delete collection", res)
}

// AddWords links words to a collection in one transaction
func (r *CollectionRepo) AddWords(ctx context.Context, collectionID uuid.UUID, wordIDs []uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("begin add words", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO collection_words (collection_id, word_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, id := range wordIDs {
		if _, err := tx.ExecContext(ctx, query, collectionID, id); err != nil {
			return wrap("add word to collection", err)
		}
	}

	return wrap("commit add words", tx.Commit())
}

func scanCollection(row rowScanner) (*domain.Collection, error) {
	var (
		c        domain.Collection
		author   domain.User
		modified sql.NullTime
	)
	err := row.Scan(&c.ID, &author.ID, &author.Username, &c.Title, &c.Description, &c.Slug,
		&c.Created, &modified, &c.WordsCount)
	if err != nil {
		return nil, err
	}
	c.Author = &author
	c.Modified = nullTime(modified)
	return &c, nil
}
