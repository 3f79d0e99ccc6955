package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"linguista/internal/domain"

	"github.com/google/uuid"
)

type favoriteTable struct {
	table  string
	column string
}

var favoriteTables = map[domain.FavoriteKind]favoriteTable{
	domain.FavoriteWord:       {table: "favorite_words", column: "word_id"},
	domain.FavoriteCollection: {table: "favorite_collections", column: "collection_id"},
	domain.FavoriteExercise:   {table: "favorite_exercises", column: "exercise_id"},
}

// FavoriteRepo implements repository.FavoriteRepository
type FavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepo creates a new favorites repository
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// Add bookmarks an object; a repeated bookmark is ErrAlreadyExists
func (r *FavoriteRepo) Add(ctx context.Context, kind domain.FavoriteKind, userID, objectID uuid.UUID) error {
	t, err := favoriteTableFor(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (user_id, %s) VALUES ($1, $2)`, t.table, t.column)
	_, err = r.db.ExecContext(ctx, query, userID, objectID)
	return wrap("add favorite "+string(kind), err)
}

// Remove drops a bookmark; a missing bookmark is ErrNotFound
func (r *FavoriteRepo) Remove(ctx context.Context, kind domain.FavoriteKind, userID, objectID uuid.UUID) error {
	t, err := favoriteTableFor(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND %s = $2`, t.table, t.column)
	res, err := r.db.ExecContext(ctx, query, userID, objectID)
	if err != nil {
		return wrap("remove favorite "+string(kind), err)
	}
	return mustAffect("remove favorite "+string(kind), res)
}

// Collections returns one page of the user's favorite collections, latest bookmark first
func (r *FavoriteRepo) Collections(ctx context.Context, userID uuid.UUID, page domain.PageRequest) ([]domain.Collection, int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorite_collections WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return nil, 0, wrap("count favorite collections", err)
	}

	query := collectionSelect + `
		JOIN favorite_collections fc ON fc.collection_id = c.id
		WHERE fc.user_id = $1
		ORDER BY fc.created DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, wrap("list favorite collections", err)
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

	return out, count, wrap("list favorite collections", rows.Err())
}

// Exercises returns the user's favorite exercises ordered by name
func (r *FavoriteRepo) Exercises(ctx context.Context, userID uuid.UUID) ([]domain.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises
		WHERE id IN (SELECT exercise_id FROM favorite_exercises WHERE user_id = $1)
		ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, wrap("list favorite exercises", err)
	}
	defer rows.Close()

	var out []domain.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, wrap("scan exercise", err)
		}
		out = append(out, *e)
	}

	return out, wrap("list favorite exercises", rows.Err())
}

func favoriteTableFor(kind domain.FavoriteKind) (favoriteTable, error) {
	t, ok := favoriteTables[kind]
	if !ok {
		return favoriteTable{}, fmt.Errorf("unknown favorite kind %q", kind)
	}
	return t, nil
}
