package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"linguista/internal/apperr"
	"linguista/internal/domain"

	"github.com/google/uuid"
)

type adminTable struct {
	table   string
	columns []string
	order   string
}

var adminTables = map[string]adminTable{
	"words": {
		table:   "words",
		columns: []string{"id::text AS id", "author_id::text AS author_id", "text", "activity_status", "slug", "created"},
		order:   "created DESC",
	},
	"translations": {
		table:   "word_translations",
		columns: []string{"id::text AS id", "word_id::text AS word_id", "text", "slug", "created"},
		order:   "created DESC",
	},
	"examples": {
		table:   "usage_examples",
		columns: []string{"id::text AS id", "word_id::text AS word_id", "text", "source", "slug", "created"},
		order:   "created DESC",
	},
	"tags": {
		table:   "tags",
		columns: []string{"id::text AS id", "author_id::text AS author_id", "name", "created"},
		order:   "name",
	},
	"types": {
		table:   "word_types",
		columns: []string{"id::text AS id", "name", "slug", "sorting", "created"},
		order:   "sorting DESC, name",
	},
	"links": {
		table:   "word_links",
		columns: []string{"id::text AS id", "kind", "to_word_id::text AS to_word_id", "from_word_id::text AS from_word_id", "note", "created"},
		order:   "created DESC",
	},
	"collections": {
		table:   "collections",
		columns: []string{"id::text AS id", "author_id::text AS author_id", "title", "slug", "created"},
		order:   "created DESC",
	},
	"exercises": {
		table:   "exercises",
		columns: []string{"id::text AS id", "name", "available", "slug", "created"},
		order:   "name",
	},
}

// AdminRepo implements repository.AdminRepository
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo creates a new admin repository
func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

// Resources returns the names accepted by List and Delete
func (r *AdminRepo) Resources() []string {
	names := make([]string, 0, len(adminTables))
	for name := range adminTables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns one page of raw rows for a resource
func (r *AdminRepo) List(ctx context.Context, resource string, page domain.PageRequest) ([]map[string]any, int, error) {
	t, ok := adminTables[resource]
	if !ok {
		return nil, 0, fmt.Errorf("admin resource %q: %w", resource, apperr.ErrNotFound)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+t.table).Scan(&count); err != nil {
		return nil, 0, wrap("count "+resource, err)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s LIMIT $1 OFFSET $2`,
		strings.Join(t.columns, ", "), t.table, t.order)
	rows, err := r.db.QueryContext(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, wrap("list "+resource, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, 0, wrap("list "+resource, err)
	}

	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, 0, wrap("scan "+resource, err)
		}

		item := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				item[col] = string(b)
			} else {
				item[col] = values[i]
			}
		}
		out = append(out, item)
	}

	return out, count, wrap("list "+resource, rows.Err())
}

// Delete removes a row of a resource by id
func (r *AdminRepo) Delete(ctx context.Context, resource string, id uuid.UUID) error {
	t, ok := adminTables[resource]
	if !ok {
		return fmt.Errorf("admin resource %q: %w", resource, apperr.ErrNotFound)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM `+t.table+` WHERE id = $1`, id)
	if err != nil {
		return wrap("delete "+resource, err)
	}
	return mustAffect("delete "+resource, res)
}
