package postgres

import (
	"context"
	"database/sql"
	"time"

	"linguista/internal/domain"

	"github.com/google/uuid"
)

const exerciseColumns = `id, name, description, constraint_description, available, slug, created, modified`

// ExerciseRepo implements repository.ExerciseRepository
type ExerciseRepo struct {
	db *sql.DB
}

// NewExerciseRepo creates a new exercise repository
func NewExerciseRepo(db *sql.DB) *ExerciseRepo {
	return &ExerciseRepo{db: db}
}

// List returns exercises ordered by name
func (r *ExerciseRepo) List(ctx context.Context, availableOnly bool) ([]domain.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE ($1 = FALSE OR available = TRUE) ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, availableOnly)
	if err != nil {
		return nil, wrap("list exercises", err)
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

	return out, wrap("list exercises", rows.Err())
}

// GetBySlug returns an exercise
func (r *ExerciseRepo) GetBySlug(ctx context.Context, slug string) (*domain.Exercise, error) {
	e, err := scanExercise(r.db.QueryRowContext(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE slug = $1`, slug))
	if err != nil {
		return nil, wrap("get exercise", err)
	}
	return e, nil
}

// Upsert inserts an exercise or refreshes it by slug
func (r *ExerciseRepo) Upsert(ctx context.Context, e *domain.Exercise) error {
	query := `
		INSERT INTO exercises (id, name, description, constraint_description, available, slug, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name,
			description = EXCLUDED.description,
			constraint_description = EXCLUDED.constraint_description,
			available = EXCLUDED.available,
			modified = NOW()
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, e.ID, e.Name, e.Description, e.ConstraintDescription,
		e.Available, e.Slug, e.Created).Scan(&e.ID)
	return wrap("upsert exercise", err)
}

func scanExercise(row rowScanner) (*domain.Exercise, error) {
	var (
		e        domain.Exercise
		modified sql.NullTime
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.ConstraintDescription, &e.Available,
		&e.Slug, &e.Created, &modified); err != nil {
		return nil, err
	}
	e.Modified = nullTime(modified)
	return &e, nil
}

// SettingsRepo implements repository.SettingsRepository
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo creates a new translator settings repository
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the user's translator settings
func (r *SettingsRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.TranslatorSettings, error) {
	var (
		s       domain.TranslatorSettings
		seconds sql.NullInt64
	)
	query := `
		SELECT id, user_id, mode, answer_time_limit, repetitions_amount, from_language
		FROM translator_settings
		WHERE user_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&s.ID, &s.UserID, &s.Mode, &seconds,
		&s.RepetitionsAmount, &s.FromLanguage)
	if err != nil {
		return nil, wrap("get translator settings", err)
	}
	if seconds.Valid {
		d := time.Duration(seconds.Int64) * time.Second
		s.AnswerTimeLimit = &d
	}
	return &s, nil
}

// Save upserts the user's translator settings
func (r *SettingsRepo) Save(ctx context.Context, s *domain.TranslatorSettings) error {
	var seconds sql.NullInt64
	if s.AnswerTimeLimit != nil {
		seconds = sql.NullInt64{Int64: int64(s.AnswerTimeLimit.Seconds()), Valid: true}
	}
	query := `
		INSERT INTO translator_settings (id, user_id, mode, answer_time_limit, repetitions_amount, from_language)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET mode = EXCLUDED.mode,
			answer_time_limit = EXCLUDED.answer_time_limit,
			repetitions_amount = EXCLUDED.repetitions_amount,
			from_language = EXCLUDED.from_language
	`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.Mode, seconds, s.RepetitionsAmount, s.FromLanguage)
	return wrap("save translator settings", err)
}

// HistoryRepo implements repository.HistoryRepository
type HistoryRepo struct {
	db *sql.DB
}

// NewHistoryRepo creates a new exercise history repository
func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Create records a finished exercise round
func (r *HistoryRepo) Create(ctx context.Context, h *domain.ExerciseHistory) error {
	query := `
		INSERT INTO exercise_history (id, user_id, exercise_id, words_amount, corrects_amount, incorrects_amount, mode, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query, h.ID, h.UserID, h.ExerciseID, h.WordsAmount,
		h.CorrectsAmount, h.IncorrectsAmount, h.Mode, h.Created)
	return wrap("create exercise history", err)
}

// List returns one page of the user's rounds for an exercise, newest first
func (r *HistoryRepo) List(ctx context.Context, userID, exerciseID uuid.UUID, page domain.PageRequest) ([]domain.ExerciseHistory, int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exercise_history WHERE user_id = $1 AND exercise_id = $2`,
		userID, exerciseID).Scan(&count)
	if err != nil {
		return nil, 0, wrap("count exercise history", err)
	}

	query := `
		SELECT id, user_id, exercise_id, words_amount, corrects_amount, incorrects_amount, mode, created
		FROM exercise_history
		WHERE user_id = $1 AND exercise_id = $2
		ORDER BY created DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, query, userID, exerciseID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, wrap("list exercise history", err)
	}
	defer rows.Close()

	var out []domain.ExerciseHistory
	for rows.Next() {
		var h domain.ExerciseHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.ExerciseID, &h.WordsAmount, &h.CorrectsAmount,
			&h.IncorrectsAmount, &h.Mode, &h.Created); err != nil {
			return nil, 0, wrap("scan exercise history", err)
		}
		out = append(out, h)
	}

	return out, count, wrap("list exercise history", rows.Err())
}
