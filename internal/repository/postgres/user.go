package postgres

import (
	"context"
	"database/sql"

	"linguista/internal/domain"

	"github.com/google/uuid"
)

const userColumns = `id, username, email, password_hash, first_name, gender, image, is_active, is_staff, created, modified`

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, first_name, gender, image, is_active, is_staff, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.Gender, u.Image, u.IsActive, u.IsStaff, u.Created,
	)
	return wrap("create user", err)
}

// GetByID returns a user by id
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, "get user", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername returns a user by exact username
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "get user by username", `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// GetByEmail returns the first user registered with the email
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1) ORDER BY created LIMIT 1`
	return r.getOne(ctx, "get user by email", query, email)
}

// Update stores mutable profile fields
func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET first_name = $2, gender = $3, image = $4, is_active = $5, is_staff = $6, modified = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, u.ID, u.FirstName, u.Gender, u.Image, u.IsActive, u.IsStaff, u.Modified)
	if err != nil {
		return wrap("update user", err)
	}
	return mustAffect("update user", res)
}

// Delete removes a user and everything owned by it
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrap("delete user", err)
	}
	return mustAffect("delete user", res)
}

func (r *UserRepo) getOne(ctx context.Context, op, query string, arg any) (*domain.User, error) {
	var (
		u        domain.User
		gender   sql.NullString
		image    sql.NullString
		modified sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &gender, &image,
		&u.IsActive, &u.IsStaff, &u.Created, &modified,
	)
	if err != nil {
		return nil, wrap(op, err)
	}

	u.Gender = nullString(gender)
	u.Image = nullString(image)
	u.Modified = nullTime(modified)
	return &u, nil
}
