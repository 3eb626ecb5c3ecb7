package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// UserRepositoryPG is the Postgres-backed user repository.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepositoryPG creates a user repository on top of a pgx pool.
func NewUserRepositoryPG(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

// Create inserts a new user and returns the stored row.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, fmt.Errorf("user is required")
	}
	email := strings.ToLower(strings.TrimSpace(user.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email", domain.ErrMissingField)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, name)
		VALUES ($1, $2)
		RETURNING id, email, name, generated_images, created_at, updated_at
	`, email, strings.TrimSpace(user.Name))

	return scanUser(row)
}

// GetByID loads a user by primary key. Malformed ids short-circuit to
// domain.ErrNotFound; postgres would otherwise reject them with a uuid cast
// error that callers cannot distinguish from an outage.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, generated_images, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.GeneratedImages, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
