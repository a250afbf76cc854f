package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-identity-backend/internal/domain/entity"
	"github.com/oksasatya/go-identity-backend/internal/domain/repository"
)

type UserRepository struct {
	db DBTX
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, u entity.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, username, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username, email = EXCLUDED.email, updated_at = EXCLUDED.updated_at
	`, u.ID(), u.Username().Value(), u.Email().Value(), u.CreatedAt(), u.UpdatedAt())
	if err != nil {
		if name, ok := uniqueViolation(err); ok {
			switch name {
			case constraintUsersUsername:
				return &repository.UsernameAlreadyExistsError{Username: u.Username().Value()}
			case constraintUsersEmail:
				return &repository.EmailAlreadyExistsError{Email: u.Email().Value()}
			}
		}
		return fmt.Errorf("save user %s: %w", u.ID(), err)
	}
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (entity.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, email, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.User{}, &repository.EntityNotFoundError{Repository: "users", ID: id}
	}
	if err != nil {
		return entity.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &repository.EntityNotFoundError{Repository: "users", ID: id}
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (entity.User, bool, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, email, created_at, updated_at
		FROM users
		WHERE username = $1
	`, username)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.User{}, false, nil
	}
	if err != nil {
		return entity.User{}, false, fmt.Errorf("get user by username: %w", err)
	}
	return u, true, nil
}

func (r *UserRepository) CheckUsernameExists(ctx context.Context, username string) error {
	exists, err := r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if exists {
		return &repository.UsernameAlreadyExistsError{Username: username}
	}
	return nil
}

func (r *UserRepository) CheckEmailExists(ctx context.Context, email string) error {
	exists, err := r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return &repository.EmailAlreadyExistsError{Email: email}
	}
	return nil
}

func (r *UserRepository) exists(ctx context.Context, sql string, arg any) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, sql, arg).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanUser(row pgx.Row) (entity.User, error) {
	var s entity.UserSnapshot
	if err := row.Scan(&s.ID, &s.Username, &s.Email, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return entity.User{}, err
	}
	return entity.RestoreUser(s)
}
